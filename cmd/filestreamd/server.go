// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"code.hybscloud.com/filestream"
	"code.hybscloud.com/filestream/file"
	"github.com/ethereum/go-ethereum/log"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cast"
	"go.dw1.io/safemath"
)

var (
	errInvalidLimit = errors.New("limit must be a decimal byte count")
	errOutsideRoot  = errors.New("path resolves outside the root")
)

// opener opens a file and reports the content length to declare for it.
type opener func(name string) (io.ReadCloser, int64, error)

func openFile(name string) (io.ReadCloser, int64, error) {
	f, length, err := file.Open(name)
	if err != nil {
		return nil, 0, err
	}
	return f, length, nil
}

type server struct {
	cfg      config
	log      log.Logger
	router   *httprouter.Router
	open     opener
	realRoot string
}

func newServer(cfg config, logger log.Logger) *server {
	s := &server{
		cfg:      cfg,
		log:      logger,
		router:   httprouter.New(),
		open:     openFile,
		realRoot: cfg.Root,
	}
	if cfg.Nonblock {
		s.open = file.OpenNonblock
	}
	if resolved, err := filepath.EvalSymlinks(cfg.Root); err == nil {
		s.realRoot = resolved
	}
	s.router.GET("/files/*path", s.serveFile)
	s.router.HEAD("/files/*path", s.serveFile)
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// resolve maps a request path onto a file under the root. Cleaning against
// "/" first drops any ".." that would climb above the root; symlinks are
// checked by confine.
func (s *server) resolve(p string) string {
	clean := path.Clean("/" + p)
	return filepath.Join(s.cfg.Root, filepath.FromSlash(clean))
}

// confine follows symlinks in name and fails with errOutsideRoot when the
// target lies outside the root.
func (s *server) confine(name string) (string, error) {
	resolved, err := filepath.EvalSymlinks(name)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.realRoot, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &fs.PathError{Op: "open", Path: name, Err: errOutsideRoot}
	}
	return resolved, nil
}

// parseLimit reads the ?limit= query value: a plain decimal byte count that
// must fit a content length.
func parseLimit(q string) (int64, error) {
	if q == "" || strings.TrimLeft(q, "0123456789") != "" {
		return 0, errInvalidLimit
	}
	// cast reads a leading 0 as an octal prefix.
	if q = strings.TrimLeft(q, "0"); q == "" {
		return 0, nil
	}
	u, err := cast.ToUint64E(q)
	if err != nil {
		return 0, err
	}
	return safemath.ConvertAny[int64](u)
}

// requestPolicy backs off while the file would block, and gives up as soon
// as the client has gone away.
type requestPolicy struct {
	*filestream.BackoffPolicy
	ctx context.Context
}

func (p requestPolicy) OnWouldBlock(op filestream.Op) filestream.PolicyAction {
	if p.ctx.Err() != nil {
		return filestream.PolicyReturn
	}
	return p.BackoffPolicy.OnWouldBlock(op)
}

func (p requestPolicy) OnMore(op filestream.Op) filestream.PolicyAction {
	if p.ctx.Err() != nil {
		return filestream.PolicyReturn
	}
	return p.BackoffPolicy.OnMore(op)
}

func (s *server) serveFile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	start := time.Now()
	name := s.resolve(ps.ByName("path"))
	logger := s.log.New("method", r.Method, "path", r.URL.Path)

	var limit int64 = -1
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := parseLimit(q)
		if err != nil {
			logger.Debug("Rejected limit", "limit", q, "err", err)
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	var (
		rc   io.ReadCloser
		size int64
	)
	target, err := s.confine(name)
	if err == nil {
		rc, size, err = s.open(target)
	}
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, file.ErrIsDir), errors.Is(err, errOutsideRoot):
			status = http.StatusNotFound
		case errors.Is(err, fs.ErrPermission):
			status = http.StatusForbidden
		}
		logger.Debug("Open failed", "status", status, "err", err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	length := size
	if limit >= 0 && (length < 0 || limit < length) {
		length = limit
	}

	src := filestream.NewBuffer(rc, length, make([]byte, s.cfg.BufSize))
	policy := requestPolicy{BackoffPolicy: &filestream.BackoffPolicy{}, ctx: r.Context()}
	body := filestream.NewBody(src, policy)
	defer body.Close()

	h := w.Header()
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		h.Set("Content-Type", ct)
	} else {
		h.Set("Content-Type", "application/octet-stream")
	}
	if length >= 0 {
		h.Set("Content-Length", strconv.FormatInt(length, 10))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	n, err := body.WriteTo(w)
	if err != nil {
		logger.Warn("Body aborted", "written", n, "declared", length, "err", err)
		return
	}
	if s.cfg.Strict {
		if err := src.Check(); err != nil {
			logger.Warn("Short body", "written", n, "declared", length, "err", err)
			return
		}
	}
	logger.Info("Served", "written", n, "elapsed", time.Since(start))
}
