// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

type config struct {
	Root     string
	BufSize  int
	Nonblock bool
	Strict   bool
}

func (c config) validate() error {
	if c.BufSize <= 0 {
		return fmt.Errorf("buffer size must be positive, got %d", c.BufSize)
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("root is not a directory: " + c.Root)
	}
	return nil
}

// newLogger builds the process logger. The "auto" format picks colored
// terminal output for a terminal and JSON otherwise.
func newLogger(w io.Writer, format, level string) (log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.LvlFromString(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	var fmtr log.Format
	switch strings.ToLower(format) {
	case "auto", "":
		fmtr = log.JSONFormat()
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			w = colorable.NewColorable(f)
			fmtr = log.TerminalFormat(true)
		}
	case "text":
		fmtr = log.TerminalFormat(false)
	case "logfmt":
		fmtr = log.LogfmtFormat()
	case "json":
		fmtr = log.JSONFormat()
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	logger := log.New()
	logger.SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(w, fmtr)))
	return logger, nil
}
