// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command filestreamd serves the files under a root directory, streaming
// each response body through a filestream.Source.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.hybscloud.com/filestream"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	addrFlag = &cli.StringFlag{
		Name:    "addr",
		Usage:   "HTTP listen address",
		Value:   ":8080",
		EnvVars: []string{"FILESTREAMD_ADDR"},
	}
	rootFlag = &cli.StringFlag{
		Name:    "root",
		Usage:   "directory to serve",
		Value:   ".",
		EnvVars: []string{"FILESTREAMD_ROOT"},
	}
	bufferFlag = &cli.IntFlag{
		Name:    "buffer",
		Usage:   "scratch buffer size per response, and so the largest chunk",
		Value:   filestream.BufSize,
		EnvVars: []string{"FILESTREAMD_BUFFER"},
	}
	nonblockFlag = &cli.BoolFlag{
		Name:    "nonblock",
		Usage:   "open files with O_NONBLOCK (FIFOs report would-block instead of stalling)",
		EnvVars: []string{"FILESTREAMD_NONBLOCK"},
	}
	strictFlag = &cli.BoolFlag{
		Name:    "strict",
		Usage:   "warn when a file ends before its declared length",
		EnvVars: []string{"FILESTREAMD_STRICT"},
	}
	logFormatFlag = &cli.StringFlag{
		Name:    "log-format",
		Usage:   "log output format (auto, text, logfmt, json)",
		Value:   "auto",
		EnvVars: []string{"FILESTREAMD_LOG_FORMAT"},
	}
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "minimum log level (trace, debug, info, warn, error, crit)",
		Value:   "info",
		EnvVars: []string{"FILESTREAMD_LOG_LEVEL"},
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "filestreamd",
		Usage: "serve files as chunked HTTP response bodies",
		Flags: []cli.Flag{
			addrFlag,
			rootFlag,
			bufferFlag,
			nonblockFlag,
			strictFlag,
			logFormatFlag,
			logLevelFlag,
		},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	logger, err := newLogger(ctx.App.ErrWriter, ctx.String(logFormatFlag.Name), ctx.String(logLevelFlag.Name))
	if err != nil {
		return err
	}
	cfg := config{
		Root:     ctx.String(rootFlag.Name),
		BufSize:  ctx.Int(bufferFlag.Name),
		Nonblock: ctx.Bool(nonblockFlag.Name),
		Strict:   ctx.Bool(strictFlag.Name),
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ctx.String(addrFlag.Name),
		Handler:           newServer(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigctx)

	g.Go(func() error {
		logger.Info("Serving files", "addr", srv.Addr, "root", cfg.Root, "buffer", cfg.BufSize)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
