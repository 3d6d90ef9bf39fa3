// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(f, nil, 0o644))

	tests := []struct {
		name    string
		cfg     config
		wantErr bool
	}{
		{"ok", config{Root: dir, BufSize: 8192}, false},
		{"zero buffer", config{Root: dir}, true},
		{"negative buffer", config{Root: dir, BufSize: -1}, true},
		{"missing root", config{Root: filepath.Join(dir, "nope"), BufSize: 1}, true},
		{"root is file", config{Root: f, BufSize: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log, err := newLogger(&buf, "json", "warn")
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	log, err = newLogger(&buf, "TEXT", "DEBUG")
	require.NoError(t, err)
	log.Debug("dbg")
	require.Contains(t, buf.String(), "DEBUG")
	require.Contains(t, buf.String(), "dbg")

	buf.Reset()
	log, err = newLogger(&buf, "logfmt", "info")
	require.NoError(t, err)
	log.Info("lf", "k", 2)
	require.Contains(t, buf.String(), "msg=lf")
	require.Contains(t, buf.String(), "k=2")

	buf.Reset()
	log, err = newLogger(&buf, "auto", "info")
	require.NoError(t, err)
	log.Info("piped")
	require.Contains(t, buf.String(), `"msg":"piped"`)

	_, err = newLogger(&buf, "xml", "info")
	require.Error(t, err)
	_, err = newLogger(&buf, "text", "loud")
	require.Error(t, err)
}

func TestApp_RejectsBadConfig(t *testing.T) {
	app := newApp()
	var stderr bytes.Buffer
	app.ErrWriter = &stderr

	err := app.Run([]string{"filestreamd", "--root", filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)

	err = app.Run([]string{"filestreamd", "--buffer", "0", "--root", t.TempDir()})
	require.ErrorContains(t, err, "buffer size")

	err = app.Run([]string{"filestreamd", "--log-level", "loud"})
	require.ErrorContains(t, err, "invalid log level")
}

func TestApp_EnvVars(t *testing.T) {
	t.Setenv("FILESTREAMD_LOG_FORMAT", "yaml")
	err := newApp().Run([]string{"filestreamd"})
	require.ErrorContains(t, err, "invalid log format")
}
