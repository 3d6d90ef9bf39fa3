// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package file_test

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"code.hybscloud.com/filestream"
	"code.hybscloud.com/filestream/file"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOpenNonblock_FIFOSuspendsAndResumes(t *testing.T) {
	p := filepath.Join(t.TempDir(), "fifo")
	require.NoError(t, unix.Mkfifo(p, 0o600))

	rc, length, err := file.OpenNonblock(p)
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, filestream.UnknownLength, length)

	// The read end is already open, so this does not block.
	w, err := os.OpenFile(p, os.O_WRONLY, 0)
	require.NoError(t, err)

	src := filestream.New(rc, length)

	_, err = src.Next()
	require.ErrorIs(t, err, filestream.ErrWouldBlock)

	_, err = w.Write([]byte("hi"))
	require.NoError(t, err)
	chunk, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, "hi", string(chunk))

	_, err = src.Next()
	require.ErrorIs(t, err, filestream.ErrWouldBlock)

	require.NoError(t, w.Close())
	_, err = src.Next()
	require.Equal(t, io.EOF, err)
	require.True(t, src.Done())
	require.Equal(t, int64(2), src.Produced())
}

func TestOpenNonblock_ReadAfterClose(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	rc, _, err := file.OpenNonblock(p)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.NoError(t, rc.Close())

	_, err = rc.Read(make([]byte, 1))
	require.ErrorIs(t, err, fs.ErrClosed)
}
