// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package file opens files as readers for filestream.Source and reports the
// content length to declare for them.
//
// Open prefers a read-only memory mapping via mmapfile and falls back to
// os.File when mapping is unavailable or unsuitable (empty files,
// non-regular files). OpenNonblock opens a descriptor with O_NONBLOCK so
// FIFOs and similar sources report filestream.ErrWouldBlock instead of
// blocking the puller.
package file

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"code.hybscloud.com/filestream"
	"go.dw1.io/mmapfile"
)

var (
	_ io.ReadCloser = (*File)(nil)
)

// ErrIsDir is returned (inside an *fs.PathError) when the name is a
// directory.
var ErrIsDir = errors.New("file: is a directory")

// File is an open, read-only file backed by either a memory mapping or an
// os.File.
type File struct {
	mm *mmapfile.MmapFile
	os *os.File
}

// Open opens name for reading and returns the content length to declare:
// the size of a regular file, or filestream.UnknownLength otherwise.
//
// The path is stat'ed first only to choose between a mapping and an
// os.File. The returned length comes from the opened mapping or handle.
func Open(name string) (*File, int64, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, 0, err
	}
	if info.IsDir() {
		return nil, 0, &fs.PathError{Op: "open", Path: name, Err: ErrIsDir}
	}

	if info.Mode().IsRegular() && info.Size() > 0 {
		if mf, err := mmapfile.Open(name); err == nil {
			return &File{mm: mf}, int64(mf.Len()), nil
		}
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if st.IsDir() {
		f.Close()
		return nil, 0, &fs.PathError{Op: "open", Path: name, Err: ErrIsDir}
	}
	length := filestream.UnknownLength
	if st.Mode().IsRegular() {
		length = st.Size()
	}
	return &File{os: f}, length, nil
}

func (f *File) Read(p []byte) (int, error) {
	if f.mm != nil {
		return f.mm.Read(p)
	}

	return f.os.Read(p)
}

// Close releases the mapping or the descriptor.
func (f *File) Close() error {
	if f.mm != nil {
		return f.mm.Close()
	}

	return f.os.Close()
}

// Name returns the name passed to Open.
func (f *File) Name() string {
	if f.mm != nil {
		return f.mm.Name()
	}

	return f.os.Name()
}

// Stat retrieves file information.
func (f *File) Stat() (os.FileInfo, error) {
	if f.mm != nil {
		return f.mm.Stat()
	}

	return f.os.Stat()
}

// Mapped reports whether reads are served from a memory mapping.
func (f *File) Mapped() bool { return f.mm != nil }
