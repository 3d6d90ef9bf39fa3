// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package file

import (
	"io"
	"io/fs"

	"code.hybscloud.com/filestream"
	"golang.org/x/sys/unix"
)

// nonblockFile reads a raw descriptor opened with O_NONBLOCK.
type nonblockFile struct {
	fd   int
	name string
}

// OpenNonblock opens name with O_NONBLOCK and returns it with the content
// length to declare (the size for regular files, UnknownLength otherwise).
//
// Reads map EAGAIN and EINTR to filestream.ErrWouldBlock; the puller
// decides when to try again. Regular files never report EAGAIN on Linux,
// so this mostly matters for FIFOs and character devices.
func OpenNonblock(name string) (io.ReadCloser, int64, error) {
	fd, err := unix.Open(name, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, 0, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		unix.Close(fd)
		return nil, 0, &fs.PathError{Op: "fstat", Path: name, Err: err}
	}

	length := filestream.UnknownLength
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		unix.Close(fd)
		return nil, 0, &fs.PathError{Op: "open", Path: name, Err: ErrIsDir}
	case unix.S_IFREG:
		length = int64(st.Size)
	}

	return &nonblockFile{fd: fd, name: name}, length, nil
}

func (f *nonblockFile) Read(p []byte) (int, error) {
	if f.fd < 0 {
		return 0, fs.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := unix.Read(f.fd, p)
	switch {
	case err == unix.EAGAIN, err == unix.EINTR:
		return 0, filestream.ErrWouldBlock
	case err != nil:
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: err}
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}

func (f *nonblockFile) Close() error {
	if f.fd < 0 {
		return nil
	}
	err := unix.Close(f.fd)
	f.fd = -1
	if err != nil {
		return &fs.PathError{Op: "close", Path: f.name, Err: err}
	}
	return nil
}
