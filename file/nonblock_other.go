// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package file

import (
	"io"
)

// OpenNonblock falls back to Open on platforms without the raw descriptor
// path; reads may block.
func OpenNonblock(name string) (io.ReadCloser, int64, error) {
	f, length, err := Open(name)
	if err != nil {
		return nil, 0, err
	}
	return f, length, nil
}
