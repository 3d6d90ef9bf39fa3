// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream_test

import (
	"bytes"
	"io"
	"testing"

	"code.hybscloud.com/filestream"
)

// devNull is a sink writer that discards all bytes.
type devNull struct{}

func (devNull) Write(p []byte) (int, error) { return len(p), nil }

var benchPayload = bytes.Repeat([]byte("filestream"), 64*1024/10)

func BenchmarkSource_Next(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchPayload)))
	buf := make([]byte, filestream.BufSize)
	for i := 0; i < b.N; i++ {
		src := filestream.NewBuffer(bytes.NewReader(benchPayload), int64(len(benchPayload)), buf)
		for {
			if _, err := src.Next(); err != nil {
				if err != io.EOF {
					b.Fatal(err)
				}
				break
			}
		}
	}
}

func BenchmarkBody_WriteTo(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchPayload)))
	buf := make([]byte, filestream.BufSize)
	for i := 0; i < b.N; i++ {
		src := filestream.NewBuffer(bytes.NewReader(benchPayload), filestream.UnknownLength, buf)
		if _, err := filestream.NewBody(src, nil).WriteTo(devNull{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBody_ReadViaCopy(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchPayload)))
	buf := make([]byte, filestream.BufSize)
	cp := make([]byte, 4096)
	for i := 0; i < b.N; i++ {
		src := filestream.NewBuffer(bytes.NewReader(benchPayload), filestream.UnknownLength, buf)
		// struct{ io.Reader } hides WriterTo so the Read path is measured.
		if _, err := io.CopyBuffer(devNull{}, struct{ io.Reader }{filestream.NewBody(src, nil)}, cp); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClassify(b *testing.B) {
	b.ReportAllocs()
	chunk := []byte("x")
	errs := []error{nil, io.EOF, filestream.ErrWouldBlock, filestream.ErrMore, io.ErrUnexpectedEOF}
	for i := 0; i < b.N; i++ {
		_ = filestream.Classify(chunk, errs[i%len(errs)])
	}
}
