// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import (
	"io"
)

// Reader is the byte source a Source pulls from.
//
// Read fills a prefix of p and reports how many bytes it filled. Beyond the
// standard io contract, a Source understands:
//   - (0, ErrWouldBlock): nothing available now; the pull suspends.
//   - (0, ErrMore): a multi-shot read is still running; the pull suspends.
//   - (n > 0, ErrWouldBlock|ErrMore): n bytes are delivered; the semantic
//     only matters for the next pull.
//   - (0, nil) or (0, EOF): end of data.
//
// Reader is an alias of io.Reader.
type Reader = io.Reader

// Writer is the destination of Body.WriteTo. Write may return
// ErrWouldBlock or ErrMore with a short count; the unwritten tail is kept
// for the next call.
//
// Writer is an alias of io.Writer.
type Writer = io.Writer

// Closer is implemented by readers that hold a resource, such as an open
// file. Source.Close and Body.Close call it.
//
// Closer is an alias of io.Closer.
type Closer = io.Closer

// ReadCloser is what Body offers to HTTP clients and servers.
//
// ReadCloser is an alias of io.ReadCloser.
type ReadCloser = io.ReadCloser

// WriterTo lets io.Copy and net/http hand the whole body to Body.WriteTo.
//
// WriterTo is an alias of io.WriterTo.
type WriterTo = io.WriterTo

// EOF ends a stream. Next returns it once the declared length is reached or
// the reader runs dry.
var EOF = io.EOF
