// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package filestream turns a file (or any reader) into a lazily pulled
// sequence of byte chunks for HTTP response bodies, without loading the
// file into memory.
//
// A Source reads at most one scratch buffer (BufSize, 8 KiB) per pull and
// never asks its reader for more than the declared content length, so a file
// that grew after its size was taken cannot make a response disagree with
// its Content-Length header. A file that shrank simply ends the stream early;
// Source.Check reports that case on request.
//
// Non-blocking sources
//   - ErrWouldBlock: nothing to read now. Next returns it without consuming
//     budget; pull again once the source is readable.
//   - ErrMore: a multi-shot read is still in flight. Keep pulling.
//
// Source.Next never retries. Retrying is the job of whoever drives the
// Source: an event loop calling Next directly, or Body and Source.Chunks,
// which consult a SemanticPolicy.
package filestream
