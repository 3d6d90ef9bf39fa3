// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import (
	"io"
)

var (
	_ ReadCloser = (*Body)(nil)
	_ WriterTo   = (*Body)(nil)
)

// flusher matches http.Flusher without importing net/http.
type flusher interface {
	Flush()
}

// Body adapts a Source to an HTTP response body. It is an io.ReadCloser
// (for http.Response.Body and similar consumers) and an io.WriterTo (for
// io.Copy into an http.ResponseWriter).
//
// Body holds at most one chunk that the consumer has not taken yet.
type Body struct {
	src    *Source
	policy SemanticPolicy
	rest   []byte // unconsumed tail of the current chunk
}

// NewBody returns a Body draining src. policy governs ErrWouldBlock and
// ErrMore on both the pull side (OpPoll) and, in WriteTo, the write side
// (OpBodyWrite). A nil policy is ReturnPolicy: every suspension reaches
// the caller, who retries the same call later.
func NewBody(src *Source, policy SemanticPolicy) *Body {
	if policy == nil {
		policy = ReturnPolicy{}
	}
	return &Body{src: src, policy: policy}
}

// Source returns the Source behind b.
func (b *Body) Source() *Source { return b.src }

// fill pulls until a chunk is available or a result must be returned.
func (b *Body) fill() error {
	for len(b.rest) == 0 {
		chunk, err := b.src.Next()
		if err == nil {
			notifyProgress(b.policy)
			b.rest = chunk
			return nil
		}
		if IsWouldBlock(err) {
			if b.policy.OnWouldBlock(OpPoll) == PolicyRetry {
				b.policy.Yield(OpPoll)
				continue
			}
			return err
		}
		if IsMore(err) {
			if b.policy.OnMore(OpPoll) == PolicyRetry {
				b.policy.Yield(OpPoll)
				continue
			}
			return err
		}
		return err
	}
	return nil
}

// Read copies bytes of the stream into p.
//
// Read returns io.EOF at end of data, ErrWouldBlock or ErrMore when the
// policy returns them, and the *SourceReadError on failure. Bytes already
// copied are reported with a nil error first.
func (b *Body) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := b.fill(); err != nil {
		return 0, err
	}
	n := copy(p, b.rest)
	b.rest = b.rest[n:]
	return n, nil
}

// WriteTo writes the rest of the stream to dst chunk by chunk, flushing
// after each chunk when dst has a Flush method.
//
// If dst returns ErrWouldBlock or ErrMore and the policy does not retry,
// WriteTo returns it with the count written so far. The unwritten part of
// the chunk stays in b, so calling WriteTo (or Read) again resumes without
// loss. End of data returns (written, nil).
func (b *Body) WriteTo(dst Writer) (written int64, err error) {
	fl, _ := dst.(flusher)
	for {
		if err = b.fill(); err != nil {
			if err == io.EOF {
				err = nil
			}
			return written, err
		}
		for len(b.rest) > 0 {
			nw, ew := dst.Write(b.rest)
			if nw < 0 || nw > len(b.rest) {
				return written, io.ErrShortWrite
			}
			if nw > 0 {
				written += int64(nw)
				b.rest = b.rest[nw:]
				notifyProgress(b.policy)
			}
			if ew != nil {
				if IsWouldBlock(ew) {
					if b.policy.OnWouldBlock(OpBodyWrite) == PolicyRetry {
						b.policy.Yield(OpBodyWrite)
						continue
					}
					return written, ew
				}
				if IsMore(ew) {
					if b.policy.OnMore(OpBodyWrite) == PolicyRetry {
						b.policy.Yield(OpBodyWrite)
						continue
					}
					return written, ew
				}
				return written, ew
			}
			if nw == 0 {
				return written, io.ErrShortWrite
			}
		}
		if fl != nil {
			fl.Flush()
		}
	}
}

// Close releases the Source and drops any buffered tail.
func (b *Body) Close() error {
	b.rest = nil
	return b.src.Close()
}
