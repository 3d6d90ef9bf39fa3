// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import (
	"io"
)

// BufSize is the default scratch buffer size, and so the largest chunk a
// Source emits.
const BufSize = 8 * 1024

// UnknownLength declares that the source has no known content length.
// Any negative length is treated the same way.
const UnknownLength int64 = -1

type state uint8

const (
	stateOpen state = iota
	stateEOF        // source reported end of data alongside the last chunk
	stateDone
	stateFailed
)

// Source turns a reader into a lazily pulled sequence of owned byte chunks.
//
// A Source owns its reader exclusively from construction until Close. It
// reads only when pulled, at most one scratch buffer at a time, and never
// asks the reader for more than the declared content length in total.
//
// Source is not safe for concurrent use: one pull outstanding at a time.
type Source struct {
	r        Reader
	scratch  []byte
	limit    int64
	produced int64
	state    state
	pending  error // hard error seen alongside the last chunk
	err      error // terminal *SourceReadError
	closed   bool
}

// New returns a Source reading from r with a BufSize scratch buffer.
// contentLength caps the total number of bytes read and emitted; pass
// UnknownLength to read until r reports end of data.
//
// No I/O happens until the first pull.
func New(r Reader, contentLength int64) *Source {
	return NewBuffer(r, contentLength, nil)
}

// NewBuffer is like New but uses buf as the scratch buffer. The Source
// owns buf afterwards. If buf is nil, a BufSize buffer is allocated.
// If buf has zero length, NewBuffer panics.
func NewBuffer(r Reader, contentLength int64, buf []byte) *Source {
	if buf != nil && len(buf) == 0 {
		panic("empty buffer in filestream.NewBuffer")
	}
	if buf == nil {
		buf = make([]byte, BufSize)
	}
	if contentLength < 0 {
		contentLength = UnknownLength
	}
	return &Source{r: r, scratch: buf, limit: contentLength}
}

// Next performs one pull.
//
// Results:
//   - (chunk, nil): the next chunk, 1 to len(scratch) bytes, owned by the
//     caller.
//   - (nil, io.EOF): the stream ended, either because the declared length
//     was reached or the reader ran dry first. Neither is an error.
//   - (nil, ErrWouldBlock) or (nil, ErrMore): no bytes now; pull again
//     later. Nothing was consumed.
//   - (nil, *SourceReadError): terminal read failure.
//
// After io.EOF or a failure, Next keeps returning the same result without
// touching the reader.
func (s *Source) Next() ([]byte, error) {
	switch s.state {
	case stateDone, stateEOF:
		s.state = stateDone
		return nil, io.EOF
	case stateFailed:
		return nil, s.err
	}
	if s.pending != nil {
		return nil, s.fail(s.pending)
	}

	w := len(s.scratch)
	if s.limit >= 0 {
		remaining := s.limit - s.produced
		if remaining == 0 {
			// Also keeps a zero-length read, which looks like end of data,
			// from ever being issued.
			s.state = stateDone
			return nil, io.EOF
		}
		if remaining < int64(w) {
			w = int(remaining)
		}
	}

	n, err := s.r.Read(s.scratch[:w])
	if n < 0 || n > w {
		return nil, s.fail(ErrInvalidRead)
	}
	if n == 0 {
		switch {
		case err == nil, err == io.EOF:
			s.state = stateDone
			return nil, io.EOF
		case IsSemantic(err):
			return nil, err
		default:
			return nil, s.fail(err)
		}
	}

	chunk := make([]byte, n)
	copy(chunk, s.scratch[:n])
	s.produced += int64(n)

	switch {
	case err == nil, IsSemantic(err):
	case err == io.EOF:
		s.state = stateEOF
	default:
		s.pending = err
	}
	return chunk, nil
}

func (s *Source) fail(err error) error {
	s.state = stateFailed
	s.pending = nil
	s.err = &SourceReadError{Produced: s.produced, Err: err}
	return s.err
}

// Produced returns the number of bytes emitted so far.
func (s *Source) Produced() int64 { return s.produced }

// Limit returns the declared content length, or UnknownLength.
func (s *Source) Limit() int64 { return s.limit }

// Remaining returns the unspent budget, or UnknownLength when no length
// was declared.
func (s *Source) Remaining() int64 {
	if s.limit < 0 {
		return UnknownLength
	}
	return s.limit - s.produced
}

// BufferSize returns the scratch buffer size.
func (s *Source) BufferSize() int { return len(s.scratch) }

// Done reports whether the stream has terminated, successfully or not.
func (s *Source) Done() bool { return s.state == stateDone || s.state == stateFailed }

// Err returns the terminal *SourceReadError, or nil.
func (s *Source) Err() error { return s.err }

// Check reports a stream that ended successfully before its declared
// length as a *LengthError. It returns nil when no length was declared,
// when the stream has not ended, or when it failed (see Err).
//
// Next never applies this check; callers that need the declared length as
// a lower bound opt in here.
func (s *Source) Check() error {
	if s.limit < 0 || s.state != stateDone {
		return nil
	}
	if s.produced != s.limit {
		return &LengthError{Declared: s.limit, Produced: s.produced}
	}
	return nil
}

// Close releases the reader if it is a Closer. Close is idempotent.
//
// A stream that already reached its end (the reader reported io.EOF, or
// the declared length is spent) keeps returning io.EOF after Close. Pulls
// on a stream closed before its end return io.ErrClosedPipe, or the read
// error still waiting to be reported, wrapped in a *SourceReadError.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	switch {
	case s.state == stateEOF:
		s.state = stateDone
	case s.state != stateOpen:
	case s.pending != nil:
		s.fail(s.pending)
	case s.limit >= 0 && s.produced == s.limit:
		s.state = stateDone
	default:
		s.fail(io.ErrClosedPipe)
	}
	if c, ok := s.r.(Closer); ok {
		return c.Close()
	}
	return nil
}
