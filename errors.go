// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import (
	"errors"
	"fmt"
)

// filestream recognizes two semantic errors returned by non-blocking sources.
//
// Mental model:
//   - ErrWouldBlock: the source has nothing right now; pull again later.
//   - ErrMore: the source completed part of a multi-shot read; keep pulling.
//
// Neither is a failure. A Source passes them through to its puller without
// consuming budget, and never retries on its own.

// ErrWouldBlock means the source cannot deliver bytes without waiting.
// Linux analogy: EAGAIN/EWOULDBLOCK on a descriptor opened with O_NONBLOCK.
var ErrWouldBlock = errors.New("filestream: would block")

// ErrMore means the source's read remains active and more completions
// will follow.
var ErrMore = errors.New("filestream: expect more")

// ErrInvalidRead means the reader returned a count outside [0, len(p)].
// It is reported wrapped in a *SourceReadError.
var ErrInvalidRead = errors.New("filestream: invalid read count")

// ErrLengthMismatch is matched by *LengthError. It is only produced by
// Source.Check; the pull path never reports it.
var ErrLengthMismatch = errors.New("filestream: length mismatch")

// SourceReadError is the terminal failure of a Source. It wraps the error
// the underlying read reported, without interpreting it.
type SourceReadError struct {
	// Produced is the number of bytes emitted before the failure.
	Produced int64
	Err      error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("filestream: source read failed after %d bytes: %v", e.Produced, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// LengthError reports a stream that ended before its declared length.
type LengthError struct {
	Declared int64
	Produced int64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("filestream: declared %d bytes, produced %d", e.Declared, e.Produced)
}

func (e *LengthError) Is(target error) bool { return target == ErrLengthMismatch }
