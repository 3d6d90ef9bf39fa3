// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import (
	"errors"
	"io"
)

// Status classifies the result of one pull (Source.Next).
//
// StatusChunk:    a chunk was produced.
// StatusDone:     the stream ended successfully; no more chunks.
// StatusPending:  the source would block; pull again after readiness.
// StatusMore:     the source is mid multi-shot; pull again.
// StatusFailure:  terminal read failure.
type Status uint8

const (
	StatusFailure Status = iota
	StatusChunk
	StatusDone
	StatusPending
	StatusMore
)

func (s Status) String() string {
	switch s {
	case StatusChunk:
		return "Chunk"
	case StatusDone:
		return "Done"
	case StatusPending:
		return "Pending"
	case StatusMore:
		return "More"
	default:
		return "Failure"
	}
}

// IsWouldBlock reports whether err carries the would-block semantic,
// including wrapped forms.
func IsWouldBlock(err error) bool { return errors.Is(err, ErrWouldBlock) }

// IsMore reports whether err carries the multi-shot semantic, including
// wrapped forms.
func IsMore(err error) bool { return errors.Is(err, ErrMore) }

// IsSemantic reports whether err is ErrWouldBlock or ErrMore.
func IsSemantic(err error) bool { return IsWouldBlock(err) || IsMore(err) }

// IsNonFailure reports whether a pull result should be handled without
// tearing the response down: nil, io.EOF, ErrWouldBlock or ErrMore.
func IsNonFailure(err error) bool { return err == nil || err == io.EOF || IsSemantic(err) }

// Classify maps one Next result to a Status. Use when a compact switch is
// preferred over inspecting the error.
func Classify(chunk []byte, err error) Status {
	if err == nil {
		if len(chunk) > 0 {
			return StatusChunk
		}
		return StatusDone
	}
	if err == io.EOF {
		return StatusDone
	}
	if IsWouldBlock(err) {
		return StatusPending
	}
	if IsMore(err) {
		return StatusMore
	}
	return StatusFailure
}
