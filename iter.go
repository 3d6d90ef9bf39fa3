// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import (
	"io"
	"iter"
)

// Chunks returns the stream as a range-over-func sequence.
//
//   - Each chunk is yielded as (chunk, nil).
//   - End of data ends the sequence without a final element.
//   - A failure is yielded once as (nil, *SourceReadError), then the
//     sequence ends.
//   - On ErrWouldBlock or ErrMore the policy decides: PolicyRetry calls
//     Yield(OpPoll) and pulls again; otherwise (nil, err) is yielded so the
//     consumer sees the suspension. Continuing the range pulls again;
//     breaking leaves the Source where it was.
//
// A nil policy is ReturnPolicy. The sequence is single-use: ranging over it
// again resumes from wherever the Source is.
func (s *Source) Chunks(policy SemanticPolicy) iter.Seq2[[]byte, error] {
	if policy == nil {
		policy = ReturnPolicy{}
	}
	return func(yield func([]byte, error) bool) {
		for {
			chunk, err := s.Next()
			switch {
			case err == nil:
				notifyProgress(policy)
				if !yield(chunk, nil) {
					return
				}
			case err == io.EOF:
				return
			case IsWouldBlock(err):
				if policy.OnWouldBlock(OpPoll) == PolicyRetry {
					policy.Yield(OpPoll)
					continue
				}
				if !yield(nil, err) {
					return
				}
			case IsMore(err):
				if policy.OnMore(OpPoll) == PolicyRetry {
					policy.Yield(OpPoll)
					continue
				}
				if !yield(nil, err) {
					return
				}
			default:
				yield(nil, err)
				return
			}
		}
	}
}
