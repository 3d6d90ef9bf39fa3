// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream_test

import (
	"io"

	"code.hybscloud.com/filestream"
)

// step is one scripted Read result: b is copied into p, err is returned.
type step struct {
	b   string
	err error
}

// scriptedReader replays steps and records the size of every read window.
// Past the end of the script it reports io.EOF.
type scriptedReader struct {
	steps   []step
	i       int
	windows []int
	closed  int
}

func (s *scriptedReader) Read(p []byte) (int, error) {
	s.windows = append(s.windows, len(p))
	if s.i >= len(s.steps) {
		return 0, io.EOF
	}
	st := s.steps[s.i]
	s.i++
	n := copy(p, st.b)
	return n, st.err
}

func (s *scriptedReader) Close() error { s.closed++; return nil }

// recordingReader wraps r and records the size of every read window.
type recordingReader struct {
	r       io.Reader
	windows []int
}

func (r *recordingReader) Read(p []byte) (int, error) {
	r.windows = append(r.windows, len(p))
	return r.r.Read(p)
}

// endlessReader fills every window completely, forever.
type endlessReader struct{ reads int }

func (r *endlessReader) Read(p []byte) (int, error) {
	r.reads++
	for i := range p {
		p[i] = 'x'
	}
	return len(p), nil
}

// overReader claims to have filled more than it was given.
type overReader struct{}

func (overReader) Read(p []byte) (int, error) { return len(p) + 1, nil }

// recPolicy is a configurable SemanticPolicy that records Yield calls and
// progress notifications.
type recPolicy struct {
	onWB     map[filestream.Op]filestream.PolicyAction
	onMore   map[filestream.Op]filestream.PolicyAction
	yields   []filestream.Op
	progress int
}

func (p *recPolicy) Yield(op filestream.Op) { p.yields = append(p.yields, op) }
func (p *recPolicy) OnWouldBlock(op filestream.Op) filestream.PolicyAction {
	if a, ok := p.onWB[op]; ok {
		return a
	}
	return filestream.PolicyReturn
}
func (p *recPolicy) OnMore(op filestream.Op) filestream.PolicyAction {
	if a, ok := p.onMore[op]; ok {
		return a
	}
	return filestream.PolicyReturn
}
func (p *recPolicy) Progress() { p.progress++ }

// drain pulls src to a terminal result, failing on any suspension.
func drain(src *filestream.Source) (chunks []string, err error) {
	for {
		chunk, err := src.Next()
		if err != nil {
			if err == io.EOF {
				return chunks, nil
			}
			return chunks, err
		}
		chunks = append(chunks, string(chunk))
	}
}
