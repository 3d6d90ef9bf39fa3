// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import "runtime"

// Op identifies where a semantic signal (ErrWouldBlock / ErrMore) came from.
//
// OpPoll is the source side (a pull on Source.Next). OpBodyWrite is the
// destination side of Body.WriteTo.
type Op uint8

const (
	OpPoll Op = iota
	OpBodyWrite
)

func (op Op) String() string {
	switch op {
	case OpPoll:
		return "Poll"
	case OpBodyWrite:
		return "BodyWrite"
	default:
		return "Op(unknown)"
	}
}

// PolicyAction tells a driver whether it should return to the caller
// or pull/write again.
type PolicyAction uint8

const (
	// PolicyReturn means: surface the semantic error to the caller.
	PolicyReturn PolicyAction = iota

	// PolicyRetry means: call Yield, then try again.
	PolicyRetry
)

// SemanticPolicy customizes how a driver (Body, Source.Chunks) reacts to
// semantic errors. Source.Next itself never consults a policy.
//
// Contract expectations:
//   - OnWouldBlock / OnMore are only called for the matching semantic errors.
//   - If PolicyRetry is returned, the driver calls Yield(op) and then retries.
//   - If Yield(op) does not actually wait for readiness, the driver may spin.
type SemanticPolicy interface {
	Yield(op Op)
	OnWouldBlock(op Op) PolicyAction
	OnMore(op Op) PolicyAction
}

// PolicyFunc builds a SemanticPolicy from optional funcs.
//
// Default behaviors when fields are nil:
//   - YieldFunc: runtime.Gosched()
//   - WouldBlockFunc: PolicyReturn
//   - MoreFunc: PolicyReturn
type PolicyFunc struct {
	YieldFunc      func(op Op)
	WouldBlockFunc func(op Op) PolicyAction
	MoreFunc       func(op Op) PolicyAction
}

func (p PolicyFunc) Yield(op Op) {
	if p.YieldFunc != nil {
		p.YieldFunc(op)
		return
	}
	runtime.Gosched()
}

func (p PolicyFunc) OnWouldBlock(op Op) PolicyAction {
	if p.WouldBlockFunc != nil {
		return p.WouldBlockFunc(op)
	}
	return PolicyReturn
}

func (p PolicyFunc) OnMore(op Op) PolicyAction {
	if p.MoreFunc != nil {
		return p.MoreFunc(op)
	}
	return PolicyReturn
}

// ReturnPolicy never waits and never retries. Every suspension reaches the
// caller. A nil policy behaves the same.
type ReturnPolicy struct{}

func (ReturnPolicy) Yield(Op) {}

func (ReturnPolicy) OnWouldBlock(Op) PolicyAction { return PolicyReturn }

func (ReturnPolicy) OnMore(Op) PolicyAction { return PolicyReturn }

// YieldPolicy retries both semantics on both sides after YieldFunc
// (runtime.Gosched when nil). Use it when a goroutine owns the response and
// blocking-ish behavior is wanted.
type YieldPolicy struct {
	YieldFunc func(op Op)
}

func (p YieldPolicy) Yield(op Op) {
	if p.YieldFunc != nil {
		p.YieldFunc(op)
		return
	}
	runtime.Gosched()
}

func (YieldPolicy) OnWouldBlock(Op) PolicyAction { return PolicyRetry }

func (YieldPolicy) OnMore(Op) PolicyAction { return PolicyRetry }

// BackoffPolicy retries both semantics and sleeps on Backoff between
// attempts. ErrMore resets the backoff first, so the wait after it is the
// shortest one.
//
// A BackoffPolicy is stateful; use one per response.
type BackoffPolicy struct {
	Backoff Backoff
}

func (p *BackoffPolicy) Yield(op Op) { p.Backoff.Wait() }

func (*BackoffPolicy) OnWouldBlock(Op) PolicyAction { return PolicyRetry }

func (p *BackoffPolicy) OnMore(Op) PolicyAction {
	p.Backoff.Reset()
	return PolicyRetry
}

// Progress tells the policy a driver moved bytes, so the next wait starts
// from the first block again.
func (p *BackoffPolicy) Progress() { p.Backoff.Reset() }

// progressNotifier is implemented by stateful policies that want to hear
// about forward progress.
type progressNotifier interface {
	Progress()
}

func notifyProgress(p SemanticPolicy) {
	if pn, ok := p.(progressNotifier); ok {
		pn.Progress()
	}
}
