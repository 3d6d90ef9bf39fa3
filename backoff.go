// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import (
	"time"
)

const (
	// DefaultBackoffBase is the first wait of a fresh Backoff (500µs).
	DefaultBackoffBase = 500 * time.Microsecond

	// DefaultBackoffMax caps a single wait (100ms).
	DefaultBackoffMax = 100 * time.Millisecond
)

// Backoff paces re-polls of a source that keeps reporting ErrWouldBlock.
//
// The zero value is ready to use with DefaultBackoffBase and
// DefaultBackoffMax.
//
// Waits are grouped into blocks: block n performs n waits of base×n each,
// capped at max, with ±12.5% jitter so many stalled responses do not wake
// in lockstep.
type Backoff struct {
	block int
	step  int
	base  time.Duration
	max   time.Duration
	rng   uint64
}

func (b *Backoff) init() {
	b.block = 1
	if b.base <= 0 {
		b.base = DefaultBackoffBase
	}
	if b.max <= 0 {
		b.max = DefaultBackoffMax
	}
	if b.rng == 0 {
		b.rng = uint64(time.Now().UnixNano()) | 1
	}
}

// Wait sleeps for the current duration plus jitter and advances the
// progression.
func (b *Backoff) Wait() {
	if b.block == 0 {
		b.init()
	}
	time.Sleep(b.jitter(b.Duration()))

	b.step++
	if b.step >= b.block {
		b.step = 0
		b.block++
	}
}

// xorshift64; the high bits select a factor in [-128, 128)/1024.
func (b *Backoff) jitter(d time.Duration) time.Duration {
	b.rng ^= b.rng << 13
	b.rng ^= b.rng >> 7
	b.rng ^= b.rng << 17
	r := int64(b.rng>>32) % 256
	return d + time.Duration(int64(d)*(r-128)/1024)
}

// SetBase sets the first wait and the per-block increment.
func (b *Backoff) SetBase(d time.Duration) { b.base = d }

// SetMax sets the cap of a single wait.
func (b *Backoff) SetMax(d time.Duration) { b.max = d }

// Reset goes back to block 1. Configured base and max are kept.
func (b *Backoff) Reset() { b.block = 0; b.step = 0 }

// Block returns the current block, starting at 1.
func (b *Backoff) Block() int {
	if b.block == 0 {
		return 1
	}
	return b.block
}

// Duration returns the current wait without jitter.
func (b *Backoff) Duration() time.Duration {
	base := b.base
	if base <= 0 {
		base = DefaultBackoffBase
	}
	limit := b.max
	if limit <= 0 {
		limit = DefaultBackoffMax
	}
	d := time.Duration(b.Block()) * base
	if d > limit {
		return limit
	}
	return d
}
