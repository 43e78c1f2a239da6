// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package clock

import (
	"sync/atomic"
	"time"
)

// Clock supplies the single trusted timestamp every time-gated check
// compares against. Injected so tests can pin time deterministically.
type Clock interface {
	// Now returns the current time as unix seconds.
	Now() uint64
}

// System reads the wall clock.
type System struct{}

func (System) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Fixed is a Clock pinned to a settable instant. Safe for concurrent use.
type Fixed struct {
	t atomic.Uint64
}

// NewFixed returns a Fixed clock reporting t.
func NewFixed(t uint64) *Fixed {
	f := &Fixed{}
	f.t.Store(t)
	return f
}

func (f *Fixed) Now() uint64 {
	return f.t.Load()
}

// Set moves the clock to t.
func (f *Fixed) Set(t uint64) {
	f.t.Store(t)
}

// Advance moves the clock forward by d seconds.
func (f *Fixed) Advance(d uint64) {
	f.t.Add(d)
}
