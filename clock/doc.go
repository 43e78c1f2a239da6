// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package clock wraps the trusted time source behind a one-method interface.

Proposal lifecycle state is never stored; it is always computed from the
current time relative to the proposal's own dates. Every such check reads
from a Clock:

	engine := voting.NewEngine(store, clock.System{})

Tests inject a Fixed clock and move it explicitly:

	clk := clock.NewFixed(150)
	clk.Advance(50) // now 200
*/
package clock
