// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the proposal/vote state machine.

# Operations

Three state transitions, each taking an authenticated identity:

	engine := voting.NewEngine(store, clock.System{})

	addr, err := engine.CreateProposal(creator, title, desc, choices, start, end)
	voteAddr, err := engine.CastVote(voter, addr, "A")
	refund, err := engine.DeleteProposal(creator, addr)

# Uniqueness without locks

The engine never locks. A proposal's address is derived from its title, a
vote record's address from the (proposal, voter) pair; both are created
with the store's atomic allocate-if-absent primitive. A duplicate title
or a second vote by the same voter derives an already-occupied address
and the allocation fails - that failure is the entire mutual-exclusion
mechanism.

# Lifecycle

A proposal's state is purely a function of the current time t against its
own dates; nothing is stored:

	pending:   t < date_start          votes fail ErrVoteNotOpen
	open:      date_start <= t < date_end
	closed:    t >= date_end           votes fail ErrVoteClosed
	deletable: t > date_end and t - date_end >= ThirtyDays, creator only

# Errors

Every failure is a sentinel error naming the precondition that failed
(see the var block in engine.go). Errors propagate to the caller
unchanged; the engine performs no retries, recovery, or logging.

# Known quirk

CastVote allocates the vote record before validating the choice name. A
vote for a nonexistent choice therefore leaves an orphaned vote record
and the voter cannot vote again. Inherited behavior, kept deliberately:
reordering would let a rejected duplicate vote touch the proposal.
*/
package voting
