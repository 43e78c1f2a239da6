// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/one-ballot/addr"
	"github.com/danielhkuo/one-ballot/clock"
	"github.com/danielhkuo/one-ballot/models"
	"github.com/danielhkuo/one-ballot/store"
)

// ThirtyDays is the grace period in seconds between a proposal's end date
// and the earliest moment its creator may delete it.
const ThirtyDays uint64 = 2_592_000

// Address derivation namespaces.
const (
	NamespaceProposal = "proposal"
	NamespaceVote     = "vote"
)

// Every failure is a synchronous validation error identifying exactly
// which precondition failed. None is retryable with identical input, and
// none leaves partial state.
var (
	// Input validation
	ErrInvalidNumberOfChoices = errors.New("number of choices must be between 2 and 5")
	ErrDateNotConform         = errors.New("start date is after end date")
	ErrValueTooLong           = errors.New("value exceeds 64 bytes")
	ErrDuplicateChoice        = errors.New("duplicate choice name")

	// Uniqueness conflicts
	ErrDuplicateProposal = errors.New("a proposal with this title already exists")
	ErrDuplicateVote     = errors.New("identity has already voted on this proposal")

	// State and window violations
	ErrProposalNotFound = errors.New("proposal not found")
	ErrVoteNotFound     = errors.New("no vote record for this identity")
	ErrInvalidChoice    = errors.New("choice does not exist in this proposal")
	ErrVoteNotOpen      = errors.New("vote is not open yet")
	ErrVoteClosed       = errors.New("vote is closed")

	// Authorization and lifecycle violations
	ErrNotAuthorized     = errors.New("only the creator may delete this proposal")
	ErrVoteNotEnded      = errors.New("vote has not ended")
	ErrTooRecentToDelete = errors.New("vote closed too recently to delete")
)

// Engine is the proposal/vote state machine. It owns no synchronization:
// both uniqueness guarantees (one proposal per title, one vote per voter
// per proposal) come entirely from deriving a deterministic address and
// letting the store's allocate-if-absent primitive fail on occupancy.
type Engine struct {
	store store.Store
	clock clock.Clock
}

func NewEngine(st store.Store, clk clock.Clock) *Engine {
	return &Engine{store: st, clock: clk}
}

// CreateProposal validates the request, derives the proposal address from
// the title, and allocates the record if the address is free. A duplicate
// title derives the same address and fails with ErrDuplicateProposal,
// leaving the existing proposal untouched.
func (e *Engine) CreateProposal(
	creator models.Identity,
	title string,
	description string,
	choices []string,
	dateStart uint64,
	dateEnd uint64,
) (addr.Address, error) {
	if len(choices) < models.MinChoices || len(choices) > models.MaxChoices {
		return addr.Address{}, ErrInvalidNumberOfChoices
	}
	if dateStart > dateEnd {
		return addr.Address{}, ErrDateNotConform
	}
	if len(title) > models.MaxStringBytes {
		return addr.Address{}, fmt.Errorf("title: %w", ErrValueTooLong)
	}
	if len(description) > models.MaxStringBytes {
		return addr.Address{}, fmt.Errorf("description: %w", ErrValueTooLong)
	}

	seen := make(map[string]bool, len(choices))
	proposalChoices := make([]models.Choice, 0, len(choices))
	for _, name := range choices {
		if len(name) > models.MaxStringBytes {
			return addr.Address{}, fmt.Errorf("choice %q: %w", name, ErrValueTooLong)
		}
		if seen[name] {
			return addr.Address{}, fmt.Errorf("choice %q: %w", name, ErrDuplicateChoice)
		}
		seen[name] = true
		proposalChoices = append(proposalChoices, models.Choice{Name: name, Count: 0})
	}

	a := addr.Derive(NamespaceProposal, []byte(title))
	p := &models.Proposal{
		Creator:     creator,
		Title:       title,
		Description: description,
		Choices:     proposalChoices,
		DateStart:   dateStart,
		DateEnd:     dateEnd,
	}
	if err := e.store.CreateProposal(a, p); err != nil {
		if errors.Is(err, store.ErrAddressOccupied) {
			return addr.Address{}, ErrDuplicateProposal
		}
		return addr.Address{}, err
	}
	return a, nil
}

// CastVote records one vote by voter on the proposal at proposalAddr. The
// voting window is checked first, then the vote record is allocated at
// its derived (proposal, voter) address - the allocate-if-absent failure
// is the entire double-vote guard - and finally the chosen option's count
// is incremented.
//
// If the choice name does not match any option, the already-allocated
// vote record stays behind and no count changes. That ordering keeps the
// duplicate check ahead of the fallible increment so a rejected duplicate
// can never touch the proposal.
func (e *Engine) CastVote(
	voter models.Identity,
	proposalAddr addr.Address,
	choice string,
) (addr.Address, error) {
	p, err := e.store.Proposal(proposalAddr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return addr.Address{}, ErrProposalNotFound
		}
		return addr.Address{}, err
	}

	t := e.clock.Now()
	if t < p.DateStart {
		return addr.Address{}, ErrVoteNotOpen
	}
	if t >= p.DateEnd {
		return addr.Address{}, ErrVoteClosed
	}

	voteAddr := addr.Derive(NamespaceVote, proposalAddr.Bytes(), []byte(voter))
	rec := &models.VoteRecord{
		Voter:    voter,
		Proposal: proposalAddr,
		Choice:   choice,
	}
	if err := e.store.CreateVote(voteAddr, rec); err != nil {
		if errors.Is(err, store.ErrAddressOccupied) {
			return addr.Address{}, ErrDuplicateVote
		}
		return addr.Address{}, err
	}

	if err := e.store.IncrementChoice(proposalAddr, choice); err != nil {
		switch {
		case errors.Is(err, store.ErrUnknownChoice):
			return addr.Address{}, ErrInvalidChoice
		case errors.Is(err, store.ErrNotFound):
			return addr.Address{}, ErrProposalNotFound
		default:
			return addr.Address{}, err
		}
	}
	return voteAddr, nil
}

// DeleteProposal destroys the proposal record and returns the storage
// refund credited to the signer. Only the creator may delete, only after
// the vote has ended, and only once the grace period has elapsed. Vote
// records are left in place.
func (e *Engine) DeleteProposal(
	signer models.Identity,
	proposalAddr addr.Address,
) (models.Refund, error) {
	p, err := e.store.Proposal(proposalAddr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Refund{}, ErrProposalNotFound
		}
		return models.Refund{}, err
	}

	if p.Creator != signer {
		return models.Refund{}, ErrNotAuthorized
	}

	t := e.clock.Now()
	if t <= p.DateEnd {
		return models.Refund{}, ErrVoteNotEnded
	}
	if t-p.DateEnd < ThirtyDays {
		return models.Refund{}, ErrTooRecentToDelete
	}

	if err := e.store.DeleteProposal(proposalAddr); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Refund{}, ErrProposalNotFound
		}
		return models.Refund{}, err
	}
	return models.Refund{Recipient: signer, Bytes: p.StorageSize()}, nil
}

// Proposal returns the proposal stored at a.
func (e *Engine) Proposal(a addr.Address) (*models.Proposal, error) {
	p, err := e.store.Proposal(a)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return p, nil
}

// Proposals lists all stored proposals with their time-derived status.
func (e *Engine) Proposals() ([]models.ProposalSummary, error) {
	entries, err := e.store.ListProposals()
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	summaries := make([]models.ProposalSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, models.ProposalSummary{
			Address:    entry.Addr.String(),
			Title:      entry.Proposal.Title,
			Status:     entry.Proposal.Status(now),
			DateStart:  entry.Proposal.DateStart,
			DateEnd:    entry.Proposal.DateEnd,
			TotalVotes: entry.Proposal.TotalVotes(),
		})
	}
	return summaries, nil
}

// Vote returns the vote record cast by voter on the given proposal.
// Fails with ErrVoteNotFound if the voter never voted on it. Used by the
// API layer's "my vote" lookup.
func (e *Engine) Vote(proposalAddr addr.Address, voter models.Identity) (*models.VoteRecord, error) {
	voteAddr := addr.Derive(NamespaceVote, proposalAddr.Bytes(), []byte(voter))
	v, err := e.store.Vote(voteAddr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return v, nil
}

// Now exposes the engine's clock reading so the API layer can report
// time-derived status consistently with the engine's own checks.
func (e *Engine) Now() uint64 {
	return e.clock.Now()
}
