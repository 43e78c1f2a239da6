// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/danielhkuo/one-ballot/addr"

// Identity is an externally-verified caller principal (a proposal creator
// or a voter). Verification happens at the transport edge; the core treats
// it as opaque bytes.
type Identity string

// Validation limits enforced at proposal creation.
const (
	MaxStringBytes = 64
	MinChoices     = 2
	MaxChoices     = 5
)

// Proposal status values, computed from the current time relative to the
// proposal's own dates. No status flag is ever stored.
const (
	StatusPending = "pending"
	StatusOpen    = "open"
	StatusClosed  = "closed"
)

// Request types

type CreateProposalRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Choices     []string `json:"choices"`
	DateStart   uint64   `json:"date_start"`
	DateEnd     uint64   `json:"date_end"`
}

type CastVoteRequest struct {
	Choice string `json:"choice"`
}

// Response types

type IssueIdentityResponse struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

type CreateProposalResponse struct {
	Address string `json:"address"`
}

type CastVoteResponse struct {
	VoteAddress string `json:"vote_address"`
	Message     string `json:"message"`
}

type DeleteProposalResponse struct {
	RefundTo    string `json:"refund_to"`
	RefundBytes int    `json:"refund_bytes"`
	Message     string `json:"message"`
}

// Domain types

// Proposal is a titled, time-bounded ballot with 2-5 named choices. Its
// storage address is derived from the title, so exactly one proposal can
// exist per distinct title. Everything except choice counts is immutable
// after creation.
type Proposal struct {
	Creator     Identity `json:"creator"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Choices     []Choice `json:"choices"`
	DateStart   uint64   `json:"date_start"`
	DateEnd     uint64   `json:"date_end"`
}

// Choice is one selectable option on a proposal with a running vote count.
// Counts start at zero and never decrease.
type Choice struct {
	Name  string `json:"name"`
	Count uint16 `json:"count"`
}

// VoteRecord is the unique, immutable proof that an identity voted on a
// proposal. Its address is derived from the (proposal, voter) pair, so its
// mere existence is the double-vote guard; no field is ever read back for
// exclusivity to hold.
type VoteRecord struct {
	Voter    Identity     `json:"voter"`
	Proposal addr.Address `json:"proposal"`
	Choice   string       `json:"choice"`
}

// Refund describes the storage credited back to an identity when a
// proposal record is destroyed.
type Refund struct {
	Recipient Identity `json:"recipient"`
	Bytes     int      `json:"bytes"`
}

// ProposalSummary is the list-view projection of a proposal.
type ProposalSummary struct {
	Address    string `json:"address"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	DateStart  uint64 `json:"date_start"`
	DateEnd    uint64 `json:"date_end"`
	TotalVotes int    `json:"total_votes"`
}

// ProposalDetail is the single-proposal view with current tallies.
type ProposalDetail struct {
	Address string `json:"address"`
	Status  string `json:"status"`
	Proposal
}

// Status reports the proposal's lifecycle state at time now (unix
// seconds). The voting window is [DateStart, DateEnd): the upper bound is
// exclusive.
func (p *Proposal) Status(now uint64) string {
	switch {
	case now < p.DateStart:
		return StatusPending
	case now < p.DateEnd:
		return StatusOpen
	default:
		return StatusClosed
	}
}

// TotalVotes is the sum of all choice counts.
func (p *Proposal) TotalVotes() int {
	total := 0
	for _, c := range p.Choices {
		total += int(c.Count)
	}
	return total
}

// StorageSize is the logical size in bytes of the stored record, credited
// back to the creator when the record is destroyed.
func (p *Proposal) StorageSize() int {
	n := len(p.Creator) + len(p.Title) + len(p.Description) + 16
	for _, c := range p.Choices {
		n += len(c.Name) + 2
	}
	return n
}

// Clone returns a deep copy. Store backends hand out clones so callers
// never alias the stored record.
func (p *Proposal) Clone() *Proposal {
	cp := *p
	cp.Choices = make([]Choice, len(p.Choices))
	copy(cp.Choices, p.Choices)
	return &cp
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
