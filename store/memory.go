// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sort"
	"sync"

	"github.com/danielhkuo/one-ballot/addr"
	"github.com/danielhkuo/one-ballot/models"
)

// Memory is an in-process Store. The single store mutex is what makes
// allocate-if-absent and choice increments atomic; callers above the
// Store interface never lock.
type Memory struct {
	mu        sync.RWMutex
	proposals map[addr.Address]*models.Proposal
	votes     map[addr.Address]*models.VoteRecord
}

func NewMemory() *Memory {
	return &Memory{
		proposals: make(map[addr.Address]*models.Proposal),
		votes:     make(map[addr.Address]*models.VoteRecord),
	}
}

func (m *Memory) CreateProposal(a addr.Address, p *models.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.proposals[a]; ok {
		return ErrAddressOccupied
	}
	m.proposals[a] = p.Clone()
	return nil
}

func (m *Memory) Proposal(a addr.Address) (*models.Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.proposals[a]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (m *Memory) ListProposals() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0, len(m.proposals))
	for a, p := range m.proposals {
		entries = append(entries, Entry{Addr: a, Proposal: p.Clone()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Addr.String() < entries[j].Addr.String()
	})
	return entries, nil
}

func (m *Memory) IncrementChoice(a addr.Address, choice string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.proposals[a]
	if !ok {
		return ErrNotFound
	}
	for i := range p.Choices {
		if p.Choices[i].Name == choice {
			p.Choices[i].Count++
			return nil
		}
	}
	return ErrUnknownChoice
}

func (m *Memory) DeleteProposal(a addr.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.proposals[a]; !ok {
		return ErrNotFound
	}
	delete(m.proposals, a)
	return nil
}

func (m *Memory) CreateVote(a addr.Address, v *models.VoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.votes[a]; ok {
		return ErrAddressOccupied
	}
	rec := *v
	m.votes[a] = &rec
	return nil
}

func (m *Memory) Vote(a addr.Address) (*models.VoteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.votes[a]
	if !ok {
		return nil, ErrNotFound
	}
	rec := *v
	return &rec, nil
}

func (m *Memory) Close() error {
	return nil
}
