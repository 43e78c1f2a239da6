// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/one-ballot/addr"
	"github.com/danielhkuo/one-ballot/models"
)

// SQLStore is a Store backed by database/sql, usable with both the
// modernc sqlite driver and lib/pq. Allocate-if-absent rides on the
// PRIMARY KEY over the address column: the second insert at an address
// fails with a constraint violation, which maps to ErrAddressOccupied.
type SQLStore struct {
	db *sql.DB
}

const schema = `
-- Proposals, one row per derived address
CREATE TABLE IF NOT EXISTS proposal (
    address TEXT PRIMARY KEY,
    creator TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date_start BIGINT NOT NULL,
    date_end BIGINT NOT NULL
);

-- Choices, owned by their proposal; position preserves creation order
CREATE TABLE IF NOT EXISTS choice (
    proposal TEXT NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (proposal, name)
);

CREATE INDEX IF NOT EXISTS idx_choice_proposal ON choice(proposal);

-- Vote records, one row per derived (proposal, voter) address
CREATE TABLE IF NOT EXISTS vote (
    address TEXT PRIMARY KEY,
    proposal TEXT NOT NULL,
    voter TEXT NOT NULL,
    choice TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_proposal ON vote(proposal);
`

// OpenSQL wraps an open database handle and creates the schema. Safe to
// call against an existing database - uses IF NOT EXISTS.
func OpenSQL(db *sql.DB) (*SQLStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// isUniqueViolation matches the constraint-violation error text of the
// sqlite and postgres drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func (s *SQLStore) CreateProposal(a addr.Address, p *models.Proposal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO proposal (address, creator, title, description, date_start, date_end)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.String(), string(p.Creator), p.Title, p.Description, int64(p.DateStart), int64(p.DateEnd))
	if isUniqueViolation(err) {
		return ErrAddressOccupied
	}
	if err != nil {
		return err
	}

	for i, c := range p.Choices {
		_, err = tx.Exec(`
			INSERT INTO choice (proposal, name, position, count)
			VALUES ($1, $2, $3, $4)
		`, a.String(), c.Name, i, int(c.Count))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLStore) Proposal(a addr.Address) (*models.Proposal, error) {
	var p models.Proposal
	var creator string
	var dateStart, dateEnd int64
	err := s.db.QueryRow(`
		SELECT creator, title, description, date_start, date_end
		FROM proposal
		WHERE address = $1
	`, a.String()).Scan(&creator, &p.Title, &p.Description, &dateStart, &dateEnd)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Creator = models.Identity(creator)
	p.DateStart = uint64(dateStart)
	p.DateEnd = uint64(dateEnd)

	choices, err := s.proposalChoices(a)
	if err != nil {
		return nil, err
	}
	p.Choices = choices
	return &p, nil
}

func (s *SQLStore) proposalChoices(a addr.Address) ([]models.Choice, error) {
	rows, err := s.db.Query(`
		SELECT name, count
		FROM choice
		WHERE proposal = $1
		ORDER BY position
	`, a.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []models.Choice
	for rows.Next() {
		var c models.Choice
		var count int
		if err := rows.Scan(&c.Name, &count); err != nil {
			return nil, err
		}
		c.Count = uint16(count)
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

func (s *SQLStore) ListProposals() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT address, creator, title, description, date_start, date_end
		FROM proposal
		ORDER BY address
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var addrStr, creator string
		var p models.Proposal
		var dateStart, dateEnd int64
		if err := rows.Scan(&addrStr, &creator, &p.Title, &p.Description, &dateStart, &dateEnd); err != nil {
			return nil, err
		}
		a, err := addr.Parse(addrStr)
		if err != nil {
			return nil, err
		}
		p.Creator = models.Identity(creator)
		p.DateStart = uint64(dateStart)
		p.DateEnd = uint64(dateEnd)
		entries = append(entries, Entry{Addr: a, Proposal: &p})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		choices, err := s.proposalChoices(entries[i].Addr)
		if err != nil {
			return nil, err
		}
		entries[i].Proposal.Choices = choices
	}
	return entries, nil
}

func (s *SQLStore) IncrementChoice(a addr.Address, choice string) error {
	// Single UPDATE keeps the increment atomic without a transaction.
	res, err := s.db.Exec(`
		UPDATE choice SET count = count + 1
		WHERE proposal = $1 AND name = $2
	`, a.String(), choice)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM proposal WHERE address = $1)
	`, a.String()).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrUnknownChoice
}

func (s *SQLStore) DeleteProposal(a addr.Address) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM proposal WHERE address = $1`, a.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(`DELETE FROM choice WHERE proposal = $1`, a.String()); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) CreateVote(a addr.Address, v *models.VoteRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO vote (address, proposal, voter, choice)
		VALUES ($1, $2, $3, $4)
	`, a.String(), v.Proposal.String(), string(v.Voter), v.Choice)
	if isUniqueViolation(err) {
		return ErrAddressOccupied
	}
	return err
}

func (s *SQLStore) Vote(a addr.Address) (*models.VoteRecord, error) {
	var v models.VoteRecord
	var proposal, voter string
	err := s.db.QueryRow(`
		SELECT proposal, voter, choice
		FROM vote
		WHERE address = $1
	`, a.String()).Scan(&proposal, &voter, &v.Choice)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	pa, err := addr.Parse(proposal)
	if err != nil {
		return nil, err
	}
	v.Proposal = pa
	v.Voter = models.Identity(voter)
	return &v, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLStore)(nil)
var _ Store = (*Memory)(nil)
var _ Store = (*Badger)(nil)
