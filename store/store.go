// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/one-ballot/addr"
	"github.com/danielhkuo/one-ballot/models"
)

var (
	// ErrAddressOccupied is returned by CreateProposal and CreateVote when
	// a record already exists at the derived address. It is the only
	// uniqueness mechanism in the system: duplicate titles and double
	// votes both surface as an occupied address.
	ErrAddressOccupied = errors.New("address already occupied")

	// ErrNotFound is returned when no record exists at an address.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownChoice is returned by IncrementChoice when the proposal
	// exists but has no choice with the given name.
	ErrUnknownChoice = errors.New("unknown choice")
)

// Store is the record substrate. Creation is allocate-if-absent: it
// atomically writes a record at an address only if the address is empty,
// and fails with ErrAddressOccupied otherwise. Implementations must make
// that check-and-write atomic under concurrent callers, and must make
// IncrementChoice an atomic +1 on exactly the named choice. Nothing above
// this interface takes a lock.
type Store interface {
	CreateProposal(a addr.Address, p *models.Proposal) error
	Proposal(a addr.Address) (*models.Proposal, error)
	ListProposals() ([]Entry, error)
	IncrementChoice(a addr.Address, choice string) error
	DeleteProposal(a addr.Address) error

	CreateVote(a addr.Address, v *models.VoteRecord) error
	Vote(a addr.Address) (*models.VoteRecord, error)

	Close() error
}

// Entry pairs a proposal with the address it lives at.
type Entry struct {
	Addr     addr.Address
	Proposal *models.Proposal
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Open creates a Store for the named backend. dataDir is used by the
// badger backend, databaseURL by the sqlite and postgres backends. The
// caller is responsible for importing the relevant database/sql driver.
func Open(backend, dataDir, databaseURL string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendBadger:
		return OpenBadger(dataDir)
	case BackendSQLite, BackendPostgres:
		db, err := sql.Open(backend, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		return OpenSQL(db)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
