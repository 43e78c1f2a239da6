// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/danielhkuo/one-ballot/addr"
	"github.com/danielhkuo/one-ballot/models"
)

// Key prefixes keep the two record kinds in disjoint keyspaces.
var (
	proposalKeyPrefix = []byte("p/")
	voteKeyPrefix     = []byte("v/")
)

// Badger is a persistent Store backed by a badger KV database. Records
// are JSON-encoded under prefixed address keys. Allocate-if-absent is a
// get-then-set inside one badger transaction: badger's conflict detection
// guarantees that of two concurrent transactions racing on the same key,
// at most one commits.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a badger database under dir.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(badgerSlogger{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &Badger{db: db}, nil
}

func proposalKey(a addr.Address) []byte {
	return append(append([]byte{}, proposalKeyPrefix...), a.Bytes()...)
}

func voteKey(a addr.Address) []byte {
	return append(append([]byte{}, voteKeyPrefix...), a.Bytes()...)
}

// update runs fn in a read-write transaction, retrying on commit
// conflicts. Each retry re-reads, so an allocate-if-absent that lost a
// race fails with ErrAddressOccupied on the next attempt.
func (s *Badger) update(fn func(txn *badger.Txn) error) error {
	for {
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
}

func createIfAbsent(txn *badger.Txn, key []byte, record any) error {
	_, err := txn.Get(key)
	if err == nil {
		return ErrAddressOccupied
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return txn.Set(key, val)
}

func getRecord(txn *badger.Txn, key []byte, record any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, record)
	})
}

func (s *Badger) CreateProposal(a addr.Address, p *models.Proposal) error {
	return s.update(func(txn *badger.Txn) error {
		return createIfAbsent(txn, proposalKey(a), p)
	})
}

func (s *Badger) Proposal(a addr.Address) (*models.Proposal, error) {
	var p models.Proposal
	err := s.db.View(func(txn *badger.Txn) error {
		return getRecord(txn, proposalKey(a), &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Badger) ListProposals() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = proposalKeyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.Key()
			if len(key) != len(proposalKeyPrefix)+addr.Size {
				continue
			}
			var a addr.Address
			copy(a[:], key[len(proposalKeyPrefix):])

			var p models.Proposal
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return err
			}
			entries = append(entries, Entry{Addr: a, Proposal: p.Clone()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Badger) IncrementChoice(a addr.Address, choice string) error {
	return s.update(func(txn *badger.Txn) error {
		key := proposalKey(a)
		var p models.Proposal
		if err := getRecord(txn, key, &p); err != nil {
			return err
		}
		found := false
		for i := range p.Choices {
			if p.Choices[i].Name == choice {
				p.Choices[i].Count++
				found = true
				break
			}
		}
		if !found {
			return ErrUnknownChoice
		}
		val, err := json.Marshal(&p)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		return txn.Set(key, val)
	})
}

func (s *Badger) DeleteProposal(a addr.Address) error {
	return s.update(func(txn *badger.Txn) error {
		key := proposalKey(a)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func (s *Badger) CreateVote(a addr.Address, v *models.VoteRecord) error {
	return s.update(func(txn *badger.Txn) error {
		return createIfAbsent(txn, voteKey(a), v)
	})
}

func (s *Badger) Vote(a addr.Address) (*models.VoteRecord, error) {
	var v models.VoteRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return getRecord(txn, voteKey(a), &v)
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Badger) Close() error {
	return s.db.Close()
}

// badgerSlogger forwards badger's internal logging to slog.
type badgerSlogger struct{}

func (badgerSlogger) Errorf(format string, args ...any) {
	slog.Error(fmt.Sprintf("badger: "+format, args...))
}

func (badgerSlogger) Warningf(format string, args ...any) {
	slog.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (badgerSlogger) Infof(format string, args ...any) {
	slog.Debug(fmt.Sprintf("badger: "+format, args...))
}

func (badgerSlogger) Debugf(format string, args ...any) {
	slog.Debug(fmt.Sprintf("badger: "+format, args...))
}
