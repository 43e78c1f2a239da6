// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package addr

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Size is the length of an Address in bytes.
const Size = 32

// Address is a deterministic storage key derived from a namespace tag and
// seed bytes. Two records can never share an address unless they were
// derived from identical inputs.
type Address [Size]byte

var ErrInvalidAddress = errors.New("invalid address")

// Derive maps a namespace tag plus a sequence of seeds to an Address using
// Keccak-256. Every field is length-prefixed before hashing so that seed
// boundaries are unambiguous: Derive("n", []byte("ab"), []byte("c")) and
// Derive("n", []byte("a"), []byte("bc")) produce different addresses.
func Derive(namespace string, seeds ...[]byte) Address {
	h := sha3.NewLegacyKeccak256()
	writeField(h, []byte(namespace))
	for _, seed := range seeds {
		writeField(h, seed)
	}

	var a Address
	copy(a[:], h.Sum(nil))
	return a
}

func writeField(h hash.Hash, field []byte) {
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(field)))
	h.Write(prefix[:])
	h.Write(field)
}

// Parse decodes the hex string form produced by String.
func Parse(s string) (Address, error) {
	var a Address
	if len(s) != Size*2 {
		return a, fmt.Errorf("%w: want %d hex characters, got %d", ErrInvalidAddress, Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns the raw address, for use as a derivation seed or store key.
func (a Address) Bytes() []byte {
	return a[:]
}

// MarshalText implements encoding.TextMarshaler so addresses render as hex
// in JSON.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
