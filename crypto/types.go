// Package crypto implements single-block AES-128 encryption with an
// optional per-round trace of the cipher state.
package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16
	// KeySize is the AES-128 key size in bytes.
	KeySize = 16
	// Rounds is the number of AES-128 rounds.
	Rounds = 10
	// ScheduleWords is the number of Words in an AES-128 key schedule.
	ScheduleWords = 4 * (Rounds + 1)
	// TraceLen is the number of snapshots captured for one block.
	TraceLen = Rounds + 2
)

// ErrInvalidLength is returned when a key or block is not exactly 16 bytes.
var ErrInvalidLength = errors.New("invalid length")

// State is the 4x4 cipher state in column-major order: the byte at row r,
// column c lives at offset c*4+r.
type State [BlockSize]byte

// Key is an AES-128 key.
type Key [KeySize]byte

// Word is one 4-byte column of key material, first byte most significant.
type Word uint32

// StateFromBytes copies b into a State. b must be exactly BlockSize bytes.
func StateFromBytes(b []byte) (State, error) {
	var s State
	if len(b) != BlockSize {
		return s, fmt.Errorf("block is %d bytes, want %d: %w", len(b), BlockSize, ErrInvalidLength)
	}
	copy(s[:], b)
	return s, nil
}

// KeyFromBytes copies b into a Key. b must be exactly KeySize bytes.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("key is %d bytes, want %d: %w", len(b), KeySize, ErrInvalidLength)
	}
	copy(k[:], b)
	return k, nil
}

func (s State) String() string {
	return hex.EncodeToString(s[:])
}

// At returns the byte at row r, column c.
func (s *State) At(r, c int) byte {
	return s[c*4+r]
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

func (w Word) String() string {
	return fmt.Sprintf("%08x", uint32(w))
}
