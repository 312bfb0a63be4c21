// Package codec decodes hex text into fixed-size cipher inputs.
package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/xmdhs/go-aestrace/crypto"
)

// Mode selects how inputs that do not decode to exactly 16 bytes are handled.
type Mode int

const (
	// Strict rejects malformed hex and any length other than 16 bytes.
	Strict Mode = iota
	// Lenient zero-pads short input, truncates long input and treats
	// undecodable hex as empty.
	Lenient
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// LengthError reports a decoded input of the wrong size.
type LengthError struct {
	Field string
	Got   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: decoded to %d bytes, want %d", e.Field, e.Got, crypto.BlockSize)
}

func (e *LengthError) Unwrap() error {
	return crypto.ErrInvalidLength
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return strings.ReplaceAll(s, " ", "")
}

// Decode16 decodes s into 16 bytes according to mode. field names the input
// in error messages.
func Decode16(field, s string, mode Mode) ([16]byte, error) {
	var out [16]byte
	b, err := hex.DecodeString(normalize(s))
	switch mode {
	case Strict:
		if err != nil {
			return out, fmt.Errorf("%s: %w", field, err)
		}
		if len(b) != len(out) {
			return out, &LengthError{Field: field, Got: len(b)}
		}
	case Lenient:
		if err != nil {
			b = nil
		}
	default:
		panic(fmt.Sprintf("invalid decode mode: %d", int(mode)))
	}
	copy(out[:], b)
	return out, nil
}

// DecodeKey decodes a hex AES-128 key.
func DecodeKey(s string, mode Mode) (crypto.Key, error) {
	b, err := Decode16("key", s, mode)
	return crypto.Key(b), err
}

// DecodeBlock decodes a hex plaintext block.
func DecodeBlock(s string, mode Mode) (crypto.State, error) {
	b, err := Decode16("plaintext", s, mode)
	return crypto.State(b), err
}
