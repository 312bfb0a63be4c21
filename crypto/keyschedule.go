package crypto

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Round constants, each the GF(2^8) double of the previous one.
var rcon = [Rounds]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// Schedule is the expanded AES-128 key. Round r uses Words [4r, 4r+3].
type Schedule [ScheduleWords]Word

func rotWord(w Word) Word {
	return Word(bits.RotateLeft32(uint32(w), 8))
}

func subWord(w Word) Word {
	return Word(sbox[w>>24])<<24 |
		Word(sbox[(w>>16)&0xff])<<16 |
		Word(sbox[(w>>8)&0xff])<<8 |
		Word(sbox[w&0xff])
}

// ExpandKey derives the 44-word round key schedule from key.
func ExpandKey(key Key) Schedule {
	var w Schedule
	for i := range 4 {
		w[i] = Word(binary.BigEndian.Uint32(key[i*4:]))
	}
	for i := 4; i < ScheduleWords; i++ {
		temp := w[i-1]
		if i%4 == 0 {
			temp = subWord(rotWord(temp)) ^ Word(rcon[i/4-1])<<24
		}
		w[i] = w[i-4] ^ temp
	}
	return w
}

// ExpandKeyBytes is ExpandKey for a raw key that must be exactly 16 bytes.
func ExpandKeyBytes(b []byte) (*Schedule, error) {
	key, err := KeyFromBytes(b)
	if err != nil {
		return nil, err
	}
	s := ExpandKey(key)
	return &s, nil
}

// RoundKey returns the four Words consumed by round r.
func (s *Schedule) RoundKey(r int) [4]Word {
	if r < 0 || r > Rounds {
		panic(fmt.Sprintf("round %d out of range", r))
	}
	return [4]Word(s[4*r : 4*r+4])
}
