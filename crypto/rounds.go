package crypto

// SubBytes replaces every byte of s with its S-box substitution.
func SubBytes(s *State) {
	for i := range s {
		s[i] = sbox[s[i]]
	}
}

// ShiftRows rotates row r of s left by r positions.
func ShiftRows(s *State) {
	s[1], s[5], s[9], s[13] = s[5], s[9], s[13], s[1]
	s[2], s[6], s[10], s[14] = s[10], s[14], s[2], s[6]
	s[3], s[7], s[11], s[15] = s[15], s[3], s[7], s[11]
}

func mixColumn(col []byte) {
	a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
	col[0] = mul2Table[a0] ^ mul3Table[a1] ^ a2 ^ a3
	col[1] = a0 ^ mul2Table[a1] ^ mul3Table[a2] ^ a3
	col[2] = a0 ^ a1 ^ mul2Table[a2] ^ mul3Table[a3]
	col[3] = mul3Table[a0] ^ a1 ^ a2 ^ mul2Table[a3]
}

// MixColumns multiplies each column of s by the fixed AES matrix over GF(2^8).
func MixColumns(s *State) {
	for c := range 4 {
		mixColumn(s[c*4 : c*4+4])
	}
}

// AddRoundKey XORs the round key for round r into s.
func AddRoundKey(s *State, sched *Schedule, r int) {
	for c, w := range sched.RoundKey(r) {
		s[c*4] ^= byte(w >> 24)
		s[c*4+1] ^= byte(w >> 16)
		s[c*4+2] ^= byte(w >> 8)
		s[c*4+3] ^= byte(w)
	}
}
