package crypto

// Mul multiplies a and b in GF(2^8) modulo the AES polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B).
func Mul(a, b byte) byte {
	var p byte
	for range 8 {
		if b&1 != 0 {
			p ^= a
		}
		hiBit := a & 0x80
		a <<= 1
		if hiBit != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func buildMulTable(mult byte) [256]byte {
	var table [256]byte
	for i := 0; i < 256; i++ {
		table[i] = Mul(byte(i), mult)
	}
	return table
}

// Multiplication tables for the MixColumns coefficients.
var (
	mul2Table = buildMulTable(2)
	mul3Table = buildMulTable(3)
)
