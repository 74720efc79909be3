// Package base58 implements the Bitcoin Base58 text encoding used by legacy
// addresses. Encode and decode are independent: neither touches the 4-byte
// Base58Check checksum, which stays the caller's responsibility.
package base58

import (
	"fmt"
	"strings"
)

// Bitcoin alphabet — excludes 0, O, I and l to avoid visual ambiguity.
const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Encode encodes b as a Base58 string, mapping each leading zero byte to a
// leading '1'. The conversion is schoolbook long division over a
// little-endian digit buffer: quadratic, which is fine for the short
// inputs (25-byte addresses) this package is used for.
func Encode(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	// log(256)/log(58) ~= 1.37 digits per input byte.
	digits := make([]byte, 0, (len(b)-zeros)*137/100+1)
	for _, in := range b[zeros:] {
		carry := uint32(in)
		for j := range digits {
			carry += uint32(digits[j]) << 8
			digits[j] = byte(carry % 58)
			carry /= 58
		}
		for carry > 0 {
			digits = append(digits, byte(carry%58))
			carry /= 58
		}
	}

	var sb strings.Builder
	sb.Grow(zeros + len(digits))
	for i := 0; i < zeros; i++ {
		sb.WriteByte(alphabet[0])
	}
	// Digits accumulate little-endian; emit most significant first.
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(alphabet[digits[i]])
	}
	return sb.String()
}

// DecodeFixed decodes a Base58 string into exactly size bytes. Leading '1'
// characters map to leading zero bytes. It fails with ErrInvalidCharacter on
// any byte outside the alphabet, and with ErrInvalidLength when the decoded
// value does not exactly fill size bytes (too long or too short after
// accounting for leading '1's).
func DecodeFixed(s string, size int) ([]byte, error) {
	// Little-endian accumulator, multiply by 58 and add each digit.
	acc := make([]byte, 0, size)
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(alphabet, s[i])
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, s[i], i)
		}

		carry := uint32(idx)
		for j := range acc {
			carry += uint32(acc[j]) * 58
			acc[j] = byte(carry)
			carry >>= 8
		}
		for carry > 0 {
			acc = append(acc, byte(carry))
			carry >>= 8
		}
	}

	zeros := 0
	for zeros < len(s) && s[zeros] == alphabet[0] {
		zeros++
	}
	if zeros+len(acc) != size {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrInvalidLength, zeros+len(acc), size)
	}

	out := make([]byte, size)
	for i, pos := len(acc)-1, zeros; i >= 0; i, pos = i-1, pos+1 {
		out[pos] = acc[i]
	}
	return out, nil
}
