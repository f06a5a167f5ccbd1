// Package numeric scans AT&T-style signed integer literals (decimal or
// 0x-prefixed hex) into arbitrary-precision integers, and canonicalizes
// their textual form. It has no knowledge of tokens, registers, or
// memory operands — the lexer composes it with the rest of the
// operand grammar.
package numeric

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors. Scan returns them unwrapped, so callers can compare
// them directly or with errors.Is.
var (
	// ErrEmptyImmediate is returned when a literal is required but the
	// input is exhausted or the next character doesn't start one.
	ErrEmptyImmediate = errors.New("empty immediate")
	// ErrInvalidNumber is returned when the text doesn't match either
	// the decimal or hexadecimal grammar.
	ErrInvalidNumber = errors.New("invalid number")
)

// Scan consumes a signed decimal or hexadecimal integer literal from
// the front of s and returns its value, the canonical rendering of the
// literal consumed, and how many bytes of s were consumed. It does not
// require the whole string to be a literal; callers pass the remaining
// unscanned source.
//
// Canonical form uppercases alphabetic characters and preserves a
// leading '-' and the "0x" radix prefix, e.g. "0x123abc" -> "0x123ABC".
func Scan(s string) (value *big.Int, canonical string, consumed int, err error) {
	if s == "" {
		return nil, "", 0, ErrEmptyImmediate
	}

	i := 0
	neg := false
	if s[i] == '-' {
		neg = true
		i++
	}

	if i >= len(s) {
		return nil, "", 0, ErrEmptyImmediate
	}

	if i+1 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') {
		return scanHex(s, i, neg)
	}

	return scanDecimal(s, i, neg)
}

func scanDecimal(s string, i int, neg bool) (*big.Int, string, int, error) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return nil, "", 0, ErrEmptyImmediate
	}

	digits := s[start:i]
	v := new(big.Int)
	if _, ok := v.SetString(digits, 10); !ok {
		return nil, "", 0, ErrInvalidNumber
	}
	if neg {
		v.Neg(v)
	}

	canon := digits
	if neg {
		canon = "-" + canon
	}
	return v, canon, i, nil
}

func scanHex(s string, i int, neg bool) (*big.Int, string, int, error) {
	i += 2 // skip "0x" / "0X"
	start := i
	for i < len(s) && isHexDigit(s[i]) {
		i++
	}
	if i == start {
		return nil, "", 0, ErrEmptyImmediate
	}

	digits := s[start:i]
	v := new(big.Int)
	if _, ok := v.SetString(digits, 16); !ok {
		return nil, "", 0, ErrInvalidNumber
	}
	if neg {
		v.Neg(v)
	}

	canon := "0x" + strings.ToUpper(digits)
	if neg {
		canon = "-" + canon
	}
	return v, canon, i, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
