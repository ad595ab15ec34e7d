package solana

import (
	"bytes"
	"strings"

	"github.com/mr-tron/base58"
)

// Base58 alphabet (Bitcoin/Solana style - excludes 0, O, I, l)
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// PubkeyRange is an inclusive range of 32-byte public keys under
// unsigned lexicographic byte order. Invariant: Min <= Max.
type PubkeyRange struct {
	Min [PubkeySize]byte
	Max [PubkeySize]byte
}

// Contains reports whether pub falls inside the range.
func (r *PubkeyRange) Contains(pub []byte) bool {
	return bytes.Compare(pub, r.Min[:]) >= 0 && bytes.Compare(pub, r.Max[:]) <= 0
}

// Matcher tests 32-byte public keys against the byte ranges compiled
// from a Base58 prefix. It is immutable after compilation and safe to
// share across every worker by reference.
type Matcher struct {
	prefix string
	ranges []PubkeyRange
}

// Prefix returns the Base58 prefix the matcher was compiled from.
func (m *Matcher) Prefix() string {
	return m.prefix
}

// Ranges returns the compiled range list.
func (m *Matcher) Ranges() []PubkeyRange {
	return m.ranges
}

// NumRanges returns the number of compiled ranges.
func (m *Matcher) NumRanges() int {
	return len(m.ranges)
}

// Matches reports whether pub falls inside any compiled range. This is
// the hot-path test: one to a handful of 32-byte compares, no
// allocation, no Base58 work.
func (m *Matcher) Matches(pub []byte) bool {
	for i := range m.ranges {
		if m.ranges[i].Contains(pub) {
			return true
		}
	}
	return false
}

// Confirm encodes pub and checks the textual prefix. Range boundaries
// admit a handful of keys whose encoding does not actually start with
// the prefix, so every range hit is confirmed here before it is
// reported. Returns the address and whether the prefix holds.
func (m *Matcher) Confirm(pub []byte) (string, bool) {
	addr := base58.Encode(pub)
	return addr, strings.HasPrefix(addr, m.prefix)
}

// IsValidBase58 checks if a string contains only valid Base58 characters.
// Base58 excludes: 0 (zero), O (uppercase o), I (uppercase i), l (lowercase L)
func IsValidBase58(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(base58Alphabet, c) {
			return false
		}
	}
	return true
}

// InvalidBase58Chars returns any invalid Base58 characters in the input.
// Useful for providing helpful error messages to users.
func InvalidBase58Chars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !strings.ContainsRune(base58Alphabet, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}
