package solana

import (
	"errors"
	"strings"

	"github.com/mr-tron/base58"
)

// Base58 character constants.
const (
	base58MinChar = '1' // Smallest Base58 character (value 0)
	base58MaxChar = 'z' // Largest Base58 character (value 57)
	minAddrLen    = 32  // Shortest Base58 rendering of a 32-byte key
	maxAddrLen    = 44  // Longest Base58 rendering of a 32-byte key
)

// InvalidBase58Error reports a prefix character outside the Base58
// alphabet.
type InvalidBase58Error struct {
	Char rune
}

func (e *InvalidBase58Error) Error() string {
	return "invalid Base58 character: " + string(e.Char)
}

// ErrNoRanges is returned when no encoded length yields a 32-byte range
// for the prefix, so no address can ever start with it.
var ErrNoRanges = errors.New("prefix admits no 32-byte key range")

// CompilePrefix converts a Base58 prefix into a Matcher holding one
// inclusive byte range per encoded address length the prefix can appear
// at. A 32-byte key encodes to 32-44 Base58 characters depending on its
// leading zero bytes, and each length occupies its own region of key
// space, so every admissible length contributes a range:
//
//	min = decode(prefix + "111...1")   // '1' is the Base58 zero digit
//	max = decode(prefix + "zzz...z")   // 'z' is the largest digit
//
// Lengths whose padded strings overflow 32 bytes are skipped, as are
// lengths whose max bound does not itself encode with the prefix (its
// decode is short, so every key up to it has extra leading zero bytes
// and encodes with extra leading '1's). A prefix made only of '1's
// compiles directly to the single range of keys with at least that many
// leading zero bytes. If no range survives the prefix is unusable and
// ErrNoRanges is returned. Matching
// against the ranges is then a plain byte compare, with no
// per-candidate Base58 encoding.
func CompilePrefix(prefix string) (*Matcher, error) {
	for _, c := range prefix {
		if !strings.ContainsRune(base58Alphabet, c) {
			return nil, &InvalidBase58Error{Char: c}
		}
	}
	if len(prefix) > maxAddrLen {
		return nil, ErrNoRanges
	}

	if prefix == "" {
		// Match everything. The CLI rejects an empty prefix; this keeps
		// the compiler total for library callers.
		full := PubkeyRange{}
		for i := range full.Max {
			full.Max[i] = 0xFF
		}
		return &Matcher{ranges: []PubkeyRange{full}}, nil
	}

	if strings.Trim(prefix, string(base58MinChar)) == "" && len(prefix) <= PubkeySize {
		// An encoding starts with n '1's exactly when the key has at
		// least n leading zero bytes.
		var r PubkeyRange
		for i := len(prefix); i < PubkeySize; i++ {
			r.Max[i] = 0xFF
		}
		return &Matcher{prefix: prefix, ranges: []PubkeyRange{r}}, nil
	}

	var ranges []PubkeyRange
	for targetLen := minAddrLen; targetLen <= maxAddrLen; targetLen++ {
		if targetLen < len(prefix) {
			continue
		}
		padding := targetLen - len(prefix)
		minBytes, err := decode32(prefix + strings.Repeat(string(base58MinChar), padding))
		if err != nil {
			continue
		}
		maxBytes, err := decode32(prefix + strings.Repeat(string(base58MaxChar), padding))
		if err != nil {
			continue
		}
		if !strings.HasPrefix(base58.Encode(maxBytes), prefix) {
			continue
		}

		var r PubkeyRange
		copy(r.Min[:], minBytes)
		copy(r.Max[:], maxBytes)
		ranges = append(ranges, r)
	}

	if len(ranges) == 0 {
		return nil, ErrNoRanges
	}
	return &Matcher{prefix: prefix, ranges: ranges}, nil
}

// decode32 decodes a Base58 string into a 32-byte key bound. Shorter
// decodes are left-padded with zero bytes (big-endian); results that
// overflow 32 bytes mean the candidate length cannot represent a key.
func decode32(s string) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) > PubkeySize {
		return nil, ErrNoRanges
	}
	out := make([]byte, PubkeySize)
	copy(out[PubkeySize-len(b):], b)
	return out, nil
}
