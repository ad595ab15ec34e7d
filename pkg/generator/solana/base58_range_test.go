package solana

import (
	"bytes"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
)

func TestCompilePrefixValid(t *testing.T) {
	for _, prefix := range []string{"a", "A", "So", "ABC", "1", "z", "Amr"} {
		t.Run(prefix, func(t *testing.T) {
			m, err := CompilePrefix(prefix)
			if err != nil {
				t.Fatalf("CompilePrefix(%q): %v", prefix, err)
			}
			if m.NumRanges() == 0 {
				t.Fatal("no ranges compiled")
			}
			for i, r := range m.Ranges() {
				if bytes.Compare(r.Min[:], r.Max[:]) > 0 {
					t.Fatalf("range %d: min > max", i)
				}
			}
		})
	}
}

func TestCompilePrefixInvalidChars(t *testing.T) {
	for _, prefix := range []string{"Ill0O", "0", "O", "I", "l", "abc!", "So?"} {
		t.Run(prefix, func(t *testing.T) {
			_, err := CompilePrefix(prefix)
			var invalid *InvalidBase58Error
			if !errors.As(err, &invalid) {
				t.Fatalf("CompilePrefix(%q) = %v, want InvalidBase58Error", prefix, err)
			}
		})
	}
}

func TestCompilePrefixTooLong(t *testing.T) {
	_, err := CompilePrefix(strings.Repeat("z", 45))
	if !errors.Is(err, ErrNoRanges) {
		t.Fatalf("got %v, want ErrNoRanges", err)
	}
}

func TestCompilePrefixNoRepresentableLength(t *testing.T) {
	// 44 'z' characters is a syntactically fine prefix, but its only
	// candidate length overflows 32 bytes.
	_, err := CompilePrefix(strings.Repeat("z", 44))
	if !errors.Is(err, ErrNoRanges) {
		t.Fatalf("got %v, want ErrNoRanges", err)
	}
}

func TestCompilePrefixLeadingOne(t *testing.T) {
	// '1' is the Base58 zero digit: addresses starting with '1' encode
	// keys with leading zero bytes.
	m, err := CompilePrefix("1")
	if err != nil {
		t.Fatal(err)
	}
	if m.NumRanges() == 0 {
		t.Fatal("no ranges")
	}
	// The all-zero key encodes to 32 '1's and must match.
	if !m.Matches(make([]byte, PubkeySize)) {
		t.Fatal("zero key (address 111...1) not matched")
	}
}

func TestCompilePrefixEmpty(t *testing.T) {
	m, err := CompilePrefix("")
	if err != nil {
		t.Fatal(err)
	}
	if m.NumRanges() != 1 {
		t.Fatalf("empty prefix: %d ranges, want 1", m.NumRanges())
	}
	r := m.Ranges()[0]
	if r.Min != [PubkeySize]byte{} {
		t.Fatalf("min not zero: %x", r.Min)
	}
	for _, b := range r.Max {
		if b != 0xFF {
			t.Fatalf("max not all ones: %x", r.Max)
		}
	}
	pub := make([]byte, PubkeySize)
	rand.Read(pub)
	if !m.Matches(pub) {
		t.Fatal("full-range matcher rejected a key")
	}
}

// Completeness: every key whose encoding starts with the prefix must be
// inside the range cover.
func TestMatcherCompleteness(t *testing.T) {
	prefixes := []string{"a", "So", "ABC"}
	matchers := make(map[string]*Matcher, len(prefixes))
	for _, p := range prefixes {
		m, err := CompilePrefix(p)
		if err != nil {
			t.Fatal(err)
		}
		matchers[p] = m
	}

	t.Run("random keys", func(t *testing.T) {
		pub := make([]byte, PubkeySize)
		for i := 0; i < 4096; i++ {
			if _, err := rand.Read(pub); err != nil {
				t.Fatal(err)
			}
			addr := base58.Encode(pub)
			for p, m := range matchers {
				if strings.HasPrefix(addr, p) && !m.Matches(pub) {
					t.Fatalf("address %s starts with %q but key %x does not match", addr, p, pub)
				}
			}
		}
	})

	t.Run("constructed addresses", func(t *testing.T) {
		// Build addresses that definitely start with the prefix by
		// appending random Base58 tails, then decode and test the key.
		tail := make([]byte, 64)
		for p, m := range matchers {
			found := 0
			for i := 0; i < 512; i++ {
				rand.Read(tail)
				// Not every length decodes to 32 bytes for every prefix;
				// cycle through all of them and keep the ones that do.
				targetLen := minAddrLen + i%(maxAddrLen-minAddrLen+1)
				if targetLen < len(p) {
					continue
				}
				addr := p
				for _, b := range tail {
					if len(addr) == targetLen {
						break
					}
					addr += string(base58Alphabet[int(b)%len(base58Alphabet)])
				}
				pub, err := base58.Decode(addr)
				if err != nil || len(pub) != PubkeySize {
					continue
				}
				found++
				if !m.Matches(pub) {
					t.Fatalf("constructed address %s (prefix %q) not matched", addr, p)
				}
			}
			if found == 0 {
				t.Fatalf("prefix %q: no constructed address decoded to 32 bytes", p)
			}
		}
	})
}

// Spurious hits exist only at range boundaries and must stay rare for
// prefixes of length >= 3.
func TestMatcherSpuriousRate(t *testing.T) {
	m, err := CompilePrefix("ABC")
	if err != nil {
		t.Fatal(err)
	}

	const samples = 2000
	spurious, total := 0, 0
	for _, r := range m.Ranges() {
		min := new(big.Int).SetBytes(r.Min[:])
		width := new(big.Int).Sub(new(big.Int).SetBytes(r.Max[:]), min)
		width.Add(width, big.NewInt(1))
		for i := 0; i < samples/m.NumRanges(); i++ {
			off, err := rand.Int(rand.Reader, width)
			if err != nil {
				t.Fatal(err)
			}
			var pub [PubkeySize]byte
			new(big.Int).Add(min, off).FillBytes(pub[:])

			if !m.Matches(pub[:]) {
				t.Fatalf("in-range key %x not matched", pub)
			}
			total++
			if _, ok := m.Confirm(pub[:]); !ok {
				spurious++
			}
		}
	}
	if total == 0 {
		t.Fatal("no samples drawn")
	}
	if rate := float64(spurious) / float64(total); rate > 0.01 {
		t.Fatalf("spurious rate %.4f exceeds 1%% (%d/%d)", rate, spurious, total)
	}
}

func TestMatcherRejectsOutsideRanges(t *testing.T) {
	m, err := CompilePrefix("zzzz")
	if err != nil {
		t.Fatal(err)
	}
	// A key of all zero bytes encodes to "111...1" and can never start
	// with 'z'.
	pub := make([]byte, PubkeySize)
	if m.Matches(pub) {
		t.Fatal("zero key matched a 'zzzz' matcher")
	}
}

func TestConfirm(t *testing.T) {
	m, err := CompilePrefix("A")
	if err != nil {
		t.Fatal(err)
	}
	pub := make([]byte, PubkeySize)
	for i := 0; i < 512; i++ {
		rand.Read(pub)
		addr, ok := m.Confirm(pub)
		if want := strings.HasPrefix(base58.Encode(pub), "A"); ok != want {
			t.Fatalf("Confirm(%x) = %v, want %v", pub, ok, want)
		}
		if addr != base58.Encode(pub) {
			t.Fatalf("Confirm address %q != encode %q", addr, base58.Encode(pub))
		}
	}
}

func TestIsValidBase58(t *testing.T) {
	if !IsValidBase58("123456789ABCxyz") {
		t.Fatal("valid string rejected")
	}
	for _, s := range []string{"0", "O", "I", "l", " ", "So!"} {
		if IsValidBase58(s) {
			t.Fatalf("invalid string %q accepted", s)
		}
	}
	if got := InvalidBase58Chars("Ill0O"); len(got) != 5 {
		t.Fatalf("InvalidBase58Chars(\"Ill0O\") = %q, want all five", string(got))
	}
	if got := InvalidBase58Chars("So"); len(got) != 0 {
		t.Fatalf("InvalidBase58Chars(\"So\") = %q, want none", string(got))
	}
}
