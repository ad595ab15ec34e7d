package solana

import (
	"math"
	"testing"
)

func TestEstimateOrdering(t *testing.T) {
	for _, prefix := range []string{"a", "So", "ABC", "1"} {
		t.Run(prefix, func(t *testing.T) {
			m, err := CompilePrefix(prefix)
			if err != nil {
				t.Fatal(err)
			}
			est := m.Estimate()
			if est.P50 == 0 {
				t.Fatal("p50 is zero")
			}
			if est.P50 > est.P90 || est.P90 > est.P99 {
				t.Fatalf("estimates out of order: %d, %d, %d", est.P50, est.P90, est.P99)
			}
		})
	}
}

func TestEstimateSingleCharMagnitude(t *testing.T) {
	// Addresses starting with 'a' occupy the [33*58^42, 34*58^42)
	// region of key space, about 1/999 of it, so p50 = 0.5*999, about
	// 500.
	m, err := CompilePrefix("a")
	if err != nil {
		t.Fatal(err)
	}
	est := m.Estimate()
	if est.P50 < 100 || est.P50 > 5000 {
		t.Fatalf("p50 = %d, expected several hundred", est.P50)
	}
}

func TestEstimateGrowsWithPrefixLength(t *testing.T) {
	short, err := CompilePrefix("A")
	if err != nil {
		t.Fatal(err)
	}
	long, err := CompilePrefix("AAAA")
	if err != nil {
		t.Fatal(err)
	}
	if short.Estimate().P50 >= long.Estimate().P50 {
		t.Fatalf("p50 did not grow: %d vs %d", short.Estimate().P50, long.Estimate().P50)
	}
}

func TestEstimateFullRange(t *testing.T) {
	// The empty prefix matches everything; the first draw succeeds.
	m, err := CompilePrefix("")
	if err != nil {
		t.Fatal(err)
	}
	est := m.Estimate()
	if est.P50 != 1 && est.P50 != 0 {
		t.Fatalf("full-range p50 = %d, want 0 or 1", est.P50)
	}
	if est.P99 > 8 {
		t.Fatalf("full-range p99 = %d, want tiny", est.P99)
	}
}

func TestEstimateSaturates(t *testing.T) {
	// A single-key matcher has S = 1, so every estimate overflows 64
	// bits and must clamp instead of truncating.
	var r PubkeyRange
	r.Min[0] = 0x42
	r.Max = r.Min
	m := &Matcher{prefix: "x", ranges: []PubkeyRange{r}}
	est := m.Estimate()
	if est.P50 != math.MaxUint64 || est.P90 != math.MaxUint64 || est.P99 != math.MaxUint64 {
		t.Fatalf("expected saturation, got %d, %d, %d", est.P50, est.P90, est.P99)
	}
}

func TestEstimateAttempts(t *testing.T) {
	for _, tc := range []struct {
		prefix string
		want   uint64
	}{
		{"", 1},
		{"a", 58},
		{"ab", 58 * 58},
		{"abc", 58 * 58 * 58},
	} {
		if got := EstimateAttempts(tc.prefix); got != tc.want {
			t.Fatalf("EstimateAttempts(%q) = %d, want %d", tc.prefix, got, tc.want)
		}
	}
}

func TestEstimateAttemptsSaturates(t *testing.T) {
	// 58^11 > 2^64 / 58, so long prefixes clamp to MaxUint64.
	if got := EstimateAttempts("aaaaaaaaaaaaaaaa"); got != math.MaxUint64 {
		t.Fatalf("got %d, want MaxUint64", got)
	}
}
