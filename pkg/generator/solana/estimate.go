package solana

import (
	"math"
	"math/big"
)

// ConfidenceEstimates holds the attempt-count estimates reported for the
// 50%, 90% and 99% levels. Each is p * 2^256 / S for p = 0.5, 0.9 and
// 0.99 (see Estimate): the mean draw count scaled by p, not the exact
// count -ln(1-p) * 2^256 / S at which the chance of a match reaches p.
type ConfidenceEstimates struct {
	P50 uint64
	P90 uint64
	P99 uint64
}

// Probability levels p as fixed-point fractions of 2^64.
const (
	probP50 = 0x8000000000000000 // 0.5
	probP90 = 0xE666666666666666 // 0.9
	probP99 = 0xFD70A3D70A3D70A3 // 0.99
)

// Estimate computes attempt-count estimates from the admissible measure
// of the matcher: S = sum over ranges of (max - min + 1). Overlapping
// ranges double-count, which only makes the estimates conservative
// upper bounds on the success measure.
//
// Each estimate is floor(P * 2^192 / S) = floor(p * 2^256 / S), with P
// the level p held as a 64-bit fixed-point fraction of 2^64, saturated
// to MaxUint64 when the quotient does not fit.
func (m *Matcher) Estimate() ConfidenceEstimates {
	s := new(big.Int)
	diff := new(big.Int)
	one := big.NewInt(1)
	for i := range m.ranges {
		min := new(big.Int).SetBytes(m.ranges[i].Min[:])
		max := new(big.Int).SetBytes(m.ranges[i].Max[:])
		diff.Sub(max, min)
		diff.Add(diff, one)
		s.Add(s, diff)
	}

	if s.Sign() == 0 {
		// No measure to divide by; fall back to the naive per-character
		// estimate.
		n := EstimateAttempts(m.prefix)
		return ConfidenceEstimates{P50: n, P90: n, P99: n}
	}

	return ConfidenceEstimates{
		P50: attemptsFor(s, probP50),
		P90: attemptsFor(s, probP90),
		P99: attemptsFor(s, probP99),
	}
}

// attemptsFor returns floor(p * 2^192 / s) clamped to MaxUint64.
func attemptsFor(s *big.Int, p uint64) uint64 {
	q := new(big.Int).SetUint64(p)
	q.Lsh(q, 192)
	q.Quo(q, s)
	if !q.IsUint64() {
		return math.MaxUint64
	}
	return q.Uint64()
}

// EstimateAttempts is the naive difficulty estimate 58^len(prefix),
// saturated to MaxUint64. It ignores the variable address length and
// exists as a coarse fallback for display.
func EstimateAttempts(prefix string) uint64 {
	attempts := uint64(1)
	for range prefix {
		if attempts > math.MaxUint64/58 {
			return math.MaxUint64
		}
		attempts *= 58
	}
	return attempts
}
