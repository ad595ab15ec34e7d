// Package ui owns every byte the search writes to the terminal: the
// search plan, the progress line, match records and banners. In verbose
// mode all informational output goes to stderr; stdout carries nothing
// but simple-output match records.
package ui

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/br0x/svanity/pkg/generator"
	"github.com/br0x/svanity/pkg/generator/solana"
)

// progressInterval is the refresh period of the progress line.
const progressInterval = 250 * time.Millisecond

// PrintSearchPlan writes the chosen prefix, the attempt estimates and
// every compiled range to stderr, before any worker starts.
func PrintSearchPlan(m *solana.Matcher) {
	fmt.Fprintf(os.Stderr, "Searching for Solana addresses starting with: %s\n", m.Prefix())
	fmt.Fprintf(os.Stderr, "Using fast byte-level range matching\n")
	fmt.Fprintf(os.Stderr, "Found %d range(s) for this prefix:\n\n", m.NumRanges())

	est := m.Estimate()
	fmt.Fprintf(os.Stderr, "Estimated total attempts:\n")
	fmt.Fprintf(os.Stderr, "  %s (50%%), %s (90%%), %s (99%%)\n\n",
		formatAttempts(est.P50), formatAttempts(est.P90), formatAttempts(est.P99))

	for i, r := range m.Ranges() {
		minAddr := solana.PubkeyToAddress(r.Min[:])
		maxAddr := solana.PubkeyToAddress(r.Max[:])
		fmt.Fprintf(os.Stderr, "  Range %d:\n", i+1)
		fmt.Fprintf(os.Stderr, "    Min: %s, len: %d (0x%X)\n", minAddr, len(minAddr), r.Min[:])
		fmt.Fprintf(os.Stderr, "    Max: %s, len: %d (0x%X)\n\n", maxAddr, len(maxAddr), r.Max[:])
	}
}

func formatAttempts(n uint64) string {
	if n == math.MaxUint64 {
		return ">18 quintillion"
	}
	return fmt.Sprintf("%d", n)
}

// PrintMatch emits one committed match. The caller is the single
// coordinator goroutine, so records are never torn. In simple mode the
// record is the one-line stdout form; otherwise a banner on stderr.
// progressActive inserts a newline so the banner does not land on the
// progress line.
func PrintMatch(res generator.Result, simple, progressActive bool) {
	if progressActive {
		fmt.Fprintln(os.Stderr)
	}
	if simple {
		fmt.Fprintf(os.Stdout, "%X %s\n", res.Seed, res.Address)
		return
	}
	fmt.Fprintf(os.Stderr, "Found matching account!\nPrivate Key: %X\nAddress:     %s\n", res.Seed, res.Address)
}

// ReportProgress refreshes the progress line every 250 ms until the
// context is cancelled.
func ReportProgress(ctx context.Context, counters *generator.Counters) {
	start := time.Now()
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := counters.StatsSince(start)
			fmt.Fprintf(os.Stderr, "\rTried %d keys (%.1f keys/s)", stats.Attempts, stats.HashRate)
		}
	}
}
