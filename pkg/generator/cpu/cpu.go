// Package cpu implements the CPU-based search workers.
package cpu

import (
	"context"
	"crypto/rand"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/br0x/svanity/pkg/generator"
	"github.com/br0x/svanity/pkg/generator/solana"
)

// Generator runs a pool of CPU search workers. Each worker walks its
// own arithmetic progression of seeds from an independent random start,
// so duplicate work across workers has negligible probability.
type Generator struct {
	matcher       *solana.Matcher
	counters      *generator.Counters
	workers       int
	countAttempts bool
}

// New creates a CPU generator with the given worker count.
func New(matcher *solana.Matcher, counters *generator.Counters, workers int, countAttempts bool) *Generator {
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		matcher:       matcher,
		counters:      counters,
		workers:       workers,
		countAttempts: countAttempts,
	}
}

// Name returns the implementation name.
func (g *Generator) Name() string {
	return "CPU"
}

// Run starts the workers and blocks until the context is cancelled or a
// worker fails. Confirmed matches are sent on results.
func (g *Generator) Run(ctx context.Context, results chan<- generator.Result) error {
	grp, ctx := errgroup.WithContext(ctx)
	for i := 0; i < g.workers; i++ {
		grp.Go(func() error {
			return g.worker(ctx, results)
		})
	}
	return grp.Wait()
}

// worker is the tight search loop: derive, range-test, confirm, emit,
// step the seed.
func (g *Generator) worker(ctx context.Context, results chan<- generator.Result) error {
	seed := make([]byte, solana.PrivkeySize)
	if _, err := rand.Read(seed); err != nil {
		return fmt.Errorf("seed worker: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		pub := solana.DerivePubkey(seed)
		if g.matcher.Matches(pub) {
			// Range boundaries admit rare spurious hits; only keys whose
			// encoding textually starts with the prefix are reported.
			if addr, ok := g.matcher.Confirm(pub); ok {
				found := make([]byte, len(seed))
				copy(found, seed)
				select {
				case results <- generator.Result{Seed: found, Address: addr, Engine: "CPU"}:
				case <-ctx.Done():
					return nil
				}
			}
		}

		if g.countAttempts {
			g.counters.AddAttempts(1)
		}
		solana.IncrementSeed(seed)
	}
}
