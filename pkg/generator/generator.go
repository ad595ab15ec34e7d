// Package generator defines the shared contract between the search
// coordinator and its CPU and GPU search engines: the run configuration,
// the result record a worker emits for every confirmed match, and the
// pair of process-wide counters the progress reporter observes.
package generator

import (
	"context"
	"sync/atomic"
	"time"
)

// Config holds the configuration for a vanity address search.
type Config struct {
	Prefix       string // Desired Base58 address prefix
	Workers      int    // Number of CPU worker goroutines
	Limit        uint64 // Stop after this many matches; 0 means run forever
	Progress     bool   // Maintain the attempts counter and progress line
	SimpleOutput bool   // Emit bare "KEY ADDRESS" records on stdout
}

// Result contains a confirmed vanity keypair.
type Result struct {
	Seed    []byte // 32-byte private seed
	Address string // Base58-encoded public key
	Engine  string // Engine that produced the match ("CPU", "GPU")
}

// Stats holds point-in-time performance statistics for display.
type Stats struct {
	Attempts    uint64  // Total number of keys derived
	HashRate    float64 // Keys per second averaged since start
	ElapsedSecs float64 // Time elapsed since start
}

// Generator defines the contract for search engine backends. Both the
// CPU worker pool and the GPU batch driver implement it: Run blocks
// until the context is cancelled, sending every confirmed match on
// results.
type Generator interface {
	// Run starts the search and blocks until the context is cancelled
	// or the engine fails.
	Run(ctx context.Context, results chan<- Result) error

	// Name returns the implementation name (e.g. "CPU", "GPU").
	Name() string
}

// Counters is the pair of shared search counters. Attempts is bumped by
// every worker, Found only by the coordinator when it commits a match.
// Both are plain monotonic observations; no ordering beyond the atomic
// read-modify-write itself is required.
type Counters struct {
	attempts uint64
	found    uint64
}

// AddAttempts credits n derivations to the shared attempts counter.
func (c *Counters) AddAttempts(n uint64) {
	atomic.AddUint64(&c.attempts, n)
}

// Attempts returns the total number of keys derived so far.
func (c *Counters) Attempts() uint64 {
	return atomic.LoadUint64(&c.attempts)
}

// AddFound records one committed match and returns the new total.
func (c *Counters) AddFound() uint64 {
	return atomic.AddUint64(&c.found, 1)
}

// Found returns the number of committed matches.
func (c *Counters) Found() uint64 {
	return atomic.LoadUint64(&c.found)
}

// StatsSince derives display statistics from the counters for a search
// that started at the given time.
func (c *Counters) StatsSince(start time.Time) Stats {
	attempts := c.Attempts()
	elapsed := time.Since(start).Seconds()

	var rate float64
	if elapsed > 0 {
		rate = float64(attempts) / elapsed
	}
	return Stats{
		Attempts:    attempts,
		HashRate:    rate,
		ElapsedSecs: elapsed,
	}
}
