//go:build !opencl
// +build !opencl

package solana

import (
	"context"
	"errors"

	"github.com/br0x/svanity/pkg/generator"
)

// GPUSearcher is a stub for non-OpenCL builds.
// Build with -tags opencl to enable GPU support.
type GPUSearcher struct{}

// NewGPUSearcher returns an error when OpenCL is not enabled.
func NewGPUSearcher(m *Matcher, counters *generator.Counters, opts GPUOptions) (*GPUSearcher, error) {
	return nil, errors.New("GPU support not compiled in; rebuild with -tags opencl")
}

// Name returns the generator name.
func (g *GPUSearcher) Name() string {
	return "GPU (disabled)"
}

// BatchSize returns zero.
func (g *GPUSearcher) BatchSize() uint64 {
	return 0
}

// Run returns immediately as GPU is not available.
func (g *GPUSearcher) Run(ctx context.Context, results chan<- generator.Result) error {
	return errors.New("GPU support not compiled in")
}

// Release does nothing.
func (g *GPUSearcher) Release() {}
