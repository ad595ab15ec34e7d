//go:build opencl
// +build opencl

package solana

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"os"

	cl "github.com/CyberChainXyz/go-opencl"

	"github.com/br0x/svanity/pkg/generator"
)

// GPUSearcher owns the OpenCL state for batch candidate search: the
// runner bound to one device, the compiled kernel, and the four device
// buffers of the wire format (root, min ranges, max ranges, result).
// It is driven by exactly one goroutine; Release must run after that
// goroutine has returned.
type GPUSearcher struct {
	runner    *cl.OpenCLRunner
	matcher   *Matcher
	counters  *generator.Counters
	logger    *log.Logger
	numRanges uint32

	rootBuf   *cl.Buffer
	minBuf    *cl.Buffer
	maxBuf    *cl.Buffer
	resultBuf *cl.Buffer

	globalWorkSize uint64
	localWorkSize  uint64
	progress       bool
}

// NewGPUSearcher selects the OpenCL device, compiles the search kernel
// and uploads the matcher's range tables. The range tables are written
// once here; only the root and result buffers move per launch.
func NewGPUSearcher(m *Matcher, counters *generator.Counters, opts GPUOptions) (*GPUSearcher, error) {
	info, err := cl.Info()
	if err != nil {
		return nil, fmt.Errorf("opencl info: %w", err)
	}
	if opts.PlatformIndex < 0 || opts.PlatformIndex >= len(info.Platforms) {
		return nil, fmt.Errorf("platform index %d out of range (%d platforms)", opts.PlatformIndex, len(info.Platforms))
	}
	platform := info.Platforms[opts.PlatformIndex]
	if opts.DeviceIndex < 0 || opts.DeviceIndex >= len(platform.Devices) {
		return nil, fmt.Errorf("device index %d out of range (%d devices)", opts.DeviceIndex, len(platform.Devices))
	}
	device := platform.Devices[opts.DeviceIndex]
	fmt.Fprintf(os.Stderr, "Initializing Solana GPU %s %s\n", device.Vendor, device.Name)

	runner, err := device.InitRunner()
	if err != nil {
		return nil, fmt.Errorf("init runner: %w", err)
	}

	g := &GPUSearcher{
		runner:    runner,
		matcher:   m,
		counters:  counters,
		logger:    log.New(os.Stderr, "", 0),
		numRanges: uint32(m.NumRanges()),
		progress:  opts.Progress,
	}

	if err := runner.CompileKernels([]string{KernelSource()}, []string{kernelName}, ""); err != nil {
		runner.Free()
		return nil, fmt.Errorf("compile kernel: %w", err)
	}

	if err := g.createBuffers(); err != nil {
		runner.Free()
		return nil, err
	}

	g.globalWorkSize = opts.GlobalWorkSize
	if g.globalWorkSize == 0 {
		g.globalWorkSize = opts.Threads
	}
	if g.globalWorkSize == 0 {
		g.globalWorkSize = DefaultGPUThreads
	}
	g.localWorkSize = opts.LocalWorkSize

	return g, nil
}

func (g *GPUSearcher) createBuffers() error {
	var err error
	rangesSize := int(g.numRanges) * PubkeySize

	g.rootBuf, err = g.runner.CreateEmptyBuffer(cl.READ_ONLY, PrivkeySize)
	if err != nil {
		return fmt.Errorf("create root buffer: %w", err)
	}
	g.minBuf, err = g.runner.CreateEmptyBuffer(cl.READ_ONLY, rangesSize)
	if err != nil {
		return fmt.Errorf("create min_ranges buffer: %w", err)
	}
	g.maxBuf, err = g.runner.CreateEmptyBuffer(cl.READ_ONLY, rangesSize)
	if err != nil {
		return fmt.Errorf("create max_ranges buffer: %w", err)
	}
	g.resultBuf, err = g.runner.CreateEmptyBuffer(cl.READ_WRITE, 8)
	if err != nil {
		return fmt.Errorf("create result buffer: %w", err)
	}

	minData := make([]byte, 0, rangesSize)
	maxData := make([]byte, 0, rangesSize)
	for _, r := range g.matcher.Ranges() {
		minData = append(minData, r.Min[:]...)
		maxData = append(maxData, r.Max[:]...)
	}
	if err := cl.WriteBuffer(g.runner, 0, g.minBuf, minData, true); err != nil {
		return fmt.Errorf("write min_ranges: %w", err)
	}
	if err := cl.WriteBuffer(g.runner, 0, g.maxBuf, maxData, true); err != nil {
		return fmt.Errorf("write max_ranges: %w", err)
	}
	return nil
}

// Name returns the implementation name.
func (g *GPUSearcher) Name() string {
	return "GPU"
}

// BatchSize returns the number of candidates tested per launch.
func (g *GPUSearcher) BatchSize() uint64 {
	return g.globalWorkSize
}

// Run drives the launch loop until the context is cancelled. Confirmed
// matches are sent on results; kernel faults and non-matching device
// reports are logged and the iteration skipped, since a dropped
// candidate never hurts an unbounded random search.
func (g *GPUSearcher) Run(ctx context.Context, results chan<- generator.Result) error {
	root := make([]byte, PrivkeySize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if _, err := rand.Read(root); err != nil {
			return fmt.Errorf("read random root: %w", err)
		}

		key, found, err := g.compute(root)
		if g.progress {
			g.counters.AddAttempts(g.globalWorkSize)
		}
		if err != nil {
			g.logger.Printf("GPU compute failed: %v", err)
			continue
		}
		if !found {
			continue
		}

		// Re-derive on the CPU; the device result is advisory until it
		// survives the full textual check.
		pub := DerivePubkey(key)
		addr, ok := g.matcher.Confirm(pub)
		if !ok {
			g.logger.Printf("GPU returned non-matching solution: %X", key)
			continue
		}
		select {
		case results <- generator.Result{Seed: key, Address: addr, Engine: "GPU"}:
		case <-ctx.Done():
			return nil
		}
	}
}

// compute performs one launch: reset the result cell to the sentinel,
// upload the root, run the kernel and read back the matching global id,
// if any.
func (g *GPUSearcher) compute(root []byte) ([]byte, bool, error) {
	if err := cl.WriteBuffer(g.runner, 0, g.resultBuf, []uint64{ResultSentinel}, true); err != nil {
		return nil, false, fmt.Errorf("reset result: %w", err)
	}
	if err := cl.WriteBuffer(g.runner, 0, g.rootBuf, root, true); err != nil {
		return nil, false, fmt.Errorf("write root: %w", err)
	}

	numRanges := g.numRanges
	args := []cl.KernelParam{
		cl.BufferParam(g.resultBuf),
		cl.BufferParam(g.rootBuf),
		cl.BufferParam(g.minBuf),
		cl.BufferParam(g.maxBuf),
		cl.Param(&numRanges),
	}
	var local []uint64
	if g.localWorkSize > 0 {
		local = []uint64{g.localWorkSize}
	}
	if err := g.runner.RunKernel(kernelName, 1, nil, []uint64{g.globalWorkSize}, local, args, true); err != nil {
		return nil, false, fmt.Errorf("run kernel: %w", err)
	}

	out := []uint64{ResultSentinel}
	if err := cl.ReadBuffer(g.runner, 0, g.resultBuf, out); err != nil {
		return nil, false, fmt.Errorf("read result: %w", err)
	}
	if out[0] == ResultSentinel {
		return nil, false, nil
	}
	return ReconstructKey(root, out[0]), true, nil
}

// Release frees the device buffers, kernel, queue and context.
func (g *GPUSearcher) Release() {
	if g.runner != nil {
		g.runner.Free()
		g.runner = nil
	}
}
