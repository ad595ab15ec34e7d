// Command svanity searches for Solana vanity addresses: Ed25519
// keypairs whose Base58 public key starts with a chosen prefix.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/br0x/svanity/internal/ui"
	"github.com/br0x/svanity/pkg/generator"
	"github.com/br0x/svanity/pkg/generator/cpu"
	"github.com/br0x/svanity/pkg/generator/solana"
)

const (
	progname = "svanity"
	version  = "1.0.0"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet(progname, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	threads := fs.IntP("threads", "t", 0, "number of CPU worker threads (default: cores minus one)")
	useGPU := fs.BoolP("gpu", "g", false, "enable the GPU worker through OpenCL")
	limit := fs.Uint64P("limit", "l", 1, "generate N addresses, then exit (0 for infinite)")
	gpuThreads := fs.Uint64("gpu-threads", solana.DefaultGPUThreads, "the number of GPU threads to use")
	gpuLocal := fs.Uint64("gpu-local-work-size", 0, "the GPU local work size (advanced users only)")
	gpuGlobal := fs.Uint64("gpu-global-work-size", 0, "the GPU global work size (advanced users only)")
	gpuPlatform := fs.Int("gpu-platform", 0, "the OpenCL platform to use")
	gpuDevice := fs.Int("gpu-device", 0, "the OpenCL device to use")
	noProgress := fs.Bool("no-progress", false, "disable progress output")
	simpleOutput := fs.Bool("simple-output", false, `output found keys in the form "KEY ADDRESS"`)
	showVersion := fs.Bool("version", false, "display version info and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] PREFIX\n\nGenerate Solana addresses with a given prefix\n\n%s", progname, fs.FlagUsages())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Try '%s --help' for more information.\n", progname)
		return 1
	}
	if *showVersion {
		fmt.Printf("%s version %s\n", progname, version)
		return 0
	}
	if fs.NArg() != 1 || fs.Arg(0) == "" {
		fmt.Fprintf(os.Stderr, "%s: expected exactly one PREFIX argument\n", progname)
		fs.Usage()
		return 1
	}
	prefix := fs.Arg(0)

	workers := *threads
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
	}
	if workers < 1 {
		workers = 1
	}

	matcher, err := solana.CompilePrefix(prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create matcher for prefix %q: %v\n", prefix, err)
		return 1
	}

	cfg := &generator.Config{
		Prefix:       prefix,
		Workers:      workers,
		Limit:        *limit,
		Progress:     !*noProgress,
		SimpleOutput: *simpleOutput,
	}

	// Print the search plan before any worker can write a record.
	if !cfg.SimpleOutput {
		ui.PrintSearchPlan(matcher)
	}

	counters := new(generator.Counters)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	grp, workerCtx := errgroup.WithContext(ctx)
	results := make(chan generator.Result, 4)

	if cfg.Progress {
		grp.Go(func() error {
			ui.ReportProgress(workerCtx, counters)
			return nil
		})
	}

	engines := []generator.Generator{
		cpu.New(matcher, counters, cfg.Workers, cfg.Progress),
	}

	if *useGPU {
		gpu, err := solana.NewGPUSearcher(matcher, counters, solana.GPUOptions{
			PlatformIndex:  *gpuPlatform,
			DeviceIndex:    *gpuDevice,
			Threads:        *gpuThreads,
			LocalWorkSize:  *gpuLocal,
			GlobalWorkSize: *gpuGlobal,
			Progress:       cfg.Progress,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize GPU, continuing with CPU only: %v\n", err)
		} else {
			defer gpu.Release()
			engines = append(engines, gpu)
		}
	}

	for _, engine := range engines {
		grp.Go(func() error {
			return engine.Run(workerCtx, results)
		})
	}

	// The coordinator is the single sink: every match record is printed
	// here, whole, before it is counted, so the limit-th record is
	// always flushed before the workers are cancelled.
	exit := 0
	for cfg.Limit == 0 || counters.Found() < cfg.Limit {
		select {
		case res := <-results:
			ui.PrintMatch(res, cfg.SimpleOutput, cfg.Progress)
			counters.AddFound()
		case <-workerCtx.Done():
			// A worker failed; surface the error.
			if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
				exit = 1
			}
			return exit
		}
	}

	cancel()
	if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
		exit = 1
	}
	return exit
}
