//go:build !opencl
// +build !opencl

package solana

// kernelName matches the entry point of the OpenCL search kernel.
const kernelName = "svanity_search"

// KernelSource is a stub for non-OpenCL builds.
func KernelSource() string {
	return ""
}
