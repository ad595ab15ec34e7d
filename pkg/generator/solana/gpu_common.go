package solana

// GPU batch protocol constants. The host picks a random 32-byte root
// per launch; each work item overwrites the last three bytes with its
// 24-bit global id (big-endian placement at offsets 29..31) and tests
// the derived public key. The single result cell holds the matching
// global id, or ResultSentinel when the batch produced nothing.
const (
	TailBytes      = 3
	RootBytes      = PrivkeySize - TailBytes
	ResultSentinel = ^uint64(0)

	// DefaultGPUThreads is the default global work size per launch.
	DefaultGPUThreads = 1 << 20
)

// GPUOptions selects the OpenCL device and launch geometry.
type GPUOptions struct {
	PlatformIndex  int
	DeviceIndex    int
	Threads        uint64 // Global work size when GlobalWorkSize is 0
	LocalWorkSize  uint64 // 0 lets the driver choose
	GlobalWorkSize uint64 // Explicit override for the global work size
	Progress       bool   // Maintain the shared attempts counter
}

// ReconstructKey rebuilds the candidate seed a work item tested: the
// first 29 bytes of the launch root with the 24-bit global id appended
// big-endian.
func ReconstructKey(root []byte, globalID uint64) []byte {
	key := make([]byte, PrivkeySize)
	copy(key, root[:RootBytes])
	key[29] = byte(globalID >> 16)
	key[30] = byte(globalID >> 8)
	key[31] = byte(globalID)
	return key
}
