package solana

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Key sizes. A Solana keypair seed and its compressed public key are
// both exactly 32 bytes.
const (
	PubkeySize  = 32
	PrivkeySize = 32
)

// DerivePubkey derives the Ed25519 public key for a 32-byte seed the way
// Solana does: hash the seed with SHA-512, clamp the first 32 bytes of
// the digest, and multiply the base point by the clamped scalar. The
// multiplication applies no further clamping; SetBytesWithClamping is
// exactly the clamp step (clear the low 3 bits, clear bit 255, set
// bit 254).
func DerivePubkey(seed []byte) []byte {
	h := sha512.Sum512(seed)
	s, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		// SetBytesWithClamping only fails on input length != 32.
		panic("solana: clamp failed: " + err.Error())
	}
	return new(edwards25519.Point).ScalarBaseMult(s).Bytes()
}

// PubkeyToAddress renders a public key as a Base58 Solana address.
func PubkeyToAddress(pub []byte) string {
	return base58.Encode(pub)
}

// IncrementSeed adds one to the seed in place. The seed is treated as a
// 256-bit integer whose LOW byte is at index 31: the carry runs from
// byte 31 toward byte 0. Wrapping past 2^256 continues from zero. This
// matches the convention the search has always used, so fixed-seed
// golden vectors stay stable.
func IncrementSeed(seed []byte) {
	for i := len(seed) - 1; i >= 0; i-- {
		seed[i]++
		if seed[i] != 0 {
			break
		}
	}
}
