package solana

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestReconstructKey(t *testing.T) {
	root := make([]byte, PrivkeySize)
	if _, err := rand.Read(root); err != nil {
		t.Fatal(err)
	}

	key := ReconstructKey(root, 0xABCDEF)
	if !bytes.Equal(key[:RootBytes], root[:RootBytes]) {
		t.Fatalf("root bytes altered: %x vs %x", key[:RootBytes], root[:RootBytes])
	}
	if key[29] != 0xAB || key[30] != 0xCD || key[31] != 0xEF {
		t.Fatalf("tail not big-endian: %x", key[29:])
	}

	// The root's own tail bytes never leak into the candidate.
	zeroTail := ReconstructKey(root, 0)
	if zeroTail[29] != 0 || zeroTail[30] != 0 || zeroTail[31] != 0 {
		t.Fatalf("global id 0 should zero the tail: %x", zeroTail[29:])
	}
}

func TestReconstructKeyEnumeratesDistinctCandidates(t *testing.T) {
	root := make([]byte, PrivkeySize)
	seen := make(map[[PrivkeySize]byte]bool)
	for gid := uint64(0); gid < 512; gid++ {
		var k [PrivkeySize]byte
		copy(k[:], ReconstructKey(root, gid))
		if seen[k] {
			t.Fatalf("duplicate candidate for gid %d", gid)
		}
		seen[k] = true
	}
}
