// Package hdkey implements BIP-32 hierarchical-deterministic key derivation
// over secp256k1, from mnemonic seed to legacy P2PKH address. Scalar and
// point arithmetic is delegated to the dcrec secp256k1 library; this package
// owns the derivation protocol itself.
package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// HardenedKeyStart is the first hardened child index per BIP-32.
const HardenedKeyStart uint32 = 0x80000000

// masterHMACKey keys the HMAC-SHA512 that turns a seed into the master node.
const masterHMACKey = "Bitcoin seed"

// Key is one node of a BIP-32 key tree: a private scalar, the chain code
// used to derive children, and the compressed public key recomputed from the
// scalar at construction. A Key is immutable; Derive returns a new node and
// never touches the parent.
type Key struct {
	scalar    secp256k1.ModNScalar // invariant: non-zero and below the curve order
	chainCode [32]byte
	pub       [33]byte
}

// newKey constructs a node from an already-validated scalar, recomputing the
// compressed public key so scalar and pubkey can never diverge.
func newKey(scalar *secp256k1.ModNScalar, chainCode []byte) *Key {
	k := &Key{scalar: *scalar}
	copy(k.chainCode[:], chainCode)
	copy(k.pub[:], secp256k1.NewPrivateKey(scalar).PubKey().SerializeCompressed())
	return k
}

// NewMaster derives the master node from a BIP-39 seed:
// HMAC-SHA512(key="Bitcoin seed", msg=seed), left half private scalar, right
// half chain code. Returns ErrInvalidSeed when the left half is not a valid
// scalar — a ~2^-128 event, checked rather than assumed.
func NewMaster(seed []byte) (*Key, error) {
	mac := hmac.New(sha512.New, []byte(masterHMACKey))
	mac.Write(seed)
	sum := mac.Sum(nil)

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(sum[:32]); overflow || scalar.IsZero() {
		return nil, fmt.Errorf("master key from seed: %w", ErrInvalidSeed)
	}

	return newKey(&scalar, sum[32:]), nil
}

// Derive returns the child node at index. Indices at or above
// HardenedKeyStart derive hardened children from the private scalar;
// lower indices derive from the compressed public key.
//
// Returns ErrInvalidChildKey when the HMAC left half is not a valid scalar
// or the tweaked child scalar is zero. BIP-32 says to skip to the next
// index in that case; this engine instead fails the whole derivation, a
// deliberate and tested deviation carried over from the search semantics.
func (k *Key) Derive(index uint32) (*Key, error) {
	data := make([]byte, 0, 37) // 1 + 32 + 4 or 33 + 4
	if index >= HardenedKeyStart {
		priv := k.scalar.Bytes()
		data = append(data, 0x00)
		data = append(data, priv[:]...)
	} else {
		data = append(data, k.pub[:]...)
	}
	var ser32 [4]byte
	binary.BigEndian.PutUint32(ser32[:], index)
	data = append(data, ser32[:]...)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)

	var tweak secp256k1.ModNScalar
	if overflow := tweak.SetByteSlice(sum[:32]); overflow {
		return nil, fmt.Errorf("derive child %d: %w", index, ErrInvalidChildKey)
	}

	// child = parent + I_L mod N
	child := k.scalar
	child.Add(&tweak)
	if child.IsZero() {
		return nil, fmt.Errorf("derive child %d: %w", index, ErrInvalidChildKey)
	}

	return newKey(&child, sum[32:]), nil
}

// DerivePath applies the indices left to right from k. An empty path
// returns k itself.
func (k *Key) DerivePath(path []uint32) (*Key, error) {
	node := k
	for _, index := range path {
		var err error
		if node, err = node.Derive(index); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// PublicKey returns the 33-byte compressed public key.
func (k *Key) PublicKey() [33]byte {
	return k.pub
}
