package hdkey

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/Fantasim/seedcheck/internal/base58"
)

// AddressLen is the raw size of a legacy address:
// 1 version byte + 20-byte hash160 + 4-byte checksum.
const AddressLen = 25

// Address is a raw legacy P2PKH mainnet address. Comparable by value, which
// is what the search engine relies on.
type Address [AddressLen]byte

// Address builds the legacy mainnet address for the node's public key:
// 0x00 || hash160(pubkey) || first 4 bytes of double-SHA256 over the
// preceding 21 bytes.
func (k *Key) Address() Address {
	var addr Address
	addr[0] = chaincfg.MainNetParams.PubKeyHashAddrID
	copy(addr[1:21], btcutil.Hash160(k.pub[:]))
	checksum := chainhash.DoubleHashB(addr[:21])
	copy(addr[21:], checksum[:4])
	return addr
}

// String renders the address in Base58Check text form.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// ParseAddress decodes a Base58Check legacy address and verifies its version
// byte and checksum. A target must pass both before a search is worth
// running; the codec itself leaves checksum verification to callers.
func ParseAddress(s string) (Address, error) {
	raw, err := base58.DecodeFixed(s, AddressLen)
	if err != nil {
		return Address{}, fmt.Errorf("parse address %q: %w", s, err)
	}

	var addr Address
	copy(addr[:], raw)

	if addr[0] != chaincfg.MainNetParams.PubKeyHashAddrID {
		return Address{}, fmt.Errorf("parse address %q: version byte 0x%02x: %w", s, addr[0], ErrInvalidAddress)
	}

	checksum := chainhash.DoubleHashB(addr[:21])
	if !bytes.Equal(addr[21:], checksum[:4]) {
		return Address{}, fmt.Errorf("parse address %q: %w", s, ErrBadChecksum)
	}

	return addr, nil
}
