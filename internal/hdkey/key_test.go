package hdkey

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// BIP-32 test vector 1 seed.
const vector1SeedHex = "000102030405060708090a0b0c0d0e0f"

func vector1Seed(t *testing.T) []byte {
	t.Helper()
	seed, err := hex.DecodeString(vector1SeedHex)
	if err != nil {
		t.Fatal(err)
	}
	return seed
}

func TestNewMaster_Vector1(t *testing.T) {
	master, err := NewMaster(vector1Seed(t))
	if err != nil {
		t.Fatalf("NewMaster() error = %v", err)
	}

	wantPriv := "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35"
	wantChain := "873dff81c02f525623fd1fe5167eac3a55a049de3d314bb42ee227ffed37d508"

	priv := master.scalar.Bytes()
	if got := hex.EncodeToString(priv[:]); got != wantPriv {
		t.Errorf("master private scalar = %s, want %s", got, wantPriv)
	}
	if got := hex.EncodeToString(master.chainCode[:]); got != wantChain {
		t.Errorf("master chain code = %s, want %s", got, wantChain)
	}
}

func TestNewMaster_Deterministic(t *testing.T) {
	seed := vector1Seed(t)

	a, err := NewMaster(seed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMaster(seed)
	if err != nil {
		t.Fatal(err)
	}

	if !a.scalar.Equals(&b.scalar) {
		t.Error("NewMaster() private scalar not deterministic")
	}
	if a.chainCode != b.chainCode {
		t.Error("NewMaster() chain code not deterministic")
	}
	if a.pub != b.pub {
		t.Error("NewMaster() public key not deterministic")
	}
}

func TestPublicKey_CompressedFormat(t *testing.T) {
	master, err := NewMaster(vector1Seed(t))
	if err != nil {
		t.Fatal(err)
	}

	paths := [][]uint32{
		nil,
		{0},
		{HardenedKeyStart + 44, HardenedKeyStart, HardenedKeyStart + 3, 1, 7},
	}

	for _, path := range paths {
		node, err := master.DerivePath(path)
		if err != nil {
			t.Fatalf("DerivePath(%v) error = %v", path, err)
		}

		pub := node.PublicKey()
		if pub[0] != 0x02 && pub[0] != 0x03 {
			t.Errorf("path %v: pubkey tag = 0x%02x, want 0x02 or 0x03", path, pub[0])
		}
		if _, err := btcec.ParsePubKey(pub[:]); err != nil {
			t.Errorf("path %v: pubkey does not parse as a curve point: %v", path, err)
		}
	}
}

func TestDerive_PathOrderSensitive(t *testing.T) {
	master, err := NewMaster(vector1Seed(t))
	if err != nil {
		t.Fatal(err)
	}

	ab, err := master.DerivePath([]uint32{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	ba, err := master.DerivePath([]uint32{1, 0})
	if err != nil {
		t.Fatal(err)
	}

	if ab.pub == ba.pub {
		t.Error("Derive([0,1]) and Derive([1,0]) produced the same key")
	}
}

func TestDerive_HardenedDiffersFromNonHardened(t *testing.T) {
	master, err := NewMaster(vector1Seed(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, index := range []uint32{0, 1, 19} {
		plain, err := master.Derive(index)
		if err != nil {
			t.Fatalf("Derive(%d) error = %v", index, err)
		}
		hardened, err := master.Derive(HardenedKeyStart + index)
		if err != nil {
			t.Fatalf("Derive(%d') error = %v", index, err)
		}

		if plain.pub == hardened.pub {
			t.Errorf("index %d: hardened and non-hardened children are identical", index)
		}
	}
}

func TestDerive_ParentUnchanged(t *testing.T) {
	master, err := NewMaster(vector1Seed(t))
	if err != nil {
		t.Fatal(err)
	}

	before := master.scalar.Bytes()
	chainBefore := master.chainCode

	if _, err := master.DerivePath([]uint32{HardenedKeyStart, 5, 9}); err != nil {
		t.Fatal(err)
	}

	after := master.scalar.Bytes()
	if !bytes.Equal(before[:], after[:]) || chainBefore != master.chainCode {
		t.Error("Derive mutated the parent node")
	}
}

// Every derivation this engine performs must agree with the btcsuite
// hdkeychain implementation of BIP-32.
func TestDerive_MatchesHdkeychain(t *testing.T) {
	seed := vector1Seed(t)

	master, err := NewMaster(seed)
	if err != nil {
		t.Fatal(err)
	}
	oracle, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}

	paths := [][]uint32{
		{HardenedKeyStart + 0},
		{HardenedKeyStart + 0, 1},
		{HardenedKeyStart + 44, HardenedKeyStart + 0, HardenedKeyStart + 0, 0, 0},
		{HardenedKeyStart + 49, HardenedKeyStart + 0, HardenedKeyStart + 19, 1, 19},
		{HardenedKeyStart + 84, HardenedKeyStart + 0, HardenedKeyStart + 2, 0, 7},
		{0, 1},
		{1, 0},
	}

	for _, path := range paths {
		node, err := master.DerivePath(path)
		if err != nil {
			t.Fatalf("DerivePath(%v) error = %v", path, err)
		}

		ref := oracle
		for _, index := range path {
			if ref, err = ref.Derive(index); err != nil {
				t.Fatalf("oracle Derive(%v) error = %v", path, err)
			}
		}

		refPriv, err := ref.ECPrivKey()
		if err != nil {
			t.Fatal(err)
		}

		priv := node.scalar.Bytes()
		if !bytes.Equal(priv[:], refPriv.Serialize()) {
			t.Errorf("path %v: private scalar disagrees with hdkeychain", path)
		}

		refPub, err := ref.ECPubKey()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(node.pub[:], refPub.SerializeCompressed()) {
			t.Errorf("path %v: public key disagrees with hdkeychain", path)
		}
	}
}

func TestDerivePath_EmptyReturnsSelf(t *testing.T) {
	master, err := NewMaster(vector1Seed(t))
	if err != nil {
		t.Fatal(err)
	}

	node, err := master.DerivePath(nil)
	if err != nil {
		t.Fatal(err)
	}
	if node != master {
		t.Error("DerivePath(nil) should return the node itself")
	}
}
