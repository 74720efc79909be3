package hdkey

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// SeedFromMnemonic derives the 64-byte BIP-39 seed for a mnemonic sentence:
// PBKDF2-HMAC-SHA512, 2048 iterations, salt "mnemonic", empty passphrase.
// No word-list validation is performed — a rescue tool has to accept
// sentences the checksum would reject. Deterministic, no error path.
func SeedFromMnemonic(mnemonic string) []byte {
	seed := bip39.NewSeed(mnemonic, "")
	slog.Debug("seed derived from mnemonic", "seedLen", len(seed))
	return seed
}

// ReadMnemonicFromFile reads a mnemonic from a file and trims whitespace.
// The only rejection is an empty file; word validity is not checked.
func ReadMnemonicFromFile(path string) (string, error) {
	slog.Info("reading mnemonic from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read mnemonic file %q: %w", path, err)
	}

	mnemonic := strings.TrimSpace(string(data))
	if mnemonic == "" {
		return "", fmt.Errorf("mnemonic file %q is empty: %w", path, ErrEmptyMnemonic)
	}

	slog.Info("mnemonic read from file", "words", len(strings.Fields(mnemonic)))
	return mnemonic, nil
}
