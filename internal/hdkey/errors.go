package hdkey

import "errors"

var (
	ErrInvalidSeed     = errors.New("seed produces invalid master key")
	ErrInvalidChildKey = errors.New("derived child key is invalid")
	ErrInvalidAddress  = errors.New("not a legacy P2PKH address")
	ErrBadChecksum     = errors.New("address checksum mismatch")
	ErrEmptyMnemonic   = errors.New("empty mnemonic")
)
