package base58

import "errors"

var (
	ErrInvalidCharacter = errors.New("invalid base58 character")
	ErrInvalidLength    = errors.New("invalid base58 decoded length")
)
