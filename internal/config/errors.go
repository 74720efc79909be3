package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrMnemonicNotSet = errors.New("mnemonic not configured")
	ErrTargetNotSet   = errors.New("target address not configured")
)

// Error codes — shared with API clients via error responses.
const (
	ErrorInvalidRequest = "ERROR_INVALID_REQUEST"
	ErrorInvalidAddress = "ERROR_INVALID_ADDRESS"
	ErrorSearchFailed   = "ERROR_SEARCH_FAILED"
	ErrorRateLimited    = "ERROR_RATE_LIMITED"
)
