package config

import "time"

// BIP-32/44 Derivation
const (
	BIP44Purpose = 44 // m/44'/0'/i'/j/k — legacy P2PKH
	BIP49Purpose = 49 // m/49'/0'/i'/j/k
	BIP84Purpose = 84 // m/84'/0'/i'/j/k
	BTCCoinType  = 0
)

// Search Ranges
const (
	DefaultAccounts   = 20 // account indices tried per template
	DefaultAddressGap = 20 // terminal indices tried per branch
	MaxAccounts       = 1_000
	MaxAddressGap     = 10_000
)

// Server
const (
	ServerReadTimeout  = 30 * time.Second
	ServerWriteTimeout = 120 * time.Second // search requests are CPU-bound and slow
	ServerIdleTimeout  = 60 * time.Second
	ShutdownTimeout    = 10 * time.Second
)

// Rate Limiting
const (
	SearchRateLimit = 1 // search requests per second per server
	SearchRateBurst = 2
)

// Logging
const (
	LogFilePattern = "seedcheck-%s.log" // %s = YYYY-MM-DD
	LogMaxAgeDays  = 30
)
