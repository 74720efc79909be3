// Package search enumerates the fixed set of BIP-44/49/84/legacy derivation
// templates under a master key and looks for a target legacy address. The
// sequential engine is the reference ordering; the parallel engine must
// report exactly the same result.
package search

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Fantasim/seedcheck/internal/config"
	"github.com/Fantasim/seedcheck/internal/hdkey"
)

// branchCount covers the receive (0) and change (1) branches.
const branchCount = 2

// Limits bounds the index ranges scanned per template.
type Limits struct {
	Accounts   uint32 // account indices per non-legacy template
	AddressGap uint32 // terminal indices per branch
}

// DefaultLimits returns the standard 20-account, 20-index search space.
func DefaultLimits() Limits {
	return Limits{
		Accounts:   config.DefaultAccounts,
		AddressGap: config.DefaultAddressGap,
	}
}

// Match identifies the first derivation that produced the target address.
type Match struct {
	Template string `json:"template"`
	Account  uint32 `json:"account"` // hardened account index; always 0 for the legacy template
	Branch   uint32 `json:"branch"`  // 0 receive, 1 change
	Index    uint32 `json:"index"`
	Path     string `json:"path"`
	Address  string `json:"address"`
}

// Run scans every template in order against target and returns the first
// match. found == false means the whole space was exhausted without a match
// — a normal, deterministic outcome, not an error. A failed derivation step
// aborts the run.
func Run(master *hdkey.Key, target hdkey.Address, limits Limits) (*Match, bool, error) {
	start := time.Now()

	for _, tpl := range Templates {
		slog.Debug("scanning template",
			"template", tpl.Name,
			"accounts", limits.Accounts,
			"addressGap", limits.AddressGap,
		)

		root, err := master.DerivePath(tpl.Prefix)
		if err != nil {
			return nil, false, fmt.Errorf("derive %s prefix: %w", tpl.Name, err)
		}

		if tpl.Legacy() {
			match, err := scanAccount(root, tpl, 0, target, limits.AddressGap)
			if err != nil {
				return nil, false, err
			}
			if match != nil {
				logMatch(match, time.Since(start))
				return match, true, nil
			}
			continue
		}

		for i := uint32(0); i < limits.Accounts; i++ {
			account, err := root.Derive(hdkey.HardenedKeyStart + i)
			if err != nil {
				return nil, false, fmt.Errorf("derive %s account %d: %w", tpl.Name, i, err)
			}

			match, err := scanAccount(account, tpl, i, target, limits.AddressGap)
			if err != nil {
				return nil, false, err
			}
			if match != nil {
				logMatch(match, time.Since(start))
				return match, true, nil
			}
		}
	}

	slog.Info("search exhausted, no match",
		"templates", len(Templates),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil, false, nil
}

// scanAccount scans branches {0,1} and terminal indices [0,gap) under
// parent, which is an account node — or the master itself for the legacy
// template. Both engines funnel through here so their per-account ordering
// is identical by construction.
func scanAccount(parent *hdkey.Key, tpl Template, accountIndex uint32, target hdkey.Address, gap uint32) (*Match, error) {
	for j := uint32(0); j < branchCount; j++ {
		branch, err := parent.Derive(j)
		if err != nil {
			return nil, fmt.Errorf("derive %s branch %d: %w", tpl.Name, j, err)
		}

		for k := uint32(0); k < gap; k++ {
			child, err := branch.Derive(k)
			if err != nil {
				return nil, fmt.Errorf("derive %s index %d/%d: %w", tpl.Name, j, k, err)
			}

			if addr := child.Address(); addr == target {
				return &Match{
					Template: tpl.Name,
					Account:  accountIndex,
					Branch:   j,
					Index:    k,
					Path:     tpl.pathString(accountIndex, j, k),
					Address:  addr.String(),
				}, nil
			}
		}
	}
	return nil, nil
}

func logMatch(m *Match, elapsed time.Duration) {
	slog.Info("target address found",
		"template", m.Template,
		"path", m.Path,
		"address", m.Address,
		"duration", elapsed.Round(time.Millisecond),
	)
}
