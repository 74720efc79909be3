package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fantasim/seedcheck/internal/hdkey"
)

// unit is one independently scannable (template, account) subtree. Units
// are ordered exactly as the sequential engine visits them, so the lowest
// unit holding a match is the sequential answer.
type unit struct {
	template int
	account  uint32
	root     *hdkey.Key
}

// RunParallel is the concurrent variant of Run. Workers claim
// (template, account) subtrees; each owns its whole node chain, so no key
// material is shared. When a unit matches, every unit ordered after it is
// skipped (cooperative early termination), and after all workers drain,
// the lowest matching unit wins — the result is deterministic and equal to
// Run's regardless of scheduling.
//
// workers <= 0 means runtime.NumCPU(); workers == 1 delegates to Run.
func RunParallel(ctx context.Context, master *hdkey.Key, target hdkey.Address, limits Limits, workers int) (*Match, bool, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 {
		return Run(master, target, limits)
	}

	units, err := buildUnits(master, limits)
	if err != nil {
		return nil, false, err
	}
	if len(units) < workers {
		workers = len(units)
	}

	start := time.Now()
	slog.Debug("parallel search started",
		"units", len(units),
		"workers", workers,
	)

	var (
		next     atomic.Int64
		bestUnit atomic.Int64
		firstErr atomic.Value
		wg       sync.WaitGroup
	)
	bestUnit.Store(int64(len(units)))
	matches := make([]*Match, len(units))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				u := next.Add(1) - 1
				if u >= int64(len(units)) {
					return
				}
				if firstErr.Load() != nil || ctx.Err() != nil {
					return
				}
				// A unit ordered at or after the best known match cannot win.
				if u >= bestUnit.Load() {
					continue
				}

				un := units[u]
				tpl := Templates[un.template]
				match, err := scanAccount(un.root, tpl, un.account, target, limits.AddressGap)
				if err != nil {
					firstErr.CompareAndSwap(nil, err)
					return
				}
				if match == nil {
					continue
				}

				matches[u] = match
				for {
					best := bestUnit.Load()
					if u >= best || bestUnit.CompareAndSwap(best, u) {
						break
					}
				}
			}
		}()
	}

	wg.Wait()

	if errVal := firstErr.Load(); errVal != nil {
		return nil, false, errVal.(error)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("parallel search: %w", err)
	}

	if best := bestUnit.Load(); best < int64(len(units)) {
		logMatch(matches[best], time.Since(start))
		return matches[best], true, nil
	}

	slog.Info("parallel search exhausted, no match",
		"units", len(units),
		"workers", workers,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil, false, nil
}

// buildUnits pre-derives each template's account (or legacy) roots in
// sequential order. The per-unit derivation cost is trivial next to the
// 2*gap children scanned inside the unit.
func buildUnits(master *hdkey.Key, limits Limits) ([]unit, error) {
	var units []unit
	for ti, tpl := range Templates {
		root, err := master.DerivePath(tpl.Prefix)
		if err != nil {
			return nil, fmt.Errorf("derive %s prefix: %w", tpl.Name, err)
		}

		if tpl.Legacy() {
			units = append(units, unit{template: ti, account: 0, root: root})
			continue
		}

		for i := uint32(0); i < limits.Accounts; i++ {
			account, err := root.Derive(hdkey.HardenedKeyStart + i)
			if err != nil {
				return nil, fmt.Errorf("derive %s account %d: %w", tpl.Name, i, err)
			}
			units = append(units, unit{template: ti, account: i, root: account})
		}
	}
	return units, nil
}
