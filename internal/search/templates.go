package search

import (
	"fmt"

	"github.com/Fantasim/seedcheck/internal/config"
	"github.com/Fantasim/seedcheck/internal/hdkey"
)

// Template is a derivation-path prefix the engine scans under.
type Template struct {
	Name   string
	Prefix []uint32 // hardened purpose and coin type; empty for the legacy template
}

// Legacy reports whether the template skips the account level and derives
// branch/index children directly under the master node.
func (t Template) Legacy() bool {
	return len(t.Prefix) == 0
}

// Templates in the fixed order they are tried; the first match wins.
var Templates = []Template{
	{Name: "bip44", Prefix: []uint32{hdkey.HardenedKeyStart + config.BIP44Purpose, hdkey.HardenedKeyStart + config.BTCCoinType}},
	{Name: "bip49", Prefix: []uint32{hdkey.HardenedKeyStart + config.BIP49Purpose, hdkey.HardenedKeyStart + config.BTCCoinType}},
	{Name: "bip84", Prefix: []uint32{hdkey.HardenedKeyStart + config.BIP84Purpose, hdkey.HardenedKeyStart + config.BTCCoinType}},
	{Name: "legacy"},
}

// pathString renders the concrete derivation path, e.g. m/44'/0'/3'/1/7
// for BIP-44 templates or m/1/7 for the legacy template.
func (t Template) pathString(account, branch, index uint32) string {
	s := "m"
	for _, p := range t.Prefix {
		s += fmt.Sprintf("/%d'", p-hdkey.HardenedKeyStart)
	}
	if !t.Legacy() {
		s += fmt.Sprintf("/%d'", account)
	}
	return s + fmt.Sprintf("/%d/%d", branch, index)
}
