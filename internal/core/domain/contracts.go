package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kamal-hamza/tokenlint/pkg/address"
)

// OfficialContracts reserves token symbols on a chain to one canonical
// address. Keys are lower-case chain names and upper-case symbols.
type OfficialContracts struct {
	chains map[string]map[string]string
}

// NewOfficialContracts normalizes chain and symbol keys and converts every
// address to its checksummed form. An invalid address is an error.
func NewOfficialContracts(raw map[string]map[string]string) (*OfficialContracts, error) {
	chains := make(map[string]map[string]string, len(raw))

	for chain, symbols := range raw {
		ck := strings.ToLower(strings.TrimSpace(chain))
		if ck == "" {
			return nil, fmt.Errorf("official contracts contain an empty chain name")
		}
		if chains[ck] == nil {
			chains[ck] = make(map[string]string, len(symbols))
		}

		for symbol, addr := range symbols {
			sk := strings.ToUpper(strings.TrimSpace(symbol))
			if sk == "" {
				return nil, fmt.Errorf("official contracts for %q contain an empty symbol", chain)
			}
			canon, err := address.Normalize(addr)
			if err != nil {
				return nil, fmt.Errorf("official contract %s/%s: %w", chain, symbol, err)
			}
			chains[ck][sk] = canon
		}
	}

	return &OfficialContracts{chains: chains}, nil
}

// EmptyContracts returns a registry that reserves nothing
func EmptyContracts() *OfficialContracts {
	return &OfficialContracts{chains: map[string]map[string]string{}}
}

// Reserved returns the canonical address for symbol on chain, if one is set.
// Both lookups are case-insensitive.
func (c *OfficialContracts) Reserved(chain, symbol string) (string, bool) {
	if c == nil {
		return "", false
	}
	symbols, ok := c.chains[strings.ToLower(chain)]
	if !ok {
		return "", false
	}
	addr, ok := symbols[strings.ToUpper(symbol)]
	return addr, ok
}

// Chains returns the chains that have reserved symbols, sorted
func (c *OfficialContracts) Chains() []string {
	if c == nil {
		return nil
	}
	chains := make([]string, 0, len(c.chains))
	for chain := range c.chains {
		chains = append(chains, chain)
	}
	sort.Strings(chains)
	return chains
}

// Len returns the total number of reserved symbols
func (c *OfficialContracts) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, symbols := range c.chains {
		n += len(symbols)
	}
	return n
}
