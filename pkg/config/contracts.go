package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadContractsFile reads a chain -> symbol -> address map from a YAML or
// JSON file. JSON is accepted because it is a subset of YAML.
func LoadContractsFile(path string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read official contracts file: %w", err)
	}

	contracts := make(map[string]map[string]string)
	if err := yaml.Unmarshal(data, &contracts); err != nil {
		return nil, fmt.Errorf("failed to parse official contracts file: %w", err)
	}
	return contracts, nil
}

// MergedContracts returns the inline official_contracts overlaid with the
// entries of official_contracts_file. File entries win on conflict.
func (c *Config) MergedContracts() (map[string]map[string]string, error) {
	merged := make(map[string]map[string]string)
	add := func(src map[string]map[string]string) {
		for chain, symbols := range src {
			key := strings.ToLower(strings.TrimSpace(chain))
			if merged[key] == nil {
				merged[key] = make(map[string]string)
			}
			for symbol, addr := range symbols {
				merged[key][strings.ToUpper(strings.TrimSpace(symbol))] = addr
			}
		}
	}

	add(c.OfficialContracts)

	if c.OfficialContractsFile != "" {
		fromFile, err := LoadContractsFile(c.OfficialContractsFile)
		if err != nil {
			return nil, err
		}
		add(fromFile)
	}

	return merged, nil
}
