package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/tokenlint/pkg/layout"
	"github.com/kamal-hamza/tokenlint/pkg/metadata"
)

// DefaultPath is the config file looked up in the working directory
const DefaultPath = "tokenlint.yaml"

type Config struct {
	// Registry layout
	RootDir      string `yaml:"root_dir"`
	RootLabel    string `yaml:"root_label"`
	AssetsLabel  string `yaml:"assets_label"`
	LogoFilename string `yaml:"logo_filename"`
	InfoFilename string `yaml:"info_filename"`

	// Rules
	MaxDimension   int      `yaml:"max_dimension"`
	MaxFileSizeKB  int      `yaml:"max_file_size_kb"`
	RequiredFields []string `yaml:"required_fields"`

	// Scam-proof allow-list: chain -> symbol -> address
	OfficialContracts     map[string]map[string]string `yaml:"official_contracts"`
	OfficialContractsFile string                       `yaml:"official_contracts_file"`

	// CI
	ChangedFilesEnv string `yaml:"changed_files_env"`
	OutputFormat    string `yaml:"output_format"`

	// Scaffolding
	ExplorerURLs     map[string]string `yaml:"explorer_urls"`
	TokenTypes       map[string]string `yaml:"token_types"`
	DefaultTokenType string            `yaml:"default_token_type"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		RootDir:               ".",
		RootLabel:             layout.DefaultRootLabel,
		AssetsLabel:           layout.DefaultAssetsLabel,
		LogoFilename:          layout.DefaultLogoFilename,
		InfoFilename:          layout.DefaultInfoFilename,
		MaxDimension:          512,
		MaxFileSizeKB:         1024,
		RequiredFields:        append([]string{}, metadata.DefaultRequiredFields...),
		OfficialContracts:     make(map[string]map[string]string),
		OfficialContractsFile: "",
		ChangedFilesEnv:       "ALL_CHANGED_FILES",
		OutputFormat:          "text",
		ExplorerURLs: map[string]string{
			"memecore": "https://memecorescan.io/token/{address}",
			"ethereum": "https://etherscan.io/token/{address}",
		},
		TokenTypes: map[string]string{
			"memecore": "MRC20",
		},
		DefaultTokenType: "ERC20",
		ColorTheme:       "auto",
		WatchDebounceMS:  500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if !isValidOutputFormat(cfg.OutputFormat) {
		return nil, fmt.Errorf("invalid output_format %q (allowed: text, github)", cfg.OutputFormat)
	}

	// Resolve the contracts file relative to the config file
	if cfg.OfficialContractsFile != "" && !filepath.IsAbs(cfg.OfficialContractsFile) {
		cfg.OfficialContractsFile = filepath.Join(filepath.Dir(path), cfg.OfficialContractsFile)
	}

	return cfg, nil
}

// applyDefaults fills zero values left by a partial config file
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	if c.RootDir == "" {
		c.RootDir = d.RootDir
	}
	if c.RootLabel == "" {
		c.RootLabel = d.RootLabel
	}
	if c.AssetsLabel == "" {
		c.AssetsLabel = d.AssetsLabel
	}
	if c.LogoFilename == "" {
		c.LogoFilename = d.LogoFilename
	}
	if c.InfoFilename == "" {
		c.InfoFilename = d.InfoFilename
	}
	if c.MaxDimension <= 0 {
		c.MaxDimension = d.MaxDimension
	}
	if c.MaxFileSizeKB <= 0 {
		c.MaxFileSizeKB = d.MaxFileSizeKB
	}
	if len(c.RequiredFields) == 0 {
		c.RequiredFields = d.RequiredFields
	}
	if c.OfficialContracts == nil {
		c.OfficialContracts = make(map[string]map[string]string)
	}
	if c.ChangedFilesEnv == "" {
		c.ChangedFilesEnv = d.ChangedFilesEnv
	}
	if c.OutputFormat == "" {
		c.OutputFormat = d.OutputFormat
	}
	if c.ExplorerURLs == nil {
		c.ExplorerURLs = d.ExplorerURLs
	}
	if c.TokenTypes == nil {
		c.TokenTypes = d.TokenTypes
	}
	if c.DefaultTokenType == "" {
		c.DefaultTokenType = d.DefaultTokenType
	}
	if c.ColorTheme == "" {
		c.ColorTheme = d.ColorTheme
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = d.WatchDebounceMS
	}
}

// Layout builds the registry layout described by the config. A non-empty
// rootOverride takes precedence over root_dir.
func (c *Config) Layout(rootOverride string) (*layout.Layout, error) {
	root := c.RootDir
	if rootOverride != "" {
		root = rootOverride
	}

	l, err := layout.New(root)
	if err != nil {
		return nil, err
	}
	l.RootLabel = c.RootLabel
	l.AssetsLabel = c.AssetsLabel
	l.LogoFilename = c.LogoFilename
	l.InfoFilename = c.InfoFilename
	return l, nil
}

// ExplorerURL returns the explorer link for a token on chain
func (c *Config) ExplorerURL(chain, address string) string {
	tmpl, ok := c.ExplorerURLs[strings.ToLower(chain)]
	if !ok || tmpl == "" {
		return "https://..."
	}
	return strings.ReplaceAll(tmpl, "{address}", address)
}

// TokenType returns the default token standard used for chain
func (c *Config) TokenType(chain string) string {
	if t, ok := c.TokenTypes[strings.ToLower(chain)]; ok && t != "" {
		return t
	}
	return c.DefaultTokenType
}

func isValidOutputFormat(format string) bool {
	validFormats := []string{"text", "github"}
	for _, valid := range validFormats {
		if format == valid {
			return true
		}
	}
	return false
}
