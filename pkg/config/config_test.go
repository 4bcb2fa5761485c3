package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.RootLabel != "blockchains" {
		t.Errorf("expected default RootLabel='blockchains', got %q", cfg.RootLabel)
	}

	if cfg.AssetsLabel != "assets" {
		t.Errorf("expected default AssetsLabel='assets', got %q", cfg.AssetsLabel)
	}

	if cfg.MaxDimension != 512 {
		t.Errorf("expected default MaxDimension=512, got %d", cfg.MaxDimension)
	}

	if cfg.MaxFileSizeKB != 1024 {
		t.Errorf("expected default MaxFileSizeKB=1024, got %d", cfg.MaxFileSizeKB)
	}

	if cfg.ChangedFilesEnv != "ALL_CHANGED_FILES" {
		t.Errorf("expected default ChangedFilesEnv='ALL_CHANGED_FILES', got %q", cfg.ChangedFilesEnv)
	}

	if cfg.OutputFormat != "text" {
		t.Errorf("expected default OutputFormat='text', got %q", cfg.OutputFormat)
	}

	want := []string{"name", "type", "symbol", "decimals", "description", "website", "explorer", "id", "status"}
	if strings.Join(cfg.RequiredFields, ",") != strings.Join(want, ",") {
		t.Errorf("expected default RequiredFields=%v, got %v", want, cfg.RequiredFields)
	}
}

func TestDefaultConfig_RequiredFieldsAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequiredFields[0] = "changed"

	if DefaultConfig().RequiredFields[0] == "changed" {
		t.Error("mutating one config's RequiredFields leaked into the defaults")
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/tokenlint.yaml")
	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.MaxDimension != 512 {
		t.Errorf("expected default MaxDimension=512, got %d", cfg.MaxDimension)
	}
}

func TestLoad_FullFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "tokenlint.yaml")
	writeFile(t, configPath, `root_label: chains
max_dimension: 256
required_fields: [name, id]
output_format: github
official_contracts:
  memecore:
    USDT: "0xdac17f958d2ee523a2206206994597c13d831ec7"
`)

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.RootLabel != "chains" {
		t.Errorf("RootLabel mismatch: got %q", loaded.RootLabel)
	}
	if loaded.MaxDimension != 256 {
		t.Errorf("MaxDimension mismatch: got %d", loaded.MaxDimension)
	}
	if len(loaded.RequiredFields) != 2 {
		t.Errorf("RequiredFields mismatch: got %v", loaded.RequiredFields)
	}
	if loaded.OutputFormat != "github" {
		t.Errorf("OutputFormat mismatch: got %q", loaded.OutputFormat)
	}
	if loaded.OfficialContracts["memecore"]["USDT"] == "" {
		t.Error("official contracts were not loaded")
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "tokenlint.yaml")
	writeFile(t, configPath, "max_dimension: 128\ncolor_theme: dark\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.MaxDimension != 128 {
		t.Errorf("expected MaxDimension=128, got %d", cfg.MaxDimension)
	}
	if cfg.ColorTheme != "dark" {
		t.Errorf("expected ColorTheme='dark', got %q", cfg.ColorTheme)
	}

	// Everything else falls back to defaults
	if cfg.RootLabel != "blockchains" {
		t.Errorf("expected default RootLabel, got %q", cfg.RootLabel)
	}
	if cfg.MaxFileSizeKB != 1024 {
		t.Errorf("expected default MaxFileSizeKB, got %d", cfg.MaxFileSizeKB)
	}
	if len(cfg.RequiredFields) != 9 {
		t.Errorf("expected default RequiredFields, got %v", cfg.RequiredFields)
	}
	if cfg.WatchDebounceMS != 500 {
		t.Errorf("expected default WatchDebounceMS, got %d", cfg.WatchDebounceMS)
	}
}

func TestLoad_NonPositiveLimits(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero", "max_dimension: 0\nmax_file_size_kb: 0\n"},
		{"negative", "max_dimension: -5\nmax_file_size_kb: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "tokenlint.yaml")
			writeFile(t, configPath, tt.content)

			cfg, err := Load(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}
			if cfg.MaxDimension != 512 || cfg.MaxFileSizeKB != 1024 {
				t.Errorf("expected defaults, got %d / %d", cfg.MaxDimension, cfg.MaxFileSizeKB)
			}
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "tokenlint.yaml")
	writeFile(t, configPath, "max_dimension: [unclosed\n")

	if _, err := Load(configPath); err == nil {
		t.Error("expected error loading invalid YAML")
	}
}

func TestLoad_InvalidOutputFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "tokenlint.yaml")
	writeFile(t, configPath, "output_format: junit\n")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error for unknown output_format")
	}
	if !strings.Contains(err.Error(), "junit") {
		t.Errorf("error should name the bad format, got %v", err)
	}
}

func TestLoad_ResolvesContractsFileRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tokenlint.yaml")
	writeFile(t, configPath, "official_contracts_file: contracts.yaml\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := filepath.Join(dir, "contracts.yaml")
	if cfg.OfficialContractsFile != want {
		t.Errorf("expected %q, got %q", want, cfg.OfficialContractsFile)
	}
}

func TestConfig_Layout(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.RootDir = root
	cfg.RootLabel = "chains"
	cfg.LogoFilename = "icon.png"

	l, err := cfg.Layout("")
	if err != nil {
		t.Fatalf("Layout() failed: %v", err)
	}
	if l.RootPath != root {
		t.Errorf("expected RootPath=%q, got %q", root, l.RootPath)
	}
	if l.RootLabel != "chains" || l.LogoFilename != "icon.png" {
		t.Errorf("labels not carried over: %+v", l)
	}

	override := t.TempDir()
	l, err = cfg.Layout(override)
	if err != nil {
		t.Fatalf("Layout() failed: %v", err)
	}
	if l.RootPath != override {
		t.Errorf("override should win, got %q", l.RootPath)
	}
}

func TestConfig_ExplorerURL(t *testing.T) {
	cfg := DefaultConfig()
	addr := "0xdAC17F958D2ee523a2206206994597C13D831ec7"

	tests := []struct {
		chain string
		want  string
	}{
		{"memecore", "https://memecorescan.io/token/" + addr},
		{"Ethereum", "https://etherscan.io/token/" + addr},
		{"unknown", "https://..."},
	}

	for _, tt := range tests {
		t.Run(tt.chain, func(t *testing.T) {
			if got := cfg.ExplorerURL(tt.chain, addr); got != tt.want {
				t.Errorf("ExplorerURL(%q) = %q, want %q", tt.chain, got, tt.want)
			}
		})
	}
}

func TestConfig_TokenType(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.TokenType("memecore"); got != "MRC20" {
		t.Errorf("expected MRC20 for memecore, got %q", got)
	}
	if got := cfg.TokenType("MemeCore"); got != "MRC20" {
		t.Errorf("chain lookup should ignore case, got %q", got)
	}
	if got := cfg.TokenType("ethereum"); got != "ERC20" {
		t.Errorf("expected default ERC20, got %q", got)
	}
}

func TestMergedContracts(t *testing.T) {
	dir := t.TempDir()
	contractsPath := filepath.Join(dir, "contracts.json")
	writeFile(t, contractsPath, `{"MemeCore": {"weth": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "usdt": "0x0000000000000000000000000000000000000001"}}`)

	cfg := DefaultConfig()
	cfg.OfficialContracts = map[string]map[string]string{
		"memecore": {"USDT": "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
		"ethereum": {"DAI": "0x6B175474E89094C44Da98b954EedeAC495271d0F"},
	}
	cfg.OfficialContractsFile = contractsPath

	merged, err := cfg.MergedContracts()
	if err != nil {
		t.Fatalf("MergedContracts() failed: %v", err)
	}

	if len(merged["memecore"]) != 2 {
		t.Errorf("expected 2 memecore symbols, got %v", merged["memecore"])
	}
	if merged["memecore"]["USDT"] != "0x0000000000000000000000000000000000000001" {
		t.Errorf("file entry should win on conflict, got %q", merged["memecore"]["USDT"])
	}
	if merged["memecore"]["WETH"] == "" {
		t.Error("file-only symbol missing after merge")
	}
	if merged["ethereum"]["DAI"] == "" {
		t.Error("inline-only chain missing after merge")
	}
}

func TestMergedContracts_MissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfficialContractsFile = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := cfg.MergedContracts(); err == nil {
		t.Error("expected error for a missing contracts file")
	}
}
