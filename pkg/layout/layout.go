package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultRootLabel    = "blockchains"
	DefaultAssetsLabel  = "assets"
	DefaultLogoFilename = "logo.png"
	DefaultInfoFilename = "info.json"
)

// Layout describes where token folders live inside a registry checkout:
// <RootPath>/<RootLabel>/<chain>/<AssetsLabel>/<token>/
type Layout struct {
	RootPath     string
	RootLabel    string
	AssetsLabel  string
	LogoFilename string
	InfoFilename string
}

// New creates a Layout rooted at rootPath with the default labels
func New(rootPath string) (*Layout, error) {
	if rootPath == "" {
		rootPath = "."
	}
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve registry root: %w", err)
	}

	return &Layout{
		RootPath:     abs,
		RootLabel:    DefaultRootLabel,
		AssetsLabel:  DefaultAssetsLabel,
		LogoFilename: DefaultLogoFilename,
		InfoFilename: DefaultInfoFilename,
	}, nil
}

// Exists checks if the chains directory is present
func (l *Layout) Exists() bool {
	info, err := os.Stat(l.ChainsPath())
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ChainsPath returns the directory holding one folder per chain
func (l *Layout) ChainsPath() string {
	return filepath.Join(l.RootPath, l.RootLabel)
}

// ChainPath returns the directory for a single chain
func (l *Layout) ChainPath(chain string) string {
	return filepath.Join(l.ChainsPath(), chain)
}

// AssetsPath returns the assets directory of a chain
func (l *Layout) AssetsPath(chain string) string {
	return filepath.Join(l.ChainPath(chain), l.AssetsLabel)
}

// TokenPath returns the folder of one token
func (l *Layout) TokenPath(chain, token string) string {
	return filepath.Join(l.AssetsPath(chain), token)
}

// RelTokenPath returns the slash-separated path of a token folder relative to
// the root, as it appears in a change-set.
func (l *Layout) RelTokenPath(chain, token string) string {
	return strings.Join([]string{l.RootLabel, chain, l.AssetsLabel, token}, "/")
}

// RelFilePath returns the slash-separated path of a file inside a token folder
func (l *Layout) RelFilePath(chain, token, name string) string {
	return l.RelTokenPath(chain, token) + "/" + name
}

// Rel converts an absolute path under the root into a slash-separated relative
// path. Paths outside the root are returned unchanged.
func (l *Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.RootPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
