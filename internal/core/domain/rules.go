package domain

import (
	"github.com/kamal-hamza/tokenlint/pkg/layout"
	"github.com/kamal-hamza/tokenlint/pkg/metadata"
)

// Rules holds the limits and names a token folder is checked against
type Rules struct {
	RootLabel      string
	AssetsLabel    string
	LogoFilename   string
	InfoFilename   string
	MaxDimension   int
	MaxFileSizeKB  int
	RequiredFields []string
}

// DefaultRules returns the registry's standard rule set
func DefaultRules() Rules {
	return Rules{
		RootLabel:      layout.DefaultRootLabel,
		AssetsLabel:    layout.DefaultAssetsLabel,
		LogoFilename:   layout.DefaultLogoFilename,
		InfoFilename:   layout.DefaultInfoFilename,
		MaxDimension:   512,
		MaxFileSizeKB:  1024,
		RequiredFields: append([]string{}, metadata.DefaultRequiredFields...),
	}
}

// RelPath returns the root-relative, slash-separated path of a token folder,
// or of the named file inside it, as it appears in a change-set.
func (r Rules) RelPath(key FolderKey, name string) string {
	l := layout.Layout{RootLabel: r.RootLabel, AssetsLabel: r.AssetsLabel}
	if name == "" {
		return l.RelTokenPath(key.Chain, key.Token)
	}
	return l.RelFilePath(key.Chain, key.Token, name)
}
