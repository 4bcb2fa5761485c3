package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
	"github.com/kamal-hamza/tokenlint/pkg/address"
	"github.com/kamal-hamza/tokenlint/pkg/metadata"
)

// CreateTokenService scaffolds a new token folder
type CreateTokenService struct {
	tree     ports.AssetTree
	settings ports.ScaffoldSettings
	rules    domain.Rules
}

// NewCreateTokenService creates a new token scaffolding service
func NewCreateTokenService(tree ports.AssetTree, settings ports.ScaffoldSettings, rules domain.Rules) *CreateTokenService {
	return &CreateTokenService{
		tree:     tree,
		settings: settings,
		rules:    rules,
	}
}

// CreateTokenRequest represents a request to scaffold a token folder
type CreateTokenRequest struct {
	Chain   string
	Address string
	Force   bool // overwrite an existing info.json
}

// CreateTokenResponse represents the scaffolded folder
type CreateTokenResponse struct {
	Key      domain.FolderKey
	InfoPath string // relative to the registry root
	Content  []byte
}

// Execute creates the checksummed folder and writes the info.json template.
// The logo is left for the submitter to add.
func (s *CreateTokenService) Execute(ctx context.Context, req CreateTokenRequest) (*CreateTokenResponse, error) {
	chain := strings.TrimSpace(req.Chain)
	if chain == "" || strings.ContainsAny(chain, `/\`) {
		return nil, fmt.Errorf("invalid chain name: %q", req.Chain)
	}

	raw := strings.TrimSpace(req.Address)
	if !address.IsValid(raw) {
		return nil, fmt.Errorf("invalid address: %q is not 0x followed by 40 hex characters", req.Address)
	}
	checksummed, err := address.Checksum(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	key := domain.FolderKey{Chain: chain, Token: checksummed}

	kind, err := s.tree.Kind(ctx, key)
	if err != nil {
		return nil, err
	}
	if kind == domain.EntryFile {
		return nil, fmt.Errorf("a file named %s already sits in the assets directory", checksummed)
	}

	if s.tree.Exists(ctx, key, s.rules.InfoFilename) && !req.Force {
		return nil, fmt.Errorf("%s already exists for %s (use --force to overwrite)", s.rules.InfoFilename, key)
	}

	tmpl := metadata.NewTemplate(checksummed, s.settings.TokenType(chain), s.settings.ExplorerURL(chain, checksummed))
	content, err := metadata.Format(tmpl)
	if err != nil {
		return nil, err
	}

	if err := s.tree.CreateFolder(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to create token folder: %w", err)
	}
	if err := s.tree.WriteFile(ctx, key, s.rules.InfoFilename, content); err != nil {
		return nil, fmt.Errorf("failed to write template: %w", err)
	}

	return &CreateTokenResponse{
		Key:      key,
		InfoPath: s.rules.RelPath(key, s.rules.InfoFilename),
		Content:  content,
	}, nil
}
