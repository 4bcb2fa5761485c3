package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
)

// ClassifyService turns a change-set into the token folders it touches
type ClassifyService struct {
	tree   ports.AssetTree
	rules  domain.Rules
	logger *zap.SugaredLogger
}

func NewClassifyService(tree ports.AssetTree, rules domain.Rules, logger *zap.SugaredLogger) *ClassifyService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ClassifyService{
		tree:   tree,
		rules:  rules,
		logger: logger,
	}
}

type ClassifyRequest struct {
	Paths []string
}

type ClassifyResponse struct {
	// Keys are deduplicated and kept in first-seen order
	Keys []domain.FolderKey

	// Ignored counts paths outside the assets tree
	Ignored int

	// Violation is set when a loose file sits directly in an assets directory
	Violation *domain.Violation
}

// Execute classifies every path. It stops at the first stray file.
func (s *ClassifyService) Execute(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error) {
	resp := &ClassifyResponse{}
	seen := make(map[domain.FolderKey]bool)

	for _, path := range req.Paths {
		key, ok := s.parse(path)
		if !ok {
			s.logger.Debugw("ignoring path outside assets tree", "path", path)
			resp.Ignored++
			continue
		}

		if seen[key] {
			continue
		}

		kind, err := s.tree.Kind(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}

		switch kind {
		case domain.EntryFile:
			resp.Violation = domain.NewViolation(domain.KindStrayFile, key,
				s.rules.RelPath(key, ""),
				"Strict mode: file '%s' sits directly in %s/%s/%s/. Every token must live in its own folder (%s/%s/%s/<address>/).",
				key.Token, s.rules.RootLabel, key.Chain, s.rules.AssetsLabel,
				s.rules.RootLabel, key.Chain, s.rules.AssetsLabel)
			return resp, nil

		case domain.EntryMissing:
			// Deleted folders have nothing left to validate
			s.logger.Debugw("skipping missing folder", "key", key.String())
			continue
		}

		seen[key] = true
		resp.Keys = append(resp.Keys, key)
	}

	return resp, nil
}

// parse extracts the folder key from <root>/<chain>/<assets>/<token>[/...]
func (s *ClassifyService) parse(path string) (domain.FolderKey, bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 4 || parts[0] != s.rules.RootLabel || parts[2] != s.rules.AssetsLabel {
		return domain.FolderKey{}, false
	}
	if parts[1] == "" || parts[3] == "" {
		return domain.FolderKey{}, false
	}
	return domain.FolderKey{Chain: parts[1], Token: parts[3]}, true
}

// SplitChangedFiles splits a whitespace-separated change-set
func SplitChangedFiles(raw string) []string {
	return strings.Fields(raw)
}

// Everything returns the change-set path of every entry directly inside every
// chain's assets directory, so a full run can go through Execute like any
// other change-set.
func (s *ClassifyService) Everything(ctx context.Context) ([]string, error) {
	chains, err := s.tree.Chains(ctx)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, chain := range chains {
		entries, err := s.tree.AssetEntries(ctx, chain)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			paths = append(paths, s.rules.RelPath(domain.FolderKey{Chain: chain, Token: name}, ""))
		}
	}
	return paths, nil
}
