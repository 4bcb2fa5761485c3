package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
	"github.com/kamal-hamza/tokenlint/pkg/metadata"
)

// ListService handles listing and searching token folders
type ListService struct {
	tree  ports.AssetTree
	rules domain.Rules
}

// NewListService creates a new list service
func NewListService(tree ports.AssetTree, rules domain.Rules) *ListService {
	return &ListService{
		tree:  tree,
		rules: rules,
	}
}

// ListRequest represents a request to list token folders
type ListRequest struct {
	Chain string // Only this chain (optional, case-insensitive)
	Query string // Substring on chain, address, name or symbol (optional)
}

// ListResponse represents the response from listing token folders
type ListResponse struct {
	Tokens []domain.TokenEntry
	Total  int
}

// Execute lists token folders sorted by chain, symbol, then address
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	entries, err := s.collect(ctx, req.Chain)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	if q := strings.TrimSpace(req.Query); q != "" {
		var filtered []domain.TokenEntry
		for _, e := range entries {
			if e.Matches(q) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	sortEntries(entries)

	return &ListResponse{
		Tokens: entries,
		Total:  len(entries),
	}, nil
}

// Get returns the listing view of a single folder
func (s *ListService) Get(ctx context.Context, key domain.FolderKey) (domain.TokenEntry, error) {
	kind, err := s.tree.Kind(ctx, key)
	if err != nil {
		return domain.TokenEntry{}, err
	}
	if kind != domain.EntryDir {
		return domain.TokenEntry{}, fmt.Errorf("token folder not found: %s", key)
	}
	return s.entry(ctx, key), nil
}

func (s *ListService) collect(ctx context.Context, chainFilter string) ([]domain.TokenEntry, error) {
	chains, err := s.tree.Chains(ctx)
	if err != nil {
		return nil, err
	}

	var entries []domain.TokenEntry
	for _, chain := range chains {
		if chainFilter != "" && !strings.EqualFold(chain, chainFilter) {
			continue
		}

		assets, err := s.tree.AssetEntries(ctx, chain)
		if err != nil {
			return nil, err
		}
		for name, kind := range assets {
			if kind != domain.EntryDir {
				continue
			}
			entries = append(entries, s.entry(ctx, domain.FolderKey{Chain: chain, Token: name}))
		}
	}
	return entries, nil
}

// entry never fails: unreadable metadata is recorded on the entry instead
func (s *ListService) entry(ctx context.Context, key domain.FolderKey) domain.TokenEntry {
	var entry domain.TokenEntry

	data, err := s.tree.ReadFile(ctx, key, s.rules.InfoFilename)
	switch {
	case err != nil:
		entry = domain.NewTokenEntry(key, nil)
	default:
		record, decodeErr := metadata.Decode(data)
		entry = domain.NewTokenEntry(key, record)
		if decodeErr != nil {
			var parseErr *metadata.ParseError
			if errors.As(decodeErr, &parseErr) {
				entry.InfoErr = parseErr.Err.Error()
			} else {
				entry.InfoErr = decodeErr.Error()
			}
			entry.HasInfo = true
		}
	}

	entry.HasLogo = s.tree.Exists(ctx, key, s.rules.LogoFilename)
	return entry
}

func sortEntries(entries []domain.TokenEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Key.Chain != b.Key.Chain {
			return a.Key.Chain < b.Key.Chain
		}
		if sa, sb := strings.ToUpper(a.Symbol), strings.ToUpper(b.Symbol); sa != sb {
			return sa < sb
		}
		return a.Key.Token < b.Key.Token
	})
}

// SearchRequest represents a search query
type SearchRequest struct {
	Chain string
	Query string
}

// SearchResponse represents search results
type SearchResponse struct {
	Tokens []domain.TokenEntry
	Total  int
}

// Search performs fuzzy search on token folders, best match first
func (s *ListService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	entries, err := s.collect(ctx, req.Chain)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	sortEntries(entries)

	// If no query, return all
	if strings.TrimSpace(req.Query) == "" {
		return &SearchResponse{
			Tokens: entries,
			Total:  len(entries),
		}, nil
	}

	matches := fuzzySearch(entries, req.Query)

	return &SearchResponse{
		Tokens: matches,
		Total:  len(matches),
	}, nil
}

// fuzzyMatch represents a scored match
type fuzzyMatch struct {
	entry domain.TokenEntry
	score int
}

// fuzzySearch matches symbols, names and addresses with scoring
func fuzzySearch(entries []domain.TokenEntry, query string) []domain.TokenEntry {
	query = strings.TrimSpace(query)

	var matches []fuzzyMatch

	for _, entry := range entries {
		// Symbol is what people type most often
		if score := fuzzyMatchScore(entry.Symbol, query); score > 0 {
			matches = append(matches, fuzzyMatch{entry: entry, score: score + 1000})
			continue
		}

		if score := fuzzyMatchScore(entry.Name, query); score > 0 {
			matches = append(matches, fuzzyMatch{entry: entry, score: score + 500})
			continue
		}

		// Addresses only match as a prefix or substring, never scattered
		if strings.Contains(strings.ToLower(entry.Key.Token), strings.ToLower(query)) {
			matches = append(matches, fuzzyMatch{entry: entry, score: 200})
		}
	}

	// Sort by score (highest first); ties keep listing order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.TokenEntry, len(matches))
	for i, m := range matches {
		result[i] = m.entry
	}

	return result
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text
// Returns 0 if no match, higher scores for better matches
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	// Exact match gets highest score
	if text == query {
		return 10000
	}

	// Case-insensitive exact match
	if textLower == queryLower {
		return 9000
	}

	// Substring match (contains)
	if strings.Contains(textLower, queryLower) {
		score := 5000
		// Bonus for match at start
		if strings.HasPrefix(textLower, queryLower) {
			score += 2000
		}
		return score
	}

	// Fuzzy character-by-character matching
	score := 0
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	queryIdx := 0
	consecutiveMatches := 0
	lastMatchIdx := -1

	for textIdx := 0; textIdx < len(textRunes) && queryIdx < len(queryRunes); textIdx++ {
		if textRunes[textIdx] == queryRunes[queryIdx] {
			// Base score for each matched character
			score += 100

			// Bonus for consecutive matches
			if textIdx == lastMatchIdx+1 {
				consecutiveMatches++
				score += consecutiveMatches * 50 // Increasing bonus for consecutive chars
			} else {
				consecutiveMatches = 0
			}

			// Bonus for matching at word boundary
			if textIdx == 0 || unicode.IsSpace(textRunes[textIdx-1]) || textRunes[textIdx-1] == '-' || textRunes[textIdx-1] == '_' {
				score += 200
			}

			// Bonus for matching at start of string
			if textIdx == 0 {
				score += 300
			}

			lastMatchIdx = textIdx
			queryIdx++
		}
	}

	// All query characters must be matched
	if queryIdx != len(queryRunes) {
		return 0
	}

	// Penalty for gaps between matches
	if lastMatchIdx >= 0 {
		matchSpan := lastMatchIdx + 1
		penalty := (matchSpan - len(queryRunes)) * 10
		score -= penalty
	}

	return score
}
