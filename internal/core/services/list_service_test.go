package services

import (
	"context"
	"testing"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
)

func seedRegistry(t *testing.T) *testRegistry {
	t.Helper()
	reg := newTestRegistry(t)
	reg.validToken("ethereum", usdt, "USDT")
	reg.validToken("ethereum", weth, "WETH")
	reg.validToken("memecore", other, "MEME")
	reg.write("ethereum", other, "info.json", []byte("{broken"))
	reg.strayFile("memecore", "notes.txt")
	return reg
}

func TestListService_Execute(t *testing.T) {
	tests := []struct {
		name     string
		request  ListRequest
		expected []domain.FolderKey
	}{
		{
			name:    "everything sorted by chain then symbol",
			request: ListRequest{},
			expected: []domain.FolderKey{
				key("ethereum", other), // no symbol sorts first
				key("ethereum", usdt),
				key("ethereum", weth),
				key("memecore", other),
			},
		},
		{
			name:     "chain filter is case-insensitive",
			request:  ListRequest{Chain: "MemeCore"},
			expected: []domain.FolderKey{key("memecore", other)},
		},
		{
			name:     "query on symbol",
			request:  ListRequest{Query: "weth"},
			expected: []domain.FolderKey{key("ethereum", weth)},
		},
		{
			name:     "query on address",
			request:  ListRequest{Query: "dac17f"},
			expected: []domain.FolderKey{key("ethereum", usdt)},
		},
		{
			name:    "unknown chain",
			request: ListRequest{Chain: "solana"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := seedRegistry(t)
			service := NewListService(reg.tree, domain.DefaultRules())

			resp, err := service.Execute(context.Background(), tt.request)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Total != len(tt.expected) {
				t.Fatalf("Total = %d, want %d (%v)", resp.Total, len(tt.expected), resp.Tokens)
			}
			for i, want := range tt.expected {
				if resp.Tokens[i].Key != want {
					t.Errorf("Tokens[%d] = %v, want %v", i, resp.Tokens[i].Key, want)
				}
			}
		})
	}
}

func TestListService_EntryDetails(t *testing.T) {
	reg := seedRegistry(t)
	service := NewListService(reg.tree, domain.DefaultRules())

	entry, err := service.Get(context.Background(), key("ethereum", usdt))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Symbol != "USDT" || entry.Name != "USDT Token" || entry.Type != "ERC20" || entry.Status != "active" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if !entry.HasLogo || !entry.HasInfo || entry.InfoErr != "" {
		t.Errorf("expected logo and readable info: %+v", entry)
	}

	broken, err := service.Get(context.Background(), key("ethereum", other))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !broken.HasInfo || broken.InfoErr == "" {
		t.Errorf("expected decode error on entry: %+v", broken)
	}
	if broken.HasLogo {
		t.Error("expected no logo")
	}

	if _, err := service.Get(context.Background(), key("memecore", "notes.txt")); err == nil {
		t.Error("expected error for a file that is not a token folder")
	}
}

func TestListService_Search(t *testing.T) {
	reg := seedRegistry(t)
	service := NewListService(reg.tree, domain.DefaultRules())

	tests := []struct {
		name      string
		request   SearchRequest
		wantFirst domain.FolderKey
		wantTotal int
	}{
		{"empty query returns all", SearchRequest{}, key("ethereum", other), 4},
		{"symbol beats address", SearchRequest{Query: "usdt"}, key("ethereum", usdt), 1},
		{"abbreviation", SearchRequest{Query: "wth"}, key("ethereum", weth), 1},
		{"name match", SearchRequest{Query: "meme token"}, key("memecore", other), 1},
		{"address substring", SearchRequest{Query: "c02aaa"}, key("ethereum", weth), 1},
		{"chain scoped", SearchRequest{Chain: "memecore", Query: "usdt"}, domain.FolderKey{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Search(context.Background(), tt.request)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Total != tt.wantTotal {
				t.Fatalf("Total = %d, want %d (%v)", resp.Total, tt.wantTotal, resp.Tokens)
			}
			if tt.wantTotal > 0 && resp.Tokens[0].Key != tt.wantFirst {
				t.Errorf("first = %v, want %v", resp.Tokens[0].Key, tt.wantFirst)
			}
		})
	}
}

func TestFuzzyMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		query    string
		minScore int // Minimum expected score (0 means should not match)
	}{
		{"exact match", "Tether USD", "Tether USD", 9000},
		{"case insensitive exact match", "Tether USD", "tether usd", 9000},
		{"substring match", "Wrapped Ether", "Ether", 5000},
		{"prefix match", "Wrapped Ether", "Wrap", 7000},
		{"fuzzy match - consecutive chars", "Wrapped Ether", "wre", 100},
		{"fuzzy match - word boundaries", "Wrapped Ether Token", "wet", 100},
		{"no match - missing characters", "Tether USD", "xyz", 0},
		{"no match - wrong order", "USDT", "tu", 0},
		{"empty query", "Tether USD", "", 0},
		{"empty text", "", "usdt", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := fuzzyMatchScore(tt.text, tt.query)
			if tt.minScore == 0 {
				if score != 0 {
					t.Errorf("Expected no match (score=0), got score=%d", score)
				}
			} else {
				if score < tt.minScore {
					t.Errorf("Expected score >= %d, got %d", tt.minScore, score)
				}
			}
		})
	}
}
