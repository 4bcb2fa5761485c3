package ports

import (
	"context"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
)

// AssetTree defines the port for reading and writing the registry tree
type AssetTree interface {
	// Kind reports what sits at <root>/<chain>/<assets>/<token>
	Kind(ctx context.Context, key domain.FolderKey) (domain.EntryKind, error)

	// Entries lists the names directly inside a token folder
	Entries(ctx context.Context, key domain.FolderKey) ([]string, error)

	// Exists checks if a file inside a token folder exists
	Exists(ctx context.Context, key domain.FolderKey, name string) bool

	// Size returns the size in bytes of a file inside a token folder
	Size(ctx context.Context, key domain.FolderKey, name string) (int64, error)

	// ReadFile returns the content of a file inside a token folder
	ReadFile(ctx context.Context, key domain.FolderKey, name string) ([]byte, error)

	// Chains returns every chain directory name, sorted
	Chains(ctx context.Context) ([]string, error)

	// AssetEntries lists the names directly inside a chain's assets directory
	// along with their kind. A chain without an assets directory yields nil.
	AssetEntries(ctx context.Context, chain string) (map[string]domain.EntryKind, error)

	// CreateFolder creates a token folder and its parents
	CreateFolder(ctx context.Context, key domain.FolderKey) error

	// WriteFile writes a file inside a token folder
	WriteFile(ctx context.Context, key domain.FolderKey, name string, data []byte) error
}

// FolderChecker defines the port for validating a single token folder
type FolderChecker interface {
	// Check runs the ordered rule chain; a rule failure is carried on the
	// result, an error means the folder could not be inspected at all
	Check(ctx context.Context, key domain.FolderKey) (domain.FolderResult, error)
}

// Reporter defines the port for emitting validation progress
type Reporter interface {
	// Checking is called before a folder is validated
	Checking(key domain.FolderKey)

	// Passed is called once per folder that passes every check
	Passed(key domain.FolderKey)

	// Failed is called exactly once, for the violation that stops the batch
	Failed(v *domain.Violation)

	// Nothing is called when the change-set touches no token folders
	Nothing()
}

// ScaffoldSettings supplies the per-chain values written into a new info.json
type ScaffoldSettings interface {
	// ExplorerURL returns the explorer link for address on chain
	ExplorerURL(chain, address string) string

	// TokenType returns the token standard used on chain
	TokenType(chain string) string
}
