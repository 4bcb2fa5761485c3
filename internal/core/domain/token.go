package domain

import (
	"strings"

	"github.com/kamal-hamza/tokenlint/pkg/metadata"
)

// FolderKey identifies one token folder within one chain namespace
type FolderKey struct {
	Chain string // e.g., "memecore"
	Token string // e.g., "0xdAC17F958D2ee523a2206206994597C13D831ec7"
}

func (k FolderKey) String() string {
	return k.Chain + "/" + k.Token
}

// EntryKind classifies what sits at a path in the registry tree
type EntryKind int

const (
	EntryMissing EntryKind = iota
	EntryFile
	EntryDir
)

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDir:
		return "directory"
	default:
		return "missing"
	}
}

// TokenEntry is the lightweight listing view of a token folder
type TokenEntry struct {
	Key     FolderKey
	Name    string
	Symbol  string
	Type    string
	Status  string
	HasLogo bool
	HasInfo bool
	InfoErr string // set when info.json exists but could not be decoded
}

// NewTokenEntry fills listing fields from a decoded record
func NewTokenEntry(key FolderKey, record *metadata.Record) TokenEntry {
	entry := TokenEntry{Key: key}
	if record == nil {
		return entry
	}
	entry.HasInfo = true
	entry.Name = record.String("name")
	entry.Symbol = record.String("symbol")
	entry.Type = record.String("type")
	entry.Status = record.String("status")
	return entry
}

// Matches reports whether the entry matches a case-insensitive query on
// chain, address, name or symbol.
func (e TokenEntry) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Key.Chain), q) ||
		strings.Contains(strings.ToLower(e.Key.Token), q) ||
		strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Symbol), q)
}
