package reporter

import (
	"fmt"
	"io"

	"github.com/kamal-hamza/tokenlint/internal/core/ports"
)

const (
	FormatText   = "text"
	FormatGitHub = "github"
)

// New returns the reporter for an output format
func New(format string, w io.Writer) (ports.Reporter, error) {
	switch format {
	case "", FormatText:
		return NewText(w), nil
	case FormatGitHub:
		return NewGitHub(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (allowed: %s, %s)", format, FormatText, FormatGitHub)
	}
}
