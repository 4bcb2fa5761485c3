package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
)

// GitHub prints plain lines and workflow commands that GitHub Actions turns
// into annotations on the pull request diff.
type GitHub struct {
	w io.Writer
}

// NewGitHub creates a reporter writing to w
func NewGitHub(w io.Writer) *GitHub {
	return &GitHub{w: w}
}

var _ ports.Reporter = (*GitHub)(nil)

func (r *GitHub) Checking(key domain.FolderKey) {
	fmt.Fprintf(r.w, "Checking [%s] token: %s...\n", key.Chain, key.Token)
}

func (r *GitHub) Passed(key domain.FolderKey) {
	fmt.Fprintf(r.w, "[%s] Token %s passed!\n", key.Chain, key.Token)
}

func (r *GitHub) Failed(v *domain.Violation) {
	fmt.Fprintf(r.w, "::error file=%s,title=%s::%s\n",
		escapeProperty(v.Path), escapeProperty(string(v.Kind)), escapeData(v.Message))
}

func (r *GitHub) Nothing() {
	fmt.Fprintln(r.w, "::notice::No asset files modified.")
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
