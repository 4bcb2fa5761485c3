package reporter

import (
	"fmt"
	"io"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
	"github.com/kamal-hamza/tokenlint/pkg/ui"
)

// Text prints styled status lines for a terminal
type Text struct {
	w     io.Writer
	quiet bool
}

// NewText creates a reporter writing to w
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Quiet hides the per-folder progress and pass lines; failures still print
func (r *Text) Quiet(quiet bool) *Text {
	r.quiet = quiet
	return r
}

var _ ports.Reporter = (*Text)(nil)

func (r *Text) Checking(key domain.FolderKey) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.w, ui.FormatMuted(fmt.Sprintf("%s Checking [%s] token: %s...", ui.IconSearch, key.Chain, key.Token)))
}

func (r *Text) Passed(key domain.FolderKey) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.w, ui.FormatSuccess(fmt.Sprintf("[%s] Token %s passed!", key.Chain, key.Token)))
}

func (r *Text) Failed(v *domain.Violation) {
	fmt.Fprintln(r.w, ui.FormatError(v.Message))
}

func (r *Text) Nothing() {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.w, ui.FormatInfo("No asset files modified."))
}
