package domain

import "fmt"

// ViolationKind names one reportable rule failure
type ViolationKind string

const (
	KindInvalidAddress     ViolationKind = "invalid-address-syntax"
	KindChecksumMismatch   ViolationKind = "checksum-case-mismatch"
	KindMissingFile        ViolationKind = "missing-required-file"
	KindFilenameCase       ViolationKind = "filename-case-violation"
	KindImageFormat        ViolationKind = "image-format-invalid"
	KindImageDimension     ViolationKind = "image-dimension-exceeded"
	KindImageNotSquare     ViolationKind = "image-not-square"
	KindImageTooLarge      ViolationKind = "image-file-too-large"
	KindImageDecode        ViolationKind = "image-decode-error"
	KindJSONParse          ViolationKind = "json-parse-error"
	KindMissingFields      ViolationKind = "missing-required-fields"
	KindIDMismatch         ViolationKind = "id-mismatch"
	KindScamSymbolConflict ViolationKind = "scam-symbol-conflict"
	KindStrayFile          ViolationKind = "strict-mode-stray-file"
)

// Violation is the first rule a folder (or the change-set) failed
type Violation struct {
	Kind    ViolationKind
	Key     FolderKey
	Path    string // slash-separated path relative to the registry root
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Message)
}

// NewViolation builds a Violation with a formatted message
func NewViolation(kind ViolationKind, key FolderKey, path string, format string, args ...any) *Violation {
	return &Violation{
		Kind:    kind,
		Key:     key,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// FolderResult is the outcome of checking one folder
type FolderResult struct {
	Key       FolderKey
	Violation *Violation
}

// Passed reports whether every check succeeded
func (r FolderResult) Passed() bool {
	return r.Violation == nil
}
