package metadata

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Template is the info.json skeleton written for a new token folder.
// Field order matches what reviewers expect to read top to bottom.
type Template struct {
	Name        string `json:"name"`
	Website     string `json:"website"`
	Description string `json:"description"`
	Explorer    string `json:"explorer"`
	Type        string `json:"type"`
	Symbol      string `json:"symbol"`
	Decimals    int    `json:"decimals"`
	Status      string `json:"status"`
	ID          string `json:"id"`
}

// NewTemplate returns a template with placeholder values for the given
// checksummed address.
func NewTemplate(id, tokenType, explorer string) Template {
	return Template{
		Name:        "Token Name",
		Website:     "https://...",
		Description: "...",
		Explorer:    explorer,
		Type:        tokenType,
		Symbol:      "SYMBOL",
		Decimals:    18,
		Status:      "active",
		ID:          id,
	}
}

// Format renders the template as indented JSON with a trailing newline
func Format(t Template) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal info template: %w", err)
	}
	return append(data, '\n'), nil
}

// Pretty re-indents arbitrary JSON content for display
func Pretty(content []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, &ParseError{Err: err}
	}
	return json.MarshalIndent(v, "", "  ")
}
