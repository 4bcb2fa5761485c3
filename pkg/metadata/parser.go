package metadata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultRequiredFields is the canonical info.json key set
var DefaultRequiredFields = []string{
	"name", "type", "symbol", "decimals", "description",
	"website", "explorer", "id", "status",
}

// Record is a decoded info.json object. Values keep their JSON types.
type Record struct {
	fields map[string]any
}

// NewRecord wraps an already decoded object
func NewRecord(fields map[string]any) *Record {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Record{fields: fields}
}

// Has reports whether key is present, even with a null or empty value
func (r *Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Value returns the raw decoded value for key
func (r *Record) Value(key string) (any, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// String returns the value for key as text. Missing and null values yield "";
// non-string values are rendered with fmt.
func (r *Record) String(key string) string {
	v, ok := r.fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Keys returns the record's keys in sorted order
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Missing returns the entries of required absent from the record, in the
// order they were given.
func (r *Record) Missing(required []string) []string {
	var missing []string
	for _, field := range required {
		if !r.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// ParseError is returned when content is not a JSON object
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseResult contains the decoded record and any absent required fields
type ParseResult struct {
	Record  *Record
	Missing []string
}

// Parser decodes info.json content and reports required-field presence
type Parser struct {
	required []string
}

// NewParser creates a parser that checks for the given required fields.
// A nil list falls back to DefaultRequiredFields.
func NewParser(required []string) *Parser {
	if required == nil {
		required = DefaultRequiredFields
	}
	return &Parser{required: required}
}

// Parse decodes content. Only malformed JSON is an error; missing fields are
// reported on the result so the caller decides how to treat them.
func (p *Parser) Parse(content []byte) (*ParseResult, error) {
	record, err := Decode(content)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		Record:  record,
		Missing: record.Missing(p.required),
	}, nil
}

// Decode parses content as a single JSON object
func Decode(content []byte) (*Record, error) {
	var fields map[string]any
	if err := json.Unmarshal(content, &fields); err != nil {
		return nil, &ParseError{Err: err}
	}
	if fields == nil {
		return nil, &ParseError{Err: fmt.Errorf("top-level value must be an object")}
	}
	return NewRecord(fields), nil
}

// FormatMissing renders a missing-field list the way it is shown to users
func FormatMissing(missing []string) string {
	return strings.Join(missing, ", ")
}
