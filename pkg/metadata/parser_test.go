package metadata

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const completeInfo = `{
    "name": "Tether USD",
    "type": "ERC20",
    "symbol": "USDT",
    "decimals": 6,
    "description": "Stablecoin",
    "website": "https://tether.to",
    "explorer": "https://etherscan.io/token/0xdAC17F958D2ee523a2206206994597C13D831ec7",
    "id": "0xdAC17F958D2ee523a2206206994597C13D831ec7",
    "status": "active"
}`

func TestParse_Complete(t *testing.T) {
	res, err := NewParser(nil).Parse([]byte(completeInfo))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Missing) != 0 {
		t.Errorf("expected no missing fields, got %v", res.Missing)
	}
	if got := res.Record.String("symbol"); got != "USDT" {
		t.Errorf("symbol = %q, want USDT", got)
	}
	if got := res.Record.String("decimals"); got != "6" {
		t.Errorf("decimals = %q, want 6", got)
	}
}

func TestParse_MissingEachField(t *testing.T) {
	for _, field := range DefaultRequiredFields {
		t.Run(field, func(t *testing.T) {
			record, err := Decode([]byte(completeInfo))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			fields := make(map[string]any)
			for _, k := range record.Keys() {
				if k == field {
					continue
				}
				v, _ := record.Value(k)
				fields[k] = v
			}

			missing := NewRecord(fields).Missing(DefaultRequiredFields)
			if !reflect.DeepEqual(missing, []string{field}) {
				t.Errorf("Missing() = %v, want [%s]", missing, field)
			}
		})
	}
}

func TestParse_MissingKeepsRequiredOrder(t *testing.T) {
	res, err := NewParser(nil).Parse([]byte(`{"id": "0x1", "name": "x", "type": "ERC20"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"symbol", "decimals", "description", "website", "explorer", "status"}
	if !reflect.DeepEqual(res.Missing, want) {
		t.Errorf("Missing = %v, want %v", res.Missing, want)
	}
	if got := FormatMissing(res.Missing); got != strings.Join(want, ", ") {
		t.Errorf("FormatMissing = %q", got)
	}
}

func TestParse_NullValuesCountAsPresent(t *testing.T) {
	content := `{"name": null, "type": "", "symbol": "", "decimals": null, "description": "",
		"website": "", "explorer": "", "id": "", "status": null}`
	res, err := NewParser(nil).Parse([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Missing) != 0 {
		t.Errorf("expected null/empty values to count as present, missing %v", res.Missing)
	}
	if got := res.Record.String("name"); got != "" {
		t.Errorf("null value should render empty, got %q", got)
	}
}

func TestParse_CustomRequiredFields(t *testing.T) {
	res, err := NewParser([]string{"id", "links"}).Parse([]byte(`{"id": "0x1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(res.Missing, []string{"links"}) {
		t.Errorf("Missing = %v, want [links]", res.Missing)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"truncated", `{"name": "x"`},
		{"trailing comma", `{"name": "x",}`},
		{"array", `[1, 2, 3]`},
		{"string", `"hello"`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.content))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestRecord_Keys(t *testing.T) {
	record, err := Decode([]byte(`{"b": 1, "a": 2, "c": 3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := record.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", got)
	}
}
