package address

import (
	"strings"
	"testing"
)

// Vectors from EIP-55
var eip55Vectors = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	"0x52908400098527886E0F7030069857D2E4169EE7",
	"0x8617E340B3D01FA5F11F306F4090FD50E238070D",
	"0xde709f2102306220921060314715629080e2fb77",
	"0x27b1fdb04752bbc536007a920d24acb045561c26",
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"checksummed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"lowercase", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"upper prefix", "0X5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"no prefix", "5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"too short", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA", false},
		{"too long", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed00", false},
		{"non hex", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeZ", false},
		{"empty", "", false},
		{"file name", "logo.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.input); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestChecksum_EIP55Vectors(t *testing.T) {
	for _, want := range eip55Vectors {
		t.Run(want, func(t *testing.T) {
			got, err := Checksum(strings.ToLower(want))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("Checksum(lower) = %q, want %q", got, want)
			}

			got, err = Checksum("0x" + strings.ToUpper(want[2:]))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("Checksum(upper) = %q, want %q", got, want)
			}
		})
	}
}

func TestChecksum_Idempotent(t *testing.T) {
	inputs := append([]string{
		"0x0000000000000000000000000000000000000000",
		"0xffffffffffffffffffffffffffffffffffffffff",
		"0xdac17f958d2ee523a2206206994597c13d831ec7",
	}, eip55Vectors...)

	for _, in := range inputs {
		once, err := Checksum(in)
		if err != nil {
			t.Fatalf("Checksum(%q) failed: %v", in, err)
		}
		twice, err := Checksum(once)
		if err != nil {
			t.Fatalf("Checksum(%q) failed: %v", once, err)
		}
		if once != twice {
			t.Errorf("checksum not idempotent: %q -> %q", once, twice)
		}
		if !IsChecksummed(once) {
			t.Errorf("IsChecksummed(%q) = false", once)
		}
	}
}

func TestChecksum_Invalid(t *testing.T) {
	if _, err := Checksum("not-an-address"); err == nil {
		t.Error("expected error for invalid address")
	}
}

func TestIsChecksummed_WrongCasing(t *testing.T) {
	if IsChecksummed("0xdac17f958d2ee523a2206206994597c13d831ec7") {
		t.Error("lowercase address should not count as checksummed")
	}
	if !IsChecksummed("0xdAC17F958D2ee523a2206206994597C13D831ec7") {
		t.Error("canonical USDT address should count as checksummed")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercase", "0xdac17f958d2ee523a2206206994597c13d831ec7", "0xdAC17F958D2ee523a2206206994597C13D831ec7", false},
		{"missing prefix", "dac17f958d2ee523a2206206994597c13d831ec7", "0xdAC17F958D2ee523a2206206994597C13D831ec7", false},
		{"surrounding space", "  0xDAC17F958D2EE523A2206206994597C13D831EC7 ", "0xdAC17F958D2ee523a2206206994597C13D831ec7", false},
		{"empty", "   ", "", true},
		{"garbage", "0x1234", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
