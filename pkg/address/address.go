package address

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValid reports whether s is a 0x-prefixed, 40 hex character EVM address.
// Casing is not checked here, see Checksum.
func IsValid(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	return common.IsHexAddress(s)
}

// Checksum returns the EIP-55 mixed-case form of s
func Checksum(s string) (string, error) {
	if !IsValid(s) {
		return "", fmt.Errorf("%q is not a valid EVM address", s)
	}
	return common.HexToAddress(s).Hex(), nil
}

// IsChecksummed reports whether s is already in canonical EIP-55 casing
func IsChecksummed(s string) bool {
	canon, err := Checksum(s)
	if err != nil {
		return false
	}
	return canon == s
}

// Normalize accepts an address with or without the 0x prefix and in any
// casing, and returns its checksummed form.
func Normalize(raw string) (string, error) {
	a := strings.TrimSpace(raw)
	if a == "" {
		return "", fmt.Errorf("address is empty")
	}
	if !strings.HasPrefix(a, "0x") && !strings.HasPrefix(a, "0X") {
		a = "0x" + a
	}
	return Checksum(strings.ToLower(a))
}
