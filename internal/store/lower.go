package store

import (
	"database/sql/driver"
	"strings"

	"golang.org/x/text/unicode/norm"
	"modernc.org/sqlite"
)

// lowerFunc is the SQL name of the Unicode-aware replacement for lower(),
// which only maps ASCII.
const lowerFunc = "ulower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(lowerFunc, 1, lowerSQL)
}

// lowerSQL implements ulower(x). Non-text values pass through unchanged
// so NULL stays NULL.
func lowerSQL(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return Lower(v), nil
	case []byte:
		return Lower(string(v)), nil
	default:
		return v, nil
	}
}

// Lower maps every rune to its simple lower-case form and normalizes the
// result to NFC. The mapping is one rune to one rune, so a GLOB '?' or
// '[...]' covers the same characters with or without case folding: "ß"
// stays "ß" and "ẞ" becomes "ß".
func Lower(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}
