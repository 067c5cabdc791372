package format

import "testing"

func TestMagnetLink(t *testing.T) {
	testCases := []struct {
		hash     string
		expected string
	}{
		{"ABCD1234", "magnet:?xt=urn:btih:ABCD1234"},
		{"0123456789abcdef0123456789abcdef01234567", "magnet:?xt=urn:btih:0123456789abcdef0123456789abcdef01234567"},
		// no percent-encoding is applied
		{"a b&c", "magnet:?xt=urn:btih:a b&c"},
		{"", "magnet:?xt=urn:btih:"},
	}

	for _, tc := range testCases {
		if got := MagnetLink(tc.hash); got != tc.expected {
			t.Errorf("MagnetLink(%q) = %q, expected %q", tc.hash, got, tc.expected)
		}
	}
}
