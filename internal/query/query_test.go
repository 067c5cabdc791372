package query

import (
	"errors"
	"testing"

	"github.com/franz/tnt-search/internal/util"
)

func TestBuildPattern(t *testing.T) {
	testCases := []struct {
		name          string
		keyword       string
		mode          Mode
		caseSensitive bool
		pattern       string
		fold          bool
	}{
		{"substring wraps keyword", "foo", Substring, false, "%foo%", true},
		{"substring case sensitive", "Foo", Substring, true, "%Foo%", false},
		{"empty substring matches all", "", Substring, false, "%%", true},
		{"substring escapes percent", "100%", Substring, false, `%100\%%`, true},
		{"substring escapes underscore", "a_b", Substring, false, `%a\_b%`, true},
		{"substring escapes backslash", `a\b`, Substring, false, `%a\\b%`, true},
		{"glob is raw", "Report*", Glob, true, "Report*", false},
		{"glob keeps classes", "[Rr]eport?", Glob, false, "[Rr]eport?", true},
		{"empty glob", "", Glob, true, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := Build(tc.keyword, tc.mode, tc.caseSensitive)
			if got := q.Pattern(); got != tc.pattern {
				t.Errorf("Pattern() = %q, expected %q", got, tc.pattern)
			}
			if q.FoldCase() != tc.fold {
				t.Errorf("FoldCase() = %v, expected %v", q.FoldCase(), tc.fold)
			}
			if q.Mode != tc.mode {
				t.Errorf("Mode = %v, expected %v", q.Mode, tc.mode)
			}
		})
	}
}

func TestBuildNormalizesKeyword(t *testing.T) {
	// "e" followed by a combining acute accent composes to "é"
	q := Build("cafe\u0301", Substring, false)
	if q.Keyword != "caf\u00e9" {
		t.Errorf("expected NFC keyword, got %q", q.Keyword)
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", Substring, false},
		{"substring", Substring, false},
		{"LIKE", Substring, false},
		{"glob", Glob, false},
		{" Glob ", Glob, false},
		{"regex", Substring, true},
	}

	for _, tc := range testCases {
		got, err := ParseMode(tc.input)
		if tc.wantErr {
			if !errors.Is(err, util.ErrInvalidConfig) {
				t.Errorf("ParseMode(%q): expected ErrInvalidConfig, got %v", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, expected %v", tc.input, got, tc.want)
		}
	}
}

func TestModeString(t *testing.T) {
	if Substring.String() != "substring" || Glob.String() != "glob" {
		t.Errorf("unexpected mode names: %s, %s", Substring, Glob)
	}
}

func TestFieldsCoverTitleAndDescription(t *testing.T) {
	if len(Fields) != 2 || Fields[0] != FieldTitle || Fields[1] != FieldDescription {
		t.Errorf("unexpected searched fields: %v", Fields)
	}
	if OrderBy != FieldTitle {
		t.Errorf("expected ordering by title, got %s", OrderBy)
	}
}
