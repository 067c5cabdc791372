// Package query builds the search filter for release titles and descriptions.
//
// A Query is a tagged value: the match Mode and the case flag decide which
// comparison the store applies, and Pattern derives the single bound
// parameter. Nothing here produces SQL; the store maps a Query onto a
// parameterized filter so user input is never concatenated into a statement.
package query

import (
	"fmt"
	"strings"

	"github.com/franz/tnt-search/internal/util"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how the keyword is compared with each field
type Mode int

const (
	// Substring matches when the keyword appears anywhere in the field
	Substring Mode = iota
	// Glob matches the whole field against a shell-style pattern (*, ?, [...])
	Glob
)

// LikeEscape is the escape character used for substring patterns
const LikeEscape = `\`

// String returns the flag spelling of the mode
func (m Mode) String() string {
	switch m {
	case Substring:
		return "substring"
	case Glob:
		return "glob"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a flag value into a Mode. An empty value means Substring.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring", "like":
		return Substring, nil
	case "glob":
		return Glob, nil
	default:
		return Substring, fmt.Errorf("%w: unknown match mode %q (want substring or glob)", util.ErrInvalidConfig, s)
	}
}

// Field is a searchable release column
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// Fields lists the columns every query is applied to, OR-ed together
var Fields = []Field{FieldTitle, FieldDescription}

// OrderBy is the column results are sorted on, ascending, byte order
const OrderBy = FieldTitle

// Query is one search request
type Query struct {
	Keyword       string
	Mode          Mode
	CaseSensitive bool
}

// Build creates a Query. The keyword is NFC-normalized so it compares
// equal to imported text; an empty keyword is legal.
func Build(keyword string, mode Mode, caseSensitive bool) Query {
	return Query{
		Keyword:       norm.NFC.String(keyword),
		Mode:          mode,
		CaseSensitive: caseSensitive,
	}
}

// FoldCase reports whether both the field and the pattern must be
// case-folded before comparison. Both sides are always folded together.
func (q Query) FoldCase() bool {
	return !q.CaseSensitive
}

// Pattern returns the value bound to the comparison operator.
//
// Substring mode escapes LIKE wildcards in the keyword and wraps it in %,
// so "%" and "_" typed by the user match literally. Glob mode binds the
// keyword unchanged.
func (q Query) Pattern() string {
	if q.Mode == Glob {
		return q.Keyword
	}
	return "%" + EscapeLike(q.Keyword) + "%"
}

var likeEscaper = strings.NewReplacer(
	LikeEscape, LikeEscape+LikeEscape,
	"%", LikeEscape+"%",
	"_", LikeEscape+"_",
)

// EscapeLike escapes the LIKE metacharacters in s using LikeEscape
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
