package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/franz/tnt-search/internal/query"
	"github.com/franz/tnt-search/internal/util"
)

// Search returns every release whose title or description matches q,
// ordered by title in byte order. No match is an empty slice, not an error.
func (s *Store) Search(ctx context.Context, q query.Query) ([]Release, error) {
	where, args := filter(q)
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s, rowid",
		releaseColumns, releasesTable, where, query.OrderBy)

	util.DebugLog("search: %s %v", where, args)

	releases := []Release{}
	if err := s.db.SelectContext(ctx, &releases, stmt, args...); err != nil {
		return nil, fmt.Errorf("%w: search failed: %w", util.ErrStoreUnreadable, err)
	}
	return releases, nil
}

// filter maps a query onto a WHERE clause and its bound arguments.
// Only column names from query.Fields are written into the clause; the
// keyword is always bound.
func filter(q query.Query) (string, []any) {
	op := "LIKE"
	escape := ` ESCAPE '` + query.LikeEscape + `'`
	if q.Mode == query.Glob {
		op = "GLOB"
		escape = ""
	}

	pattern := q.Pattern()
	clauses := make([]string, 0, len(query.Fields))
	args := make([]any, 0, len(query.Fields))

	for _, field := range query.Fields {
		column, param := string(field), "?"
		if q.FoldCase() {
			column = lowerFunc + "(" + column + ")"
			param = lowerFunc + "(?)"
		}
		clauses = append(clauses, fmt.Sprintf("%s %s %s%s", column, op, param, escape))
		args = append(args, pattern)
	}

	return strings.Join(clauses, " OR "), args
}
