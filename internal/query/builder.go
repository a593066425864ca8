// Package query composes parameterized list queries for the entity tables.
//
// Predicates are written with "?" markers and the builder renders them as
// positional "$n" parameters in the order they were added, so callers never
// track placeholder indexes by hand. Values are always bound, never
// interpolated into the SQL text.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// StatusAll disables the status filter.
const StatusAll = "all"

const listOrder = "ORDER BY created_at DESC, seq ASC"

// Builder accumulates (predicate, values) pairs for a single table.
type Builder struct {
	predicates []string
	args       []any
	limit      int
	offset     int
	paged      bool
	err        error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Where adds a predicate. Each "?" in predicate consumes one value from args.
func (b *Builder) Where(predicate string, args ...any) *Builder {
	if n := strings.Count(predicate, "?"); n != len(args) {
		if b.err == nil {
			b.err = fmt.Errorf("query: predicate %q has %d markers but %d values", predicate, n, len(args))
		}
		return b
	}
	b.predicates = append(b.predicates, predicate)
	b.args = append(b.args, args...)
	return b
}

// Equals adds an exact-match filter unless value is empty or "all".
func (b *Builder) Equals(column, value string) *Builder {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, StatusAll) {
		return b
	}
	return b.Where(column+" = ?", value)
}

// AnyILike adds a case-insensitive substring match OR'd across columns.
// An empty term adds nothing.
func (b *Builder) AnyILike(columns []string, term string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return b
	}
	pattern := "%" + escapeLike(term) + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return b.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// Page sets LIMIT and OFFSET for Select. Count ignores it.
func (b *Builder) Page(limit, offset int) *Builder {
	b.limit, b.offset, b.paged = limit, offset, true
	return b
}

// Select renders the list query for table, ordered newest first with ties
// broken by insertion order.
func (b *Builder) Select(table string, columns ...string) (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	cols := "*"
	if len(columns) > 0 {
		cols = strings.Join(columns, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	sb.WriteString(table)

	args := append([]any(nil), b.args...)
	sb.WriteString(b.whereClause())
	sb.WriteString(" ")
	sb.WriteString(listOrder)
	if b.paged {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, b.limit, b.offset)
	}
	return render(sb.String()), args, nil
}

// Count renders a COUNT(*) over the same predicates, without pagination.
func (b *Builder) Count(table string) (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	sql := "SELECT COUNT(*) FROM " + table + b.whereClause()
	return render(sql), append([]any(nil), b.args...), nil
}

func (b *Builder) whereClause() string {
	if len(b.predicates) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.predicates, " AND ")
}

// render replaces every "?" with $1, $2, ... in order of appearance.
func render(sql string) string {
	var sb strings.Builder
	sb.Grow(len(sql) + 8)
	n := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(sql[i])
	}
	return sb.String()
}

// escapeLike makes LIKE metacharacters in user input match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
