package query

import "strings"

// UpdateBuilder renders a partial UPDATE touching only the columns that were set.
type UpdateBuilder struct {
	table string
	sets  []string
	args  []any
}

func NewUpdate(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set assigns value to column.
func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, column+" = ?")
	u.args = append(u.args, value)
	return u
}

// SetRaw assigns a SQL expression that takes no values, such as NOW().
func (u *UpdateBuilder) SetRaw(column, expr string) *UpdateBuilder {
	u.sets = append(u.sets, column+" = "+expr)
	return u
}

// SetOptional assigns *value to column when value is non-nil.
func SetOptional[T any](u *UpdateBuilder, column string, value *T) *UpdateBuilder {
	if value == nil {
		return u
	}
	return u.Set(column, *value)
}

// Empty reports whether no value-bearing column has been set.
func (u *UpdateBuilder) Empty() bool {
	return len(u.args) == 0
}

// ByID renders the statement for a single row and returns the updated row.
func (u *UpdateBuilder) ByID(id string) (string, []any) {
	sets := append(append([]string(nil), u.sets...), "updated_at = NOW()")
	sql := "UPDATE " + u.table + " SET " + strings.Join(sets, ", ") + " WHERE id = ? RETURNING *"
	return render(sql), append(append([]any(nil), u.args...), id)
}
