package models

// Record is a stored row keyed by column name, as returned by the store.
// Column naming is not trusted; the transform package resolves aliases.
type Record map[string]any

// ID returns the row identifier as text, or "" when absent.
func (r Record) ID() string {
	if v, ok := r["id"].(string); ok {
		return v
	}
	return ""
}

// UserID returns the owning user reference, or "" when the row has none.
func (r Record) UserID() string {
	for _, k := range []string{"user_id", "userId", "userid"} {
		if v, ok := r[k].(string); ok && v != "" {
			return v
		}
		if v, ok := r[k].(*string); ok && v != nil {
			return *v
		}
	}
	return ""
}
