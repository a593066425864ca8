package query

import (
	"opsdash/internal/common"
)

const (
	DefaultLimit = 100
	MaxLimit     = 10000
)

// ListOptions are the recognized list filters.
type ListOptions struct {
	Limit  int
	Offset int
	Status string
	Search string
}

// Normalize applies defaults and rejects negative pagination values.
func (o ListOptions) Normalize() (ListOptions, error) {
	if o.Limit < 0 {
		return o, common.NewValidationError("limit", "must not be negative")
	}
	if o.Offset < 0 {
		return o, common.NewValidationError("offset", "must not be negative")
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	o.Search = common.SanitizeSearchQuery(o.Search)
	return o, nil
}

// Spec describes how one entity table is filtered.
type Spec struct {
	Table         string
	StatusColumn  string
	SearchColumns []string
}

var (
	Users = Spec{
		Table:         "users",
		StatusColumn:  "status",
		SearchColumns: []string{"full_name", "email", "id", "phone"},
	}
	Appointments = Spec{
		Table:         "appointments",
		StatusColumn:  "status",
		SearchColumns: []string{"patient_name", "id", "service", "phone", "email"},
	}
	Payments = Spec{
		Table:         "payments",
		StatusColumn:  "status",
		SearchColumns: []string{"customer_name", "id", "transaction_id"},
	}
	Calls = Spec{
		Table:         "calls",
		StatusColumn:  "status",
		SearchColumns: []string{"caller_name", "id", "phone_number", "purpose"},
	}
)

// Filter returns a builder holding the status and search predicates for opts.
// opts should already be normalized.
func (s Spec) Filter(opts ListOptions) *Builder {
	return NewBuilder().
		Equals(s.StatusColumn, opts.Status).
		AnyILike(s.SearchColumns, opts.Search)
}

// List renders the paginated select and its matching count query.
func (s Spec) List(b *Builder, opts ListOptions) (listSQL string, listArgs []any, countSQL string, countArgs []any, err error) {
	countSQL, countArgs, err = b.Count(s.Table)
	if err != nil {
		return "", nil, "", nil, err
	}
	listSQL, listArgs, err = b.Page(opts.Limit, opts.Offset).Select(s.Table)
	if err != nil {
		return "", nil, "", nil, err
	}
	return listSQL, listArgs, countSQL, countArgs, nil
}
