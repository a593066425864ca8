// Package transform converts stored rows into the external record shapes.
//
// Every function here is pure: it reads the row, never the store. Column
// names differ between schema versions and drivers (customer_name,
// customerName and customername all occur), so each entity carries an alias
// table listing the accepted source keys per logical field, most preferred
// first. The first key that is present and non-empty wins; any field still
// unresolved gets its documented default.
package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"opsdash/internal/models"

	"github.com/jackc/pgx/v5/pgtype"
)

// Aliases maps a logical field name to its accepted source keys.
type Aliases map[string][]string

// value returns the first present, non-empty source value for field.
func (a Aliases) value(rec models.Record, field string) (any, bool) {
	for _, key := range a[field] {
		v, ok := rec[key]
		if !ok || isEmpty(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func (a Aliases) text(rec models.Record, field string) (string, bool) {
	v, ok := a.value(rec, field)
	if !ok {
		return "", false
	}
	s, ok := asText(v)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func (a Aliases) textOr(rec models.Record, field, def string) string {
	if s, ok := a.text(rec, field); ok {
		return s
	}
	return def
}

func (a Aliases) optionalText(rec models.Record, field string) *string {
	if s, ok := a.text(rec, field); ok {
		return &s
	}
	return nil
}

func (a Aliases) number(rec models.Record, field string) (float64, bool) {
	v, ok := a.value(rec, field)
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

func (a Aliases) integer(rec models.Record, field string) (int, bool) {
	f, ok := a.number(rec, field)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func (a Aliases) timestamp(rec models.Record, field string) (time.Time, bool) {
	v, ok := a.value(rec, field)
	if !ok {
		return time.Time{}, false
	}
	return asTime(v)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case *string:
		return t == nil || *t == ""
	case *time.Time:
		return t == nil
	case pgtype.Text:
		return !t.Valid || t.String == ""
	case pgtype.Numeric:
		return !t.Valid
	case pgtype.Date:
		return !t.Valid
	case pgtype.Timestamptz:
		return !t.Valid
	case pgtype.Timestamp:
		return !t.Valid
	case pgtype.Int4:
		return !t.Valid
	case pgtype.Int8:
		return !t.Valid
	}
	return false
}

func asText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case *string:
		return *t, true
	case []byte:
		return string(t), true
	case pgtype.Text:
		return t.String, true
	case time.Time:
		return t.UTC().Format(time.RFC3339), true
	case int, int16, int32, int64:
		return fmt.Sprintf("%d", t), true
	case float32, float64:
		return fmt.Sprintf("%v", t), true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return 0, false
		}
		return f.Float64, true
	case pgtype.Int4:
		return float64(t.Int32), t.Valid
	case pgtype.Int8:
		return float64(t.Int64), t.Valid
	case pgtype.Float8:
		return t.Float64, t.Valid
	}
	return 0, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		return *t, true
	case pgtype.Timestamptz:
		return t.Time, t.Valid
	case pgtype.Timestamp:
		return t.Time, t.Valid
	case pgtype.Date:
		return t.Time, t.Valid
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// roundCents keeps two decimal places.
func roundCents(f float64) float64 {
	return math.Round(f*100) / 100
}

// normalizeEnum lowercases value and returns it when allowed, def otherwise.
func normalizeEnum(value string, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}
