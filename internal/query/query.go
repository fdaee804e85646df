// Package query filters and sorts in-memory session listings.
package query

import (
	"fmt"
	"sort"
	"time"

	"github.com/strrl/session-resume/pkg/models"
)

// Field names accepted by FilterBy and SortBy.
const (
	FieldName  = "name"
	FieldCwd   = "cwd"
	FieldMtime = "mtime"
)

// FilterBy keeps records where every named field equals the given value
// (logical AND). Relative order is preserved. Unknown field names are a
// programming error and panic.
func FilterBy(records []models.Session, fields map[string]any) []models.Session {
	if len(fields) == 0 {
		return records
	}

	var out []models.Session
	for _, record := range records {
		if matches(record, fields) {
			out = append(out, record)
		}
	}
	return out
}

func matches(record models.Session, fields map[string]any) bool {
	for field, want := range fields {
		switch field {
		case FieldName:
			if record.Name != want {
				return false
			}
		case FieldCwd:
			if record.Cwd != want {
				return false
			}
		case FieldMtime:
			if !record.SavedAt.Equal(mtimeValue(field, want)) {
				return false
			}
		default:
			panic(fmt.Sprintf("query: unknown filter field %q", field))
		}
	}
	return true
}

// SortBy sorts records in place by the named field. descending flips the
// comparison rather than reversing the result, so records with equal
// keys keep their original relative order. Unknown field names panic.
func SortBy(records []models.Session, field string, descending bool) {
	less := lessFunc(field)
	if descending {
		asc := less
		less = func(a, b models.Session) bool { return asc(b, a) }
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

func lessFunc(field string) func(a, b models.Session) bool {
	switch field {
	case FieldName:
		return func(a, b models.Session) bool { return a.Name < b.Name }
	case FieldCwd:
		return func(a, b models.Session) bool { return a.Cwd < b.Cwd }
	case FieldMtime:
		return func(a, b models.Session) bool { return a.SavedAt.Before(b.SavedAt) }
	default:
		panic(fmt.Sprintf("query: unknown sort field %q", field))
	}
}

func mtimeValue(field string, v any) time.Time {
	tv, ok := v.(time.Time)
	if !ok {
		panic(fmt.Sprintf("query: field %q requires a time.Time value, got %T", field, v))
	}
	return tv
}
