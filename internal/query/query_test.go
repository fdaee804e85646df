package query

import (
	"testing"
	"time"

	"github.com/strrl/session-resume/pkg/models"
)

func at(unix int64) time.Time {
	return time.Unix(unix, 0)
}

func names(records []models.Session) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestFilterByCwd(t *testing.T) {
	records := []models.Session{
		{Name: "a", Cwd: "/p", SavedAt: at(10)},
		{Name: "b", Cwd: "/q", SavedAt: at(20)},
		{Name: "c", Cwd: "/p", SavedAt: at(30)},
	}

	got := FilterBy(records, map[string]any{FieldCwd: "/p"})
	want := []string{"a", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i, name := range names(got) {
		if name != want[i] {
			t.Errorf("position %d: got %q, want %q (order must be preserved)", i, name, want[i])
		}
	}
}

func TestFilterByMultipleFields(t *testing.T) {
	records := []models.Session{
		{Name: "a", Cwd: "/p", SavedAt: at(10)},
		{Name: "a", Cwd: "/q", SavedAt: at(20)},
	}

	got := FilterBy(records, map[string]any{FieldName: "a", FieldCwd: "/q"})
	if len(got) != 1 || got[0].Cwd != "/q" {
		t.Errorf("AND semantics violated: %v", names(got))
	}
}

func TestFilterByEmptyInput(t *testing.T) {
	if got := FilterBy(nil, map[string]any{FieldCwd: "/p"}); len(got) != 0 {
		t.Errorf("filtering empty input should be a no-op, got %d records", len(got))
	}
}

func TestFilterByUnknownFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown filter field")
		}
	}()
	FilterBy([]models.Session{{Name: "a"}}, map[string]any{"color": "red"})
}

func TestSortByMtimeDescending(t *testing.T) {
	records := []models.Session{
		{Name: "a", SavedAt: at(10)},
		{Name: "b", SavedAt: at(30)},
		{Name: "c", SavedAt: at(20)},
	}

	SortBy(records, FieldMtime, true)
	want := []string{"b", "c", "a"}
	for i, name := range names(records) {
		if name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, name, want[i])
		}
	}
}

func TestSortByTieBreakKeepsOriginalOrder(t *testing.T) {
	// A and B share an mtime; A appears first in the input and must
	// stay first even when sorting descending.
	records := []models.Session{
		{Name: "A", SavedAt: at(50)},
		{Name: "B", SavedAt: at(50)},
		{Name: "C", SavedAt: at(40)},
	}

	SortBy(records, FieldMtime, true)
	want := []string{"A", "B", "C"}
	for i, name := range names(records) {
		if name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, name, want[i])
		}
	}
}

func TestSortByIdempotent(t *testing.T) {
	records := []models.Session{
		{Name: "a", SavedAt: at(10)},
		{Name: "b", SavedAt: at(30)},
		{Name: "c", SavedAt: at(30)},
	}

	SortBy(records, FieldMtime, true)
	first := names(records)
	SortBy(records, FieldMtime, true)
	second := names(records)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("sorting twice changed the order at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSortByName(t *testing.T) {
	records := []models.Session{
		{Name: "mango"},
		{Name: "alpha"},
		{Name: "zebra"},
	}

	SortBy(records, FieldName, false)
	want := []string{"alpha", "mango", "zebra"}
	for i, name := range names(records) {
		if name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, name, want[i])
		}
	}
}

func TestSortByUnknownFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown sort field")
		}
	}()
	SortBy([]models.Session{{Name: "a"}}, "size", false)
}
