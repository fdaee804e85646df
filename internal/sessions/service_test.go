package sessions

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/strrl/session-resume/internal/errors"
	"github.com/strrl/session-resume/internal/paths"
	"github.com/strrl/session-resume/internal/query"
	"github.com/strrl/session-resume/internal/resolve"
	"github.com/strrl/session-resume/internal/store"
)

// newTestService points the whole stack at a temp sessions directory.
func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvSessionsDir, dir)
	return NewServiceWith(store.NewDirStore(), func() (string, bool) { return "", false }), dir
}

func writeDoc(t *testing.T, dir, name, cwd string, savedAt time.Time) {
	t.Helper()
	path := filepath.Join(dir, name+".json")
	doc := fmt.Sprintf(`{"name":%q,"cwd":%q,"state":{"buffers":[{"path":"/tmp/main.go","line":12}]}}`, name, cwd)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing doc failed: %v", err)
	}
	if err := os.Chtimes(path, savedAt, savedAt); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}
}

func TestServiceResolvePrecedence(t *testing.T) {
	svc, dir := newTestService(t)
	writeDoc(t, dir, "a", "/p", time.Unix(10, 0))
	writeDoc(t, dir, "b", "/p", time.Unix(20, 0))
	writeDoc(t, dir, "c", "/q", time.Unix(30, 0))

	name, err := svc.Resolve(resolve.LastForDirectory{Dir: "/p"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "b" {
		t.Errorf("LastForDirectory(/p) = %q, want b", name)
	}

	name, err = svc.Resolve(resolve.LastGlobal{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "c" {
		t.Errorf("LastGlobal = %q, want c", name)
	}

	_, err = svc.Resolve(resolve.LastForDirectory{Dir: "/z"})
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Errorf("LastForDirectory(/z): expected KindNotFound, got %v", err)
	}
}

func TestServiceQuerySortsWithoutMutatingCache(t *testing.T) {
	svc, dir := newTestService(t)
	writeDoc(t, dir, "young", "/p", time.Unix(30, 0))
	writeDoc(t, dir, "old", "/p", time.Unix(10, 0))

	byMtime, err := svc.Query(nil, query.FieldMtime, true)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if byMtime[0].Name != "young" {
		t.Errorf("expected young first, got %q", byMtime[0].Name)
	}

	byName, err := svc.Query(nil, query.FieldName, false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if byName[0].Name != "old" {
		t.Errorf("expected old first by name, got %q", byName[0].Name)
	}

	// The earlier result must not have been reordered by the second
	// query; both were copies of the snapshot.
	if byMtime[0].Name != "young" {
		t.Error("Query mutated a previously returned slice")
	}
}

func TestServiceDirectories(t *testing.T) {
	svc, dir := newTestService(t)
	writeDoc(t, dir, "a", "/p", time.Unix(10, 0))
	writeDoc(t, dir, "b", "/p", time.Unix(20, 0))
	writeDoc(t, dir, "c", "/q", time.Unix(30, 0))
	writeDoc(t, dir, "stray", "", time.Unix(5, 0))

	dirs, err := svc.Directories()
	if err != nil {
		t.Fatalf("Directories failed: %v", err)
	}
	if len(dirs) != 3 {
		t.Fatalf("expected 3 directories, got %d", len(dirs))
	}
	if dirs[0].Path != "/q" {
		t.Errorf("most recently saved directory should come first, got %s", dirs[0].Path)
	}
	if dirs[1].Path != "/p" || dirs[1].SessionCount != 2 {
		t.Errorf("expected /p with 2 sessions, got %s with %d", dirs[1].Path, dirs[1].SessionCount)
	}
	if dirs[2].Name != "Unknown" {
		t.Errorf("sessions without cwd should group under Unknown, got %s", dirs[2].Name)
	}
}

func TestServiceSessionsForDirectory(t *testing.T) {
	svc, dir := newTestService(t)
	writeDoc(t, dir, "a", "/p", time.Unix(10, 0))
	writeDoc(t, dir, "b", "/p", time.Unix(20, 0))
	writeDoc(t, dir, "c", "/q", time.Unix(30, 0))

	records, err := svc.SessionsForDirectory("/p")
	if err != nil {
		t.Fatalf("SessionsForDirectory failed: %v", err)
	}
	if len(records) != 2 || records[0].Name != "b" || records[1].Name != "a" {
		t.Errorf("unexpected listing for /p: %+v", records)
	}
}

func TestServiceSaveCreatesAndInvalidates(t *testing.T) {
	svc, _ := newTestService(t)

	// Prime the cache with the empty store.
	records, err := svc.Query(nil, query.FieldName, false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %d records", len(records))
	}

	if err := svc.Save("fresh"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err = svc.Query(nil, query.FieldName, false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "fresh" {
		t.Errorf("Save did not invalidate the cache: %+v", records)
	}

	cwd, _ := os.Getwd()
	abs, _ := paths.AbsoluteDir(cwd)
	if records[0].Cwd != abs {
		t.Errorf("saved session cwd = %q, want %q", records[0].Cwd, abs)
	}
}

func TestServiceSavePreservesState(t *testing.T) {
	svc, dir := newTestService(t)
	writeDoc(t, dir, "keep", "/p", time.Unix(10, 0))

	if err := svc.Save("keep"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "keep.json"))
	if err != nil {
		t.Fatalf("reading doc failed: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := doc["state"]; !ok {
		t.Error("Save dropped the state payload")
	}
	if _, ok := doc["savedAt"]; !ok {
		t.Error("Save did not refresh the header")
	}
}

func TestServiceDeleteRequiresExistence(t *testing.T) {
	svc, dir := newTestService(t)
	writeDoc(t, dir, "doomed", "/p", time.Unix(10, 0))

	err := svc.Delete("ghost")
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Errorf("deleting a missing session: expected KindNotFound, got %v", err)
	}

	if err := svc.Delete("doomed"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "doomed.json")); !os.IsNotExist(err) {
		t.Error("Delete left the document behind")
	}
}

func TestServiceRename(t *testing.T) {
	svc, dir := newTestService(t)
	writeDoc(t, dir, "before", "/p", time.Unix(10, 0))
	writeDoc(t, dir, "taken", "/p", time.Unix(10, 0))

	if err := svc.Rename("before", "taken"); !apperrors.Is(err, apperrors.KindInvalid) {
		t.Errorf("renaming onto an existing session: expected KindInvalid, got %v", err)
	}
	if err := svc.Rename("ghost", "after"); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Errorf("renaming a missing session: expected KindNotFound, got %v", err)
	}

	if err := svc.Rename("before", "after"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "after.json"))
	if err != nil {
		t.Fatalf("renamed doc missing: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc["name"] != "after" {
		t.Errorf("name field not updated, got %v", doc["name"])
	}
	if _, err := os.Stat(filepath.Join(dir, "before.json")); !os.IsNotExist(err) {
		t.Error("old document still present after rename")
	}
}

func TestServiceGet(t *testing.T) {
	svc, dir := newTestService(t)
	writeDoc(t, dir, "known", "/p", time.Unix(10, 0))

	record, err := svc.Get("known")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Cwd != "/p" {
		t.Errorf("Get returned wrong record: %+v", record)
	}

	if _, err := svc.Get("missing"); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}

func TestCurrentSessionName(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvSessionsDir, dir)

	if _, ok := CurrentSessionName(); ok {
		t.Error("no marker file should mean no active session")
	}

	if err := os.WriteFile(filepath.Join(dir, "current"), []byte("editing-api\n"), 0644); err != nil {
		t.Fatalf("writing marker failed: %v", err)
	}

	name, ok := CurrentSessionName()
	if !ok || name != "editing-api" {
		t.Errorf("CurrentSessionName = %q, %v", name, ok)
	}
}
