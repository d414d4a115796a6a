package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRecordUndo(t *testing.T) {
	j := openTestJournal(t)
	file := filepath.Join(t.TempDir(), "a.ts")

	writeFile(t, file, "v1")
	if err := j.Record(file, "log-this", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, file, "v2")
	if err := j.Record(file, "move-line-up", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, file, "v3")

	e, err := j.Undo(file)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if e.Command != "move-line-up" {
		t.Errorf("undone command = %q", e.Command)
	}
	if got := readFile(t, file); got != "v2" {
		t.Errorf("after first undo got %q, want v2", got)
	}

	if _, err := j.Undo(file); err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if got := readFile(t, file); got != "v1" {
		t.Errorf("after second undo got %q, want v1", got)
	}

	if _, err := j.Undo(file); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
}

func TestEntriesPerFile(t *testing.T) {
	j := openTestJournal(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ts")
	b := filepath.Join(dir, "b.ts")

	j.Record(a, "log-this", []byte("a"))
	j.Record(b, "debug-this", []byte("b"))
	j.Record(a, "toggle-function-async", []byte("a2"))

	entries, err := j.Entries(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Command != "toggle-function-async" || entries[1].Command != "log-this" {
		t.Errorf("entries not newest first: %+v", entries)
	}
}

func TestPrune(t *testing.T) {
	j := openTestJournal(t)
	file := filepath.Join(t.TempDir(), "a.ts")
	for _, c := range []string{"one", "two", "three"} {
		j.Record(file, c, []byte(c))
	}

	j.Prune(1)

	entries, err := j.Entries(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Command != "three" {
		t.Errorf("after prune: %+v", entries)
	}
}

func TestNilJournalRecord(t *testing.T) {
	var j *Journal
	if err := j.Record("x.ts", "log-this", nil); err != nil {
		t.Errorf("nil Record: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
