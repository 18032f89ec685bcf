package activity

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shoplens/shoplens/internal/domain"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	return NewJournal(filepath.Join(t.TempDir(), "logs.json"))
}

func TestRecordAppendsEntry(t *testing.T) {
	j := newTestJournal(t)
	j.Record("user@example.com", domain.ActionLogin, "successful login", "127.0.0.1")
	j.Flush()

	entries := j.Tail(10)
	if len(entries) != 1 {
		t.Fatalf("journal has %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.User != "user@example.com" || e.Action != domain.ActionLogin || e.IP != "127.0.0.1" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Timestamp == "" || e.ID == "" {
		t.Errorf("entry missing timestamp or id: %+v", e)
	}
}

func TestRecordAnonymousActor(t *testing.T) {
	j := newTestJournal(t)
	j.Record("", domain.ActionError, "image processing failed", "10.0.0.1")
	j.Flush()

	entries := j.Tail(1)
	if len(entries) != 1 || entries[0].User != domain.AnonymousActor {
		t.Fatalf("anonymous actor not applied: %+v", entries)
	}
}

func TestJournalCapFIFO(t *testing.T) {
	j := newTestJournal(t)
	for i := 0; i < domain.MaxActivityEntries+25; i++ {
		j.Record("u@example.com", domain.ActionSearch, fmt.Sprintf("search %d", i), "")
	}
	j.Flush()

	if n := j.Len(); n != domain.MaxActivityEntries {
		t.Fatalf("journal length = %d, want %d", n, domain.MaxActivityEntries)
	}
	entries := j.Tail(domain.MaxActivityEntries)
	if entries[0].Details != "search 25" {
		t.Errorf("oldest entry = %q, want the 26th record (first 25 evicted)", entries[0].Details)
	}
	if entries[len(entries)-1].Details != fmt.Sprintf("search %d", domain.MaxActivityEntries+24) {
		t.Errorf("newest entry = %q", entries[len(entries)-1].Details)
	}
}

func TestTailReturnsMostRecent(t *testing.T) {
	j := newTestJournal(t)
	for i := 0; i < 20; i++ {
		j.Record("u@example.com", domain.ActionSearch, fmt.Sprintf("search %d", i), "")
	}
	j.Flush()

	tail := j.Tail(5)
	if len(tail) != 5 {
		t.Fatalf("tail length = %d, want 5", len(tail))
	}
	if tail[0].Details != "search 15" || tail[4].Details != "search 19" {
		t.Errorf("tail window wrong: first=%q last=%q", tail[0].Details, tail[4].Details)
	}
}

func TestPersistenceErrorsDoNotFailRecord(t *testing.T) {
	// A journal pointed at an unwritable path must still accept records.
	j := NewJournal(filepath.Join(t.TempDir(), "missing-dir", "logs.json"))
	j.Record("u@example.com", domain.ActionLogin, "login", "")
	j.Flush()
	if n := j.Len(); n != 0 {
		t.Fatalf("unexpected persisted entries: %d", n)
	}
}
