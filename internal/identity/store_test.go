package identity

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shoplens/shoplens/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "users.json"))
}

func TestRegisterPasswordLengthBoundary(t *testing.T) {
	s := newTestStore(t)

	err := s.Register("a@example.com", "a", "A User", "abcde", "abcde")
	var verr *ValidationError
	if err == nil || !errors.As(err, &verr) {
		t.Fatalf("5-char password: got %v, want ValidationError", err)
	}

	if err := s.Register("a@example.com", "a", "A User", "abcdef", "abcdef"); err != nil {
		t.Fatalf("6-char password: got %v, want success", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		name                             string
		email, user, full, pass, confirm string
	}{
		{"blank email", "", "u", "F", "secret1", "secret1"},
		{"blank username", "b@example.com", "", "F", "secret1", "secret1"},
		{"blank full name", "b@example.com", "u", "", "secret1", "secret1"},
		{"blank password", "b@example.com", "u", "F", "", ""},
		{"mismatched confirmation", "b@example.com", "u", "F", "secret1", "secret2"},
	}
	for _, tc := range tests {
		err := s.Register(tc.email, tc.user, tc.full, tc.pass, tc.confirm)
		var verr *ValidationError
		if err == nil || !errors.As(err, &verr) {
			t.Errorf("%s: got %v, want ValidationError", tc.name, err)
		}
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	if err := s.Register("user@example.com", "u", "U Ser", "secret1", "secret1"); err != nil {
		t.Fatal(err)
	}
	err := s.Register("User@Example.COM", "u2", "Other", "secret2", "secret2")
	if err != ErrDuplicateEmail {
		t.Fatalf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestAuthenticateDoesNotDistinguishFailures(t *testing.T) {
	s := newTestStore(t)
	if err := s.Register("known@example.com", "k", "Known", "secret1", "secret1"); err != nil {
		t.Fatal(err)
	}

	_, errWrongPass := s.Authenticate("known@example.com", "wrong")
	_, errUnknown := s.Authenticate("unknown@example.com", "secret1")
	if errWrongPass != ErrInvalidCredentials || errUnknown != ErrInvalidCredentials {
		t.Fatalf("failures differ: %v vs %v", errWrongPass, errUnknown)
	}

	u, err := s.Authenticate("KNOWN@example.com", "secret1")
	if err != nil {
		t.Fatalf("valid login failed: %v", err)
	}
	if u.Username != "k" {
		t.Errorf("username = %q, want %q", u.Username, "k")
	}
}

func TestStoredPasswordShape(t *testing.T) {
	s := newTestStore(t)
	if err := s.Register("p@example.com", "p", "P", "secret1", "secret1"); err != nil {
		t.Fatal(err)
	}
	u, ok := s.Get("p@example.com")
	if !ok {
		t.Fatal("user not found after register")
	}
	salt, hash, found := strings.Cut(u.Password, ":")
	if !found {
		t.Fatalf("stored password %q has no separator", u.Password)
	}
	if strings.Contains(salt, ":") || len(hash) != 64 {
		t.Errorf("unexpected stored form: salt=%q hash len=%d", salt, len(hash))
	}
	if u.Password == "secret1" || strings.Contains(u.Password, "secret1") {
		t.Error("plaintext password leaked into the store")
	}
}

func TestAppendSearchCapsAtFifty(t *testing.T) {
	s := newTestStore(t)
	if err := s.Register("h@example.com", "h", "H", "secret1", "secret1"); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= domain.MaxSearchHistory+1; i++ {
		entry := domain.SearchEntry{Category: fmt.Sprintf("cat-%d", i)}
		if err := s.AppendSearch("h@example.com", entry); err != nil {
			t.Fatal(err)
		}
	}
	u, _ := s.Get("h@example.com")
	if len(u.Searches) != domain.MaxSearchHistory {
		t.Fatalf("history length = %d, want %d", len(u.Searches), domain.MaxSearchHistory)
	}
	if u.Searches[0].Category != "cat-2" {
		t.Errorf("oldest surviving entry = %q, want cat-2 (cat-1 evicted)", u.Searches[0].Category)
	}
	if u.Searches[len(u.Searches)-1].Category != fmt.Sprintf("cat-%d", domain.MaxSearchHistory+1) {
		t.Errorf("most recent entry = %q", u.Searches[len(u.Searches)-1].Category)
	}
}

func TestRecordLoginAndCounts(t *testing.T) {
	s := newTestStore(t)
	if err := s.Register("x@example.com", "x", "X", "secret1", "secret1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("y@example.com", "y", "Y", "secret1", "secret1"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordLogin("x@example.com"); err != nil {
		t.Fatal(err)
	}
	total, active := s.Counts()
	if total != 2 || active != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", total, active)
	}
}

func TestEnsureAdminSeedsEmptyStoreOnly(t *testing.T) {
	s := newTestStore(t)
	if err := s.EnsureAdmin("admin@shoplens.local", "admin123"); err != nil {
		t.Fatal(err)
	}
	u, ok := s.Get("admin@shoplens.local")
	if !ok || !u.IsAdmin() {
		t.Fatalf("admin not seeded: %v %v", u, ok)
	}

	// A populated store is left alone.
	s2 := newTestStore(t)
	if err := s2.Register("solo@example.com", "solo", "Solo", "secret1", "secret1"); err != nil {
		t.Fatal(err)
	}
	if err := s2.EnsureAdmin("admin@shoplens.local", "admin123"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s2.Get("admin@shoplens.local"); ok {
		t.Error("admin seeded into a non-empty store")
	}
}
