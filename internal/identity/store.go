// Package identity is the flat-file user account store. The on-disk shape
// is a single JSON document keyed by lowercase email, read wholesale before
// every operation and rewritten wholesale after every mutation. A store
// mutex serializes writers inside this process; the file contract itself
// stays last-write-wins.
package identity

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shoplens/shoplens/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports malformed registration input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

const minPasswordLen = 6

var validate = validator.New()

type registration struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required"`
	FullName string `validate:"required"`
	Password string `validate:"required"`
}

// Store persists user accounts at path.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Register creates a new account. The email key is lowercased, so
// re-registering an existing address fails regardless of submitted casing.
func (s *Store) Register(email, username, fullName, password, confirm string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)

	reg := registration{Email: email, Username: username, FullName: fullName, Password: password}
	if err := validate.Struct(&reg); err != nil {
		return &ValidationError{Reason: "all fields are required"}
	}
	if len(password) < minPasswordLen {
		return &ValidationError{Reason: fmt.Sprintf("password must be at least %d characters", minPasswordLen)}
	}
	if password != confirm {
		return &ValidationError{Reason: "passwords do not match"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return err
	}
	if _, exists := users[email]; exists {
		return ErrDuplicateEmail
	}
	users[email] = &domain.User{
		Username:  username,
		Password:  hashPassword(password),
		FullName:  fullName,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().Format(domain.TimeLayout),
	}
	return s.save(users)
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password fail identically.
func (s *Store) Authenticate(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return nil, err
	}
	u, exists := users[email]
	if !exists || !verifyPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// RecordLogin stamps the user's last-login time.
func (s *Store) RecordLogin(email string) error {
	return s.update(email, func(u *domain.User) {
		now := time.Now().Format(domain.TimeLayout)
		u.LastLogin = &now
	})
}

// AppendSearch adds a search-history entry, keeping only the most recent
// entries and evicting the oldest first.
func (s *Store) AppendSearch(email string, entry domain.SearchEntry) error {
	return s.update(email, func(u *domain.User) {
		u.Searches = append(u.Searches, entry)
		if len(u.Searches) > domain.MaxSearchHistory {
			u.Searches = u.Searches[len(u.Searches)-domain.MaxSearchHistory:]
		}
	})
}

// IncrementUploads bumps the user's upload counter.
func (s *Store) IncrementUploads(email string) error {
	return s.update(email, func(u *domain.User) {
		u.UploadsCount++
	})
}

// Get returns one account by email.
func (s *Store) Get(email string) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return nil, false
	}
	u, exists := users[strings.ToLower(strings.TrimSpace(email))]
	return u, exists
}

// All returns the full account map.
func (s *Store) All() map[string]*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return map[string]*domain.User{}
	}
	return users
}

// Counts reports total accounts and accounts that have logged in at least
// once.
func (s *Store) Counts() (total, active int) {
	for _, u := range s.All() {
		total++
		if u.LastLogin != nil {
			active++
		}
	}
	return total, active
}

// ActiveSince counts users whose last login parses to a time after cutoff.
// Timestamps written by older deployments vary in format, so parsing is
// tolerant.
func (s *Store) ActiveSince(cutoff time.Time) int {
	n := 0
	for _, u := range s.All() {
		if u.LastLogin == nil {
			continue
		}
		if t, err := dateparse.ParseAny(*u.LastLogin); err == nil && t.After(cutoff) {
			n++
		}
	}
	return n
}

// EnsureAdmin seeds the administrator account when the store is empty.
func (s *Store) EnsureAdmin(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	users[strings.ToLower(email)] = &domain.User{
		Username:  "admin",
		Password:  hashPassword(password),
		FullName:  "System Administrator",
		Role:      domain.RoleAdmin,
		CreatedAt: time.Now().Format(domain.TimeLayout),
	}
	if err := s.save(users); err != nil {
		return err
	}
	zap.S().Infof("admin user created: %s", email)
	return nil
}

func (s *Store) update(email string, fn func(*domain.User)) error {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return err
	}
	u, exists := users[email]
	if !exists {
		return errors.Errorf("no such user %s", email)
	}
	fn(u)
	return s.save(users)
}

func (s *Store) load() (map[string]*domain.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*domain.User{}, nil
		}
		return nil, errors.Wrap(err, "read user store")
	}
	users := map[string]*domain.User{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, errors.Wrap(err, "decode user store")
	}
	return users, nil
}

// save rewrites the whole store. The write goes to a temp file first and is
// renamed into place so readers never see a partially written document.
func (s *Store) save(users map[string]*domain.User) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encode user store")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write user store")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace user store")
	}
	return nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }
