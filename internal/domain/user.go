package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	// TimeLayout is the timestamp format used across the durable stores.
	TimeLayout = "2006-01-02 15:04:05"

	// MaxSearchHistory caps the per-user search history; the oldest entry
	// is evicted first.
	MaxSearchHistory = 50
)

// SearchEntry is one historical search interaction. Immutable once written.
type SearchEntry struct {
	Timestamp    string `json:"timestamp"`
	Category     string `json:"category"`
	Keywords     string `json:"keywords"`
	MatchesCount int    `json:"matches_count"`
	Image        string `json:"image"`
}

// User is a registered account, keyed in the store by lowercase email.
type User struct {
	Username     string        `json:"username"`
	Password     string        `json:"password"` // salt:sha256hex(salt+plaintext)
	FullName     string        `json:"full_name"`
	Role         string        `json:"role"`
	CreatedAt    string        `json:"created_at"`
	LastLogin    *string       `json:"last_login"`
	UploadsCount int           `json:"uploads_count"`
	Searches     []SearchEntry `json:"searches,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
