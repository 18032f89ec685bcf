package domain

const (
	// MaxActivityEntries bounds the global activity journal; oldest entries
	// are dropped first.
	MaxActivityEntries = 1000

	ActionRegister = "REGISTER"
	ActionLogin    = "LOGIN"
	ActionLogout   = "LOGOUT"
	ActionSearch   = "SEARCH"
	ActionReload   = "RELOAD_DB"
	ActionError    = "ERROR"

	AnonymousActor = "anonymous"
)

// ActivityEntry is one line of the append-only audit journal.
type ActivityEntry struct {
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	IP        string `json:"ip"`
}
