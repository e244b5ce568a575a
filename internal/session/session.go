package session

import "sync"

// State is the authentication state of the current user.
type State int

const (
	LoggedOut State = iota
	LoggedInUser
	LoggedInAdmin
)

func (s State) String() string {
	switch s {
	case LoggedInUser:
		return "user"
	case LoggedInAdmin:
		return "admin"
	default:
		return "logged out"
	}
}

// LoggedIn reports whether s is one of the logged-in states.
func (s State) LoggedIn() bool {
	return s == LoggedInUser || s == LoggedInAdmin
}

// Gate is a demo-grade login gate. Credentials are compared in plain
// text and nothing is persisted, so every process starts logged out.
type Gate struct {
	adminIdentity string
	adminSecret   string

	mu    sync.Mutex
	state State
}

// NewGate creates a logged-out gate that recognizes the given admin
// credentials.
func NewGate(adminIdentity, adminSecret string) *Gate {
	return &Gate{adminIdentity: adminIdentity, adminSecret: adminSecret}
}

// Check evaluates credentials without changing the gate's state.
func (g *Gate) Check(identity, secret string) State {
	switch {
	case g.adminIdentity != "" && identity == g.adminIdentity && secret == g.adminSecret:
		return LoggedInAdmin
	case identity != "" && secret != "":
		return LoggedInUser
	default:
		return LoggedOut
	}
}

// Login evaluates credentials and moves to the resulting state. A failed
// attempt leaves the gate logged out.
func (g *Gate) Login(identity, secret string) State {
	st := g.Check(identity, secret)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = st
	return st
}

// Logout returns to the logged-out state.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = LoggedOut
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// IsAdmin reports whether the admin is logged in.
func (g *Gate) IsAdmin() bool {
	return g.State() == LoggedInAdmin
}
