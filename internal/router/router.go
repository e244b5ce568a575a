package router

import (
	"strings"
	"sync"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/session"
)

// View identifies a top-level screen.
type View int

const (
	ViewLogin View = iota
	ViewNotifications
	ViewSettings
	ViewWallet
	ViewAirdrops
	ViewDashboard
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "Login"
	case ViewNotifications:
		return "Notifications"
	case ViewSettings:
		return "Settings"
	case ViewWallet:
		return "Wallet"
	case ViewAirdrops:
		return "Airdrops"
	case ViewDashboard:
		return "Dashboard"
	default:
		return "Unknown"
	}
}

// Router tracks the active view and the category filter. It owns the
// session gate so that login and logout move between views consistently.
type Router struct {
	gate *session.Gate

	mu     sync.Mutex
	view   View
	filter *model.Category
}

// New creates a router on the login view.
func New(gate *session.Gate) *Router {
	r := &Router{gate: gate, view: ViewLogin}
	if gate.State().LoggedIn() {
		r.view = ViewNotifications
	}
	return r
}

// Login attempts to log in. On success the notifications view opens.
func (r *Router) Login(identity, secret string) session.State {
	st := r.gate.Login(identity, secret)

	r.mu.Lock()
	defer r.mu.Unlock()
	if st.LoggedIn() {
		r.view = ViewNotifications
	} else {
		r.view = ViewLogin
	}
	return st
}

// Logout ends the session, clears the filter and returns to the login view.
func (r *Router) Logout() {
	r.gate.Logout()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = nil
	r.view = ViewLogin
}

// Session returns the current authentication state.
func (r *Router) Session() session.State {
	return r.gate.State()
}

// Navigate switches to v. While logged out only the login view is
// reachable; the returned view is the one actually active.
func (r *Router) Navigate(v View) View {
	loggedIn := r.gate.State().LoggedIn()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !loggedIn {
		r.view = ViewLogin
		return r.view
	}
	if v == ViewLogin {
		return r.view
	}
	r.view = v
	return r.view
}

// Current returns the active view.
func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// CanRender reports whether v may display content for the current
// session. The dashboard is admin-only; other users see nothing there.
func (r *Router) CanRender(v View) bool {
	st := r.gate.State()
	switch v {
	case ViewLogin:
		return !st.LoggedIn()
	case ViewDashboard:
		return st == session.LoggedInAdmin
	default:
		return st.LoggedIn()
	}
}

// SetFilter sets the category filter (nil shows everything) and opens
// the notifications view.
func (r *Router) SetFilter(c *model.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c == nil {
		r.filter = nil
	} else {
		cat := *c
		r.filter = &cat
	}
	if r.view != ViewLogin {
		r.view = ViewNotifications
	}
}

// Filter returns the active category filter, or nil.
func (r *Router) Filter() *model.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.filter == nil {
		return nil
	}
	c := *r.filter
	return &c
}

// Visible applies the active filter to list.
func (r *Router) Visible(list []model.Notification) []model.Notification {
	return Visible(list, r.Filter())
}

// Visible returns the notifications whose type matches filter, in their
// original order. A nil filter returns every notification.
func Visible(list []model.Notification, filter *model.Category) []model.Notification {
	if filter == nil {
		out := make([]model.Notification, len(list))
		copy(out, list)
		return out
	}
	want := strings.ToLower(string(*filter))
	out := make([]model.Notification, 0, len(list))
	for _, n := range list {
		if strings.ToLower(string(n.Type)) == want {
			out = append(out, n)
		}
	}
	return out
}

// ActiveAirdrops returns airdrop notifications whose claim window has not
// expired, in their original order.
func ActiveAirdrops(list []model.Notification) []model.Notification {
	out := make([]model.Notification, 0)
	for _, n := range list {
		if n.Type != model.CategoryAirdrop {
			continue
		}
		if n.Airdrop != nil && n.Airdrop.Status == model.AirdropExpired {
			continue
		}
		out = append(out, n)
	}
	return out
}
