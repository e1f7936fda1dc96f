// Package access decides what a console route shows for a given login
// state: the protected view, a wait indicator, a login redirect or an
// access-denied view.
package access

import (
	"github.com/stemsi/sekolah-console/internal/auth"
	"github.com/stemsi/sekolah-console/internal/model"
)

// Console landing routes.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	UsersPath     = "/users"
)

// Outcome is the kind of Decision.
type Outcome int

const (
	Wait Outcome = iota
	RedirectLogin
	Deny
	Render
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect_login"
	case Deny:
		return "deny"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// View is the part of the auth state a decision depends on.
type View struct {
	State auth.State
	Role  model.Role
}

// ViewOf snapshots s.
func ViewOf(s *auth.Session) View {
	if s == nil {
		return View{State: auth.StateAnonymous}
	}
	return View{State: s.State(), Role: s.Role()}
}

// Decision is what a route should do. Target is set for RedirectLogin and
// Redirect.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Decide gates a protected route on the login state and an allow-list of
// roles. An empty allow-list admits every authenticated role.
func Decide(v View, allow []model.Role) Decision {
	switch v.State {
	case auth.StateLoading:
		return Decision{Outcome: Wait}
	case auth.StateAuthenticated:
	default:
		return Decision{Outcome: RedirectLogin, Target: LoginPath}
	}

	if len(allow) > 0 && !v.Role.In(allow...) {
		return Decision{Outcome: Deny}
	}
	return Decision{Outcome: Render}
}

// Landing resolves the root and unmatched paths: admins land on user
// administration, every other role on the dashboard.
func Landing(v View) Decision {
	switch v.State {
	case auth.StateLoading:
		return Decision{Outcome: Wait}
	case auth.StateAuthenticated:
	default:
		return Decision{Outcome: RedirectLogin, Target: LoginPath}
	}

	return Decision{Outcome: Redirect, Target: LandingPath(v.Role)}
}

// LandingPath is the default route for role.
func LandingPath(role model.Role) string {
	if role == model.RoleAdmin {
		return UsersPath
	}
	return DashboardPath
}
