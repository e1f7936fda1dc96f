// Package auth holds the per-browser authentication context: restoring a
// persisted login, logging in and out, and answering role checks.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/session"
)

var (
	ErrUnsupportedRole = errors.New("unsupported login role")
	ErrNameRequired    = errors.New("name is required for admin login")
	ErrNoToken         = errors.New("login response carried no token")
)

// loginPaths maps a role hint to the backend endpoint that signs it in.
var loginPaths = map[model.Role]string{
	model.RoleStudent:       "/users/login/student",
	model.RoleParent:        "/users/login/parent",
	model.RoleStudentParent: "/users/login/parent",
	model.RoleTeacher:       "/users/login/teacher",
	model.RoleAdmin:         "/admin-auth/login/admin",
}

// LoginRoles lists the roles offered on the login screen, in display order.
var LoginRoles = []model.Role{model.RoleStudent, model.RoleParent, model.RoleTeacher, model.RoleAdmin}

// LoginPath returns the backend login endpoint for role.
func LoginPath(role model.Role) (string, error) {
	path, ok := loginPaths[role]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRole, role)
	}
	return path, nil
}

// Manager opens auth sessions for browser session ids. It is the only
// writer of persisted login state besides the API client's 401 handling.
type Manager struct {
	client *apiclient.Client
	store  session.Store
	log    zerolog.Logger

	mu       sync.Mutex
	inflight map[string]int
}

// NewManager creates a Manager.
func NewManager(client *apiclient.Client, store session.Store, log zerolog.Logger) *Manager {
	return &Manager{
		client:   client,
		store:    store,
		log:      log.With().Str("component", "auth_manager").Logger(),
		inflight: make(map[string]int),
	}
}

// Open returns the auth session for sid. A session with a login in flight is
// Loading; otherwise the persisted token and user are restored without
// checking the token against the backend.
func (m *Manager) Open(ctx context.Context, sid string) (*Session, error) {
	s := &Session{m: m, sid: sid, state: StateAnonymous}
	if sid == "" {
		return s, nil
	}
	if m.loading(sid) {
		s.state = StateLoading
		return s, nil
	}

	rec, err := m.store.Load(ctx, sid)
	if err != nil {
		if errors.Is(err, session.ErrNoRecord) {
			return s, nil
		}
		return s, fmt.Errorf("restore session: %w", err)
	}
	if rec.Token == "" {
		return s, nil
	}

	user := rec.User
	s.token = rec.Token
	s.user = &user
	s.state = StateAuthenticated
	return s, nil
}

func (m *Manager) loading(sid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inflight[sid] > 0
}

func (m *Manager) begin(sid string) {
	m.mu.Lock()
	m.inflight[sid]++
	m.mu.Unlock()
}

func (m *Manager) end(sid string) {
	m.mu.Lock()
	if m.inflight[sid] <= 1 {
		delete(m.inflight, sid)
	} else {
		m.inflight[sid]--
	}
	m.mu.Unlock()
}
