package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/formerror"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/session"
)

// LoginInput is one login attempt. Role selects the backend endpoint;
// Name is required when Role is admin.
type LoginInput struct {
	Identifier string
	Password   string
	Role       model.Role
	Name       string
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type loginResponse struct {
	AccessToken string     `json:"access_token"`
	Token       string     `json:"token"`
	User        model.User `json:"user"`
}

// Session is the auth context of one browser session. It satisfies
// apiclient.Credentials so API calls made on its behalf carry its token.
type Session struct {
	m   *Manager
	sid string

	mu    sync.RWMutex
	state State
	token string
	user  *model.User
	err   string
}

// ID returns the browser session id.
func (s *Session) ID() string { return s.sid }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the bearer token, empty unless authenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the user snapshot, nil unless authenticated.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Error returns the message of the last failed login.
func (s *Session) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Role returns the user's role, empty unless authenticated.
func (s *Session) Role() model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.user == nil {
		return ""
	}
	return s.user.Role
}

// HasRole reports whether the authenticated user has role r.
func (s *Session) HasRole(r model.Role) bool {
	role := s.Role()
	return role != "" && role == r
}

// HasAnyRole reports whether the authenticated user has one of roles.
func (s *Session) HasAnyRole(roles ...model.Role) bool {
	role := s.Role()
	return role != "" && role.In(roles...)
}

// Login signs in through the role-specific endpoint and persists the
// returned token and user. On failure any previously persisted login is
// dropped, the session stays anonymous and the backend error is returned
// unchanged.
func (s *Session) Login(ctx context.Context, in LoginInput) (*model.User, error) {
	path, err := LoginPath(in.Role)
	if err != nil {
		return nil, err
	}
	if in.Role == model.RoleAdmin && strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}

	s.m.begin(s.sid)
	defer s.m.end(s.sid)
	s.set(StateLoading, "", nil, "")

	body := loginBody{Email: strings.TrimSpace(in.Identifier), Password: in.Password}
	if in.Role == model.RoleAdmin {
		body.Name = strings.TrimSpace(in.Name)
	}

	var resp loginResponse
	// Login calls never carry the session's previous credentials.
	if err := s.m.client.Post(apiclient.WithCredentials(ctx, nil), path, body, &resp); err != nil {
		s.fail(ctx, err)
		return nil, err
	}

	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		s.fail(ctx, ErrNoToken)
		return nil, ErrNoToken
	}
	user := resp.User
	if user.Role == "" {
		user.Role = in.Role
	}
	if user.Role == model.RoleAdmin && user.Name == "" {
		user.Name = body.Name
	}

	if err := s.m.store.Save(ctx, s.sid, session.Record{Token: token, User: user}); err != nil {
		s.fail(ctx, err)
		return nil, fmt.Errorf("persist login: %w", err)
	}

	s.set(StateAuthenticated, token, &user, "")
	s.m.log.Info().
		Str("role", string(user.Role)).
		Int("user_id", user.ID).
		Msg("User logged in")
	return &user, nil
}

// RefreshProfile replaces the stored user snapshot with the backend's
// current profile.
func (s *Session) RefreshProfile(ctx context.Context) (*model.User, error) {
	if s.State() != StateAuthenticated {
		return nil, apiclient.ErrUnauthorized
	}

	var user model.User
	if err := s.m.client.Get(apiclient.WithCredentials(ctx, s), "/users/me", nil, &user); err != nil {
		return nil, err
	}
	if user.Role == "" {
		user.Role = s.Role()
	}

	token := s.Token()
	if err := s.m.store.Save(ctx, s.sid, session.Record{Token: token, User: user}); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	s.set(StateAuthenticated, token, &user, "")
	return &user, nil
}

// Logout clears the persisted token and user.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	s.m.log.Info().Str("sid", s.sid).Msg("User logged out")
	return nil
}

// Clear drops the persisted token and user together and makes the session
// anonymous. The API client calls it on any 401.
func (s *Session) Clear(ctx context.Context) error {
	s.set(StateAnonymous, "", nil, "")
	if s.sid == "" {
		return nil
	}
	if err := s.m.store.Clear(ctx, s.sid); err != nil && !errors.Is(err, session.ErrNoRecord) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// fail ends a login attempt: the persisted record goes so the previous user
// is not restored on the next request, and the message is kept for the form.
func (s *Session) fail(ctx context.Context, err error) {
	if cerr := s.Clear(ctx); cerr != nil {
		s.m.log.Error().Err(cerr).Str("sid", s.sid).Msg("Failed to drop session after failed login")
	}
	s.set(StateAnonymous, "", nil, formerror.Normalize(err).Message())
}

func (s *Session) set(state State, token string, user *model.User, errMsg string) {
	s.mu.Lock()
	s.state = state
	s.token = token
	s.user = user
	s.err = errMsg
	s.mu.Unlock()
}
