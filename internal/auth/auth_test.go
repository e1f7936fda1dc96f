package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/config"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend fakes the login and profile endpoints.
type backend struct {
	mu        sync.Mutex
	paths     []string
	bodies    []map[string]string
	auth      []string
	loginCode int
	loginBody string
	meCode    int
	release   chan struct{}
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	b.paths = append(b.paths, r.URL.Path)
	b.bodies = append(b.bodies, body)
	b.auth = append(b.auth, r.Header.Get("Authorization"))
	release := b.release
	loginCode, loginBody, meCode := b.loginCode, b.loginBody, b.meCode
	b.mu.Unlock()

	if release != nil {
		<-release
	}

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/api/v1/users/me" {
		if meCode != 0 {
			w.WriteHeader(meCode)
			w.Write([]byte(`{"detail":"Token expired"}`))
			return
		}
		w.Write([]byte(`{"id":5,"role":"teacher","name":"Bu Sari Baru","email":"sari@sekolah.id"}`))
		return
	}
	if loginCode != 0 {
		w.WriteHeader(loginCode)
	}
	w.Write([]byte(loginBody))
}

// respond switches the login answer for later requests.
func (b *backend) respond(code int, body string) {
	b.mu.Lock()
	b.loginCode, b.loginBody = code, body
	b.mu.Unlock()
}

func newManager(t *testing.T, b *backend) (*Manager, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	client := apiclient.New(&config.Config{BackendURL: srv.URL, APITimeout: 2 * time.Second}, zerolog.Nop())
	store := session.NewMemoryStore()
	return NewManager(client, store, zerolog.Nop()), store
}

func TestLoginPathPerRole(t *testing.T) {
	cases := map[model.Role]string{
		model.RoleStudent:       "/users/login/student",
		model.RoleParent:        "/users/login/parent",
		model.RoleStudentParent: "/users/login/parent",
		model.RoleTeacher:       "/users/login/teacher",
		model.RoleAdmin:         "/admin-auth/login/admin",
	}
	for role, want := range cases {
		got, err := LoginPath(role)
		require.NoError(t, err, role)
		assert.Equal(t, want, got)
	}

	_, err := LoginPath("janitor")
	assert.ErrorIs(t, err, ErrUnsupportedRole)
}

func TestLoginPersistsAndRestores(t *testing.T) {
	b := &backend{loginBody: `{"access_token":"tok-1","user":{"id":5,"role":"teacher","name":"Bu Sari","email":"sari@sekolah.id"}}`}
	mgr, store := newManager(t, b)
	ctx := context.Background()

	s, err := mgr.Open(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateAnonymous, s.State())

	user, err := s.Login(ctx, LoginInput{Identifier: " sari@sekolah.id ", Password: "rahasia", Role: model.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, "Bu Sari", user.Name)
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "tok-1", s.Token())
	assert.True(t, s.HasRole(model.RoleTeacher))
	assert.True(t, s.HasAnyRole(model.RoleAdmin, model.RoleTeacher))
	assert.False(t, s.HasRole(model.RoleAdmin))

	require.Len(t, b.paths, 1)
	assert.Equal(t, "/api/v1/users/login/teacher", b.paths[0])
	assert.Equal(t, map[string]string{"email": "sari@sekolah.id", "password": "rahasia"}, b.bodies[0])
	assert.Empty(t, b.auth[0])

	rec, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", rec.Token)

	// A later request restores without contacting the backend.
	restored, err := mgr.Open(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, restored.State())
	assert.Equal(t, model.RoleTeacher, restored.Role())
	assert.Len(t, b.paths, 1)
}

func TestLoginAcceptsTokenField(t *testing.T) {
	b := &backend{loginBody: `{"token":"tok-2","user":{"id":8,"name":"Rina"}}`}
	mgr, _ := newManager(t, b)
	ctx := context.Background()

	s, _ := mgr.Open(ctx, "sid-2")
	user, err := s.Login(ctx, LoginInput{Identifier: "rina@x.id", Password: "pw", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "tok-2", s.Token())
	assert.Equal(t, model.RoleStudent, user.Role)
}

func TestAdminLoginSendsName(t *testing.T) {
	b := &backend{loginBody: `{"access_token":"tok-a","user":{"id":1,"role":"admin"}}`}
	mgr, _ := newManager(t, b)
	ctx := context.Background()

	s, _ := mgr.Open(ctx, "sid-a")
	_, err := s.Login(ctx, LoginInput{Identifier: "admin@x.id", Password: "pw", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Empty(t, b.paths)

	user, err := s.Login(ctx, LoginInput{Identifier: "admin@x.id", Password: "pw", Role: model.RoleAdmin, Name: " Pak Budi "})
	require.NoError(t, err)
	assert.Equal(t, "Pak Budi", user.Name)
	assert.Equal(t, "/api/v1/admin-auth/login/admin", b.paths[0])
	assert.Equal(t, "Pak Budi", b.bodies[0]["name"])
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	b := &backend{loginCode: http.StatusUnauthorized, loginBody: `{"detail":"Email atau kata sandi salah"}`}
	mgr, store := newManager(t, b)
	ctx := context.Background()

	s, _ := mgr.Open(ctx, "sid-3")
	_, err := s.Login(ctx, LoginInput{Identifier: "x@y.z", Password: "bad", Role: model.RoleStudent})
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, StateAnonymous, s.State())
	assert.Equal(t, "Email atau kata sandi salah", s.Error())

	_, err = store.Load(ctx, "sid-3")
	assert.ErrorIs(t, err, session.ErrNoRecord)
}

func TestLoginWithoutTokenFails(t *testing.T) {
	b := &backend{loginBody: `{"user":{"id":1}}`}
	mgr, _ := newManager(t, b)
	ctx := context.Background()

	s, _ := mgr.Open(ctx, "sid-4")
	_, err := s.Login(ctx, LoginInput{Identifier: "x@y.z", Password: "pw", Role: model.RoleParent})
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, StateAnonymous, s.State())
}

func TestFailedReloginDropsPreviousUser(t *testing.T) {
	b := &backend{loginBody: `{"access_token":"tok-7","user":{"id":7,"role":"teacher","name":"Pak Made"}}`}
	mgr, store := newManager(t, b)
	ctx := context.Background()

	cases := []struct {
		name string
		code int
		body string
		want error
	}{
		{"rejected credentials", http.StatusUnauthorized, `{"detail":"Email atau kata sandi salah"}`, apiclient.ErrUnauthorized},
		{"no token", http.StatusOK, `{"user":{"id":7}}`, ErrNoToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b.respond(http.StatusOK, `{"access_token":"tok-7","user":{"id":7,"role":"teacher","name":"Pak Made"}}`)
			s, _ := mgr.Open(ctx, "sid-7")
			_, err := s.Login(ctx, LoginInput{Identifier: "made@sekolah.id", Password: "pw", Role: model.RoleTeacher})
			require.NoError(t, err)

			b.respond(tc.code, tc.body)
			_, err = s.Login(ctx, LoginInput{Identifier: "made@sekolah.id", Password: "salah", Role: model.RoleTeacher})
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, StateAnonymous, s.State())

			_, err = store.Load(ctx, "sid-7")
			assert.ErrorIs(t, err, session.ErrNoRecord)

			next, err := mgr.Open(ctx, "sid-7")
			require.NoError(t, err)
			assert.Equal(t, StateAnonymous, next.State())
			assert.Nil(t, next.User())
		})
	}
}

func TestOpenReportsLoadingDuringLogin(t *testing.T) {
	b := &backend{
		loginBody: `{"access_token":"tok-5","user":{"id":5,"role":"student"}}`,
		release:   make(chan struct{}),
	}
	mgr, _ := newManager(t, b)
	ctx := context.Background()

	s, _ := mgr.Open(ctx, "sid-5")
	done := make(chan error, 1)
	go func() {
		_, err := s.Login(ctx, LoginInput{Identifier: "a@b.c", Password: "pw", Role: model.RoleStudent})
		done <- err
	}()

	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.paths) == 1
	}, time.Second, 5*time.Millisecond)

	concurrent, err := mgr.Open(ctx, "sid-5")
	require.NoError(t, err)
	assert.Equal(t, StateLoading, concurrent.State())

	close(b.release)
	require.NoError(t, <-done)

	after, err := mgr.Open(ctx, "sid-5")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, after.State())
}

func TestLogoutClearsTokenAndUser(t *testing.T) {
	b := &backend{loginBody: `{"access_token":"tok-6","user":{"id":6,"role":"parent"}}`}
	mgr, store := newManager(t, b)
	ctx := context.Background()

	s, _ := mgr.Open(ctx, "sid-6")
	_, err := s.Login(ctx, LoginInput{Identifier: "a@b.c", Password: "pw", Role: model.RoleParent})
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, StateAnonymous, s.State())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Role())

	_, err = store.Load(ctx, "sid-6")
	assert.ErrorIs(t, err, session.ErrNoRecord)
}

func TestRefreshProfile(t *testing.T) {
	b := &backend{loginBody: `{"access_token":"tok-7","user":{"id":5,"role":"teacher","name":"Bu Sari"}}`}
	mgr, store := newManager(t, b)
	ctx := context.Background()

	s, _ := mgr.Open(ctx, "sid-7")
	_, err := s.Login(ctx, LoginInput{Identifier: "a@b.c", Password: "pw", Role: model.RoleTeacher})
	require.NoError(t, err)

	user, err := s.RefreshProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bu Sari Baru", user.Name)
	assert.Equal(t, "Bearer tok-7", b.auth[1])

	rec, err := store.Load(ctx, "sid-7")
	require.NoError(t, err)
	assert.Equal(t, "Bu Sari Baru", rec.User.Name)
	assert.Equal(t, "tok-7", rec.Token)
}

func TestRefreshProfileUnauthorizedLogsOut(t *testing.T) {
	b := &backend{loginBody: `{"access_token":"tok-8","user":{"id":5,"role":"student"}}`, meCode: http.StatusUnauthorized}
	mgr, store := newManager(t, b)
	ctx := context.Background()

	s, _ := mgr.Open(ctx, "sid-8")
	_, err := s.Login(ctx, LoginInput{Identifier: "a@b.c", Password: "pw", Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = s.RefreshProfile(ctx)
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.Equal(t, StateAnonymous, s.State())

	_, err = store.Load(ctx, "sid-8")
	assert.ErrorIs(t, err, session.ErrNoRecord)
}

func TestAnonymousRoleChecks(t *testing.T) {
	mgr, _ := newManager(t, &backend{})
	s, err := mgr.Open(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StateAnonymous, s.State())
	assert.False(t, s.HasRole(model.RoleAdmin))
	assert.False(t, s.HasAnyRole(model.AllRoles...))
}
