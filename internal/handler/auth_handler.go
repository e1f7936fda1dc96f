package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/access"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/auth"
	"github.com/stemsi/sekolah-console/internal/formerror"
	"github.com/stemsi/sekolah-console/internal/middleware"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
)

// registerRoles are the roles a visitor may sign up as.
var registerRoles = []model.Role{model.RoleStudent, model.RoleParent, model.RoleStudentParent}

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	users      *service.UserService
	cookies    sessions.Store
	cookieName string
	log        zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, cookies sessions.Store, cookieName string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		cookies:    cookies,
		cookieName: cookieName,
		log:        log.With().Str("component", "auth_handler").Logger(),
	}
}

// LoginPage godoc
// GET /login, GET /login/:role
// Describes the login form. Signed-in users are sent to their landing route.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	s := middleware.GetSession(c)
	if s != nil && s.State() == auth.StateAuthenticated {
		response.Redirect(c, access.LandingPath(s.Role()))
		return
	}

	role := model.Role(c.Param("role"))
	if role != "" {
		if _, err := auth.LoginPath(role); err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
	}

	lastError := middleware.TakeFlash(c, h.cookies, h.cookieName)
	if lastError == "" && s != nil {
		lastError = s.Error()
	}
	response.Success(c, http.StatusOK, gin.H{
		"roles": auth.LoginRoles,
		"role":  role,
		"next":  c.Query("next"),
		"error": lastError,
	})
}

// Login godoc
// POST /login, POST /login/:role
// Signs in through the role's backend endpoint and redirects to the
// remembered path or the role's landing route.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	echo := func() interface{} {
		redacted := req
		redacted.Password = ""
		return redacted
	}
	if !bind(c, &req, echo) {
		return
	}
	if role := c.Param("role"); role != "" {
		req.Role = model.Role(role)
	}
	if req.Role == "" {
		req.Role = model.RoleStudent
	}

	s := middleware.GetSession(c)
	if s == nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	user, err := s.Login(c.Request.Context(), auth.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		Role:       req.Role,
		Name:       req.Name,
	})
	if err != nil {
		h.loginFailed(c, err, echo())
		return
	}

	target := access.LandingPath(user.Role)
	remembered := middleware.TakeRememberedPath(c, h.cookies, h.cookieName)
	switch next := c.Query("next"); {
	case middleware.SafeNext(next):
		target = next
	case middleware.SafeNext(remembered):
		target = remembered
	}
	response.Redirect(c, target)
}

func (h *AuthHandler) loginFailed(c *gin.Context, err error, submitted interface{}) {
	switch {
	case errors.Is(err, auth.ErrUnsupportedRole):
		response.FailForm(c, http.StatusUnprocessableEntity, formerror.Result{
			FieldErrors: map[string]string{"role": "Peran login tidak dikenal."},
		}, submitted)
	case errors.Is(err, auth.ErrNameRequired):
		response.FailForm(c, http.StatusUnprocessableEntity, formerror.Result{
			FieldErrors: map[string]string{"name": "Nama wajib diisi untuk login admin."},
		}, submitted)
	default:
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			// Bad credentials come back as 401; they must not read as an
			// expired session.
			res := formerror.Normalize(err)
			if !res.HasErrors() {
				res.GeneralError = res.Message()
			}
			if err := middleware.Flash(c, h.cookies, h.cookieName, res.Message()); err != nil {
				h.log.Warn().Err(err).Msg("Failed to keep login error")
			}
			response.FailForm(c, apiErr.Status, res, submitted)
			return
		}
		h.log.Warn().Err(err).Msg("Login failed")
		fail(c, err, nil)
	}
}

// RegisterPage godoc
// GET /register
// Describes the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"roles": registerRoles})
}

// Register godoc
// POST /register
// Creates a self-service account and sends the visitor to its login form.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	echo := func() interface{} {
		redacted := req
		redacted.Password = ""
		return redacted
	}
	if !bind(c, &req, echo) {
		return
	}

	// Registration is always anonymous.
	ctx := apiclient.WithCredentials(c.Request.Context(), nil)
	if _, err := h.users.Register(ctx, req); err != nil {
		fail(c, err, echo())
		return
	}

	h.log.Info().Str("role", string(req.Role)).Msg("Account registered")
	loginRole := req.Role
	if loginRole == model.RoleStudentParent {
		loginRole = model.RoleParent
	}
	response.Redirect(c, access.LoginPath+"/"+string(loginRole))
}

// Logout godoc
// POST /logout
// Drops the persisted login and redirects to the login form.
func (h *AuthHandler) Logout(c *gin.Context) {
	if s := middleware.GetSession(c); s != nil {
		if err := s.Logout(c.Request.Context()); err != nil {
			h.log.Error().Err(err).Msg("Logout failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
	}
	response.Redirect(c, access.LoginPath)
}

// Me godoc
// GET /me
// Refreshes and returns the signed-in user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	s := middleware.GetSession(c)
	user, err := s.RefreshProfile(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
