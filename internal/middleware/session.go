package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/auth"
	"github.com/stemsi/sekolah-console/internal/response"
)

const (
	// ContextKeyAuth is the Gin context key for the request's *auth.Session.
	ContextKeyAuth = "auth_session"

	cookieKeySID      = "sid"
	cookieKeyRedirect = "redirect_after_login"
)

// Sessions binds each browser to a session id kept in a signed cookie and
// opens its auth session. API calls made with the request context carry
// that session's credentials.
func Sessions(cookies sessions.Store, cookieName string, mgr *auth.Manager, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs, err := cookies.Get(c.Request, cookieName)
		if err != nil {
			// A cookie signed with an old secret yields a fresh session.
			log.Debug().Err(err).Msg("Discarding unreadable session cookie")
		}

		sid, _ := cs.Values[cookieKeySID].(string)
		if sid == "" {
			sid = uuid.New().String()
			cs.Values[cookieKeySID] = sid
			if err := cs.Save(c.Request, c.Writer); err != nil {
				log.Error().Err(err).Msg("Failed to save session cookie")
				response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
				return
			}
		}

		s, err := mgr.Open(c.Request.Context(), sid)
		if err != nil {
			// The store is unreachable: treat the browser as signed out.
			log.Error().Err(err).Str("sid", sid).Msg("Failed to restore session")
		}

		c.Set(ContextKeyAuth, s)
		c.Request = c.Request.WithContext(apiclient.WithCredentials(c.Request.Context(), s))
		c.Next()
	}
}

// GetSession returns the auth session opened for the request.
func GetSession(c *gin.Context) *auth.Session {
	val, exists := c.Get(ContextKeyAuth)
	if !exists {
		return nil
	}
	s, ok := val.(*auth.Session)
	if !ok {
		return nil
	}
	return s
}

// RememberPath stores path as the place to return to after login.
func RememberPath(c *gin.Context, cookies sessions.Store, cookieName, path string) error {
	cs, _ := cookies.Get(c.Request, cookieName)
	cs.Values[cookieKeyRedirect] = path
	return cs.Save(c.Request, c.Writer)
}

// TakeRememberedPath returns and forgets the path stored by RememberPath.
func TakeRememberedPath(c *gin.Context, cookies sessions.Store, cookieName string) string {
	cs, _ := cookies.Get(c.Request, cookieName)
	path, _ := cs.Values[cookieKeyRedirect].(string)
	if path == "" {
		return ""
	}
	delete(cs.Values, cookieKeyRedirect)
	_ = cs.Save(c.Request, c.Writer)
	return path
}

// Flash queues msg for the next request that calls TakeFlash.
func Flash(c *gin.Context, cookies sessions.Store, cookieName, msg string) error {
	cs, _ := cookies.Get(c.Request, cookieName)
	cs.AddFlash(msg)
	return cs.Save(c.Request, c.Writer)
}

// TakeFlash returns the newest queued flash message and drops the queue.
func TakeFlash(c *gin.Context, cookies sessions.Store, cookieName string) string {
	cs, _ := cookies.Get(c.Request, cookieName)
	flashes := cs.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	_ = cs.Save(c.Request, c.Writer)
	msg, _ := flashes[len(flashes)-1].(string)
	return msg
}
