package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/access"
	"github.com/stemsi/sekolah-console/internal/response"
)

// Gate turns access decisions into HTTP responses.
type Gate struct {
	cookies    sessions.Store
	cookieName string
	log        zerolog.Logger
}

// NewGate creates a Gate that remembers blocked paths in the cookie session.
func NewGate(cookies sessions.Store, cookieName string, log zerolog.Logger) *Gate {
	return &Gate{cookies: cookies, cookieName: cookieName, log: log.With().Str("component", "guard").Logger()}
}

// Guard admits the request only when the route's allow-list lets the
// current login state through.
func (g *Gate) Guard(route access.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := access.Decide(access.ViewOf(GetSession(c)), route.Roles)
		if d.Outcome == access.Render {
			c.Next()
			return
		}
		g.apply(c, d)
	}
}

// Landing redirects the root and unknown paths to the role's landing route.
func (g *Gate) Landing() gin.HandlerFunc {
	return func(c *gin.Context) {
		g.apply(c, access.Landing(access.ViewOf(GetSession(c))))
	}
}

func (g *Gate) apply(c *gin.Context, d access.Decision) {
	switch d.Outcome {
	case access.Wait:
		c.Header("Retry-After", "1")
		response.AbortFail(c, http.StatusAccepted, response.ErrSessionLoading)
	case access.RedirectLogin:
		target := d.Target
		if path := c.Request.URL.RequestURI(); c.Request.Method == http.MethodGet && path != "/" && SafeNext(path) {
			if err := RememberPath(c, g.cookies, g.cookieName, path); err != nil {
				g.log.Warn().Err(err).Msg("Failed to remember requested path")
			}
			target += "?next=" + url.QueryEscape(path)
		}
		response.AbortRedirect(c, target, response.ErrLoginRequired)
	case access.Deny:
		response.AbortFail(c, http.StatusForbidden, response.ErrAccessDenied)
	case access.Redirect:
		response.Redirect(c, d.Target)
	default:
		c.Next()
	}
}

// SafeNext reports whether path is a local console path that may be
// redirected to after login.
func SafeNext(path string) bool {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return false
	}
	return !strings.HasPrefix(path, access.LoginPath)
}
