package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
)

// AuditRecorder accepts audit entries for asynchronous persistence.
type AuditRecorder interface {
	Record(ctx context.Context, e model.AuditEntry) error
}

// Audit records every state-changing request made by a signed-in user.
// Failures to record are logged and never affect the response.
func Audit(rec AuditRecorder, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return
		}
		// Actor is read after the handler ran so logins are attributed too.
		s := GetSession(c)
		if s == nil {
			return
		}
		u := s.User()
		if u == nil {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		entry := model.AuditEntry{
			RequestID: response.RequestID(c),
			ActorID:   u.ID,
			ActorName: u.Name,
			ActorRole: u.Role,
			Method:    c.Request.Method,
			Path:      path,
			Status:    c.Writer.Status(),
			CreatedAt: time.Now().UTC(),
		}
		if err := rec.Record(context.WithoutCancel(c.Request.Context()), entry); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to record audit entry")
		}
	}
}
