package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditReader lists stored audit entries.
type AuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

// AuditHandler exposes the console audit trail to admins.
type AuditHandler struct {
	audit AuditReader
}

// NewAuditHandler creates a new AuditHandler. A nil reader makes List
// answer 503.
func NewAuditHandler(audit AuditReader) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List godoc
// GET /audit?limit=50
// Lists the newest console mutations.
func (h *AuditHandler) List(c *gin.Context) {
	if h.audit == nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrAuditUnavailable)
		return
	}

	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, "limit harus berupa bilangan positif.")
			return
		}
		limit = min(n, maxAuditLimit)
	}

	entries, err := h.audit.ListRecent(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}
