package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
	"golang.org/x/sync/errgroup"
)

// SessionHandler manages the academic sessions of a subject.
type SessionHandler struct {
	sessions *service.AcademicSessionService
	subjects *service.SubjectService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *service.AcademicSessionService, subjects *service.SubjectService) *SessionHandler {
	return &SessionHandler{sessions: sessions, subjects: subjects}
}

// List godoc
// GET /subjects/:subjectId/sessions
// Shows a subject with its sessions.
func (h *SessionHandler) List(c *gin.Context) {
	subjectID, ok := parseID(c, "subjectId")
	if !ok {
		return
	}

	var (
		subject  *model.Subject
		sessions []model.AcademicSession
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		s, err := h.subjects.Get(ctx, subjectID)
		subject = s
		return err
	})
	g.Go(func() error {
		list, err := h.sessions.ListBySubject(ctx, subjectID)
		sessions = list
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subject": subject, "sessions": sessions})
}

// Create godoc
// POST /subjects/:subjectId/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	subjectID, ok := parseID(c, "subjectId")
	if !ok {
		return
	}
	var req model.AcademicSessionRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	req.SubjectID = subjectID

	s, err := h.sessions.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"session": s})
}

// Show godoc
// GET /subjects/:subjectId/sessions/:sessionId
func (h *SessionHandler) Show(c *gin.Context) {
	subjectID, ok := parseID(c, "subjectId")
	if !ok {
		return
	}
	id, ok := parseID(c, "sessionId")
	if !ok {
		return
	}
	s, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err, nil)
		return
	}
	if s.SubjectID != 0 && s.SubjectID != subjectID {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": s})
}

// Update godoc
// PUT /subjects/:subjectId/sessions/:sessionId
func (h *SessionHandler) Update(c *gin.Context) {
	subjectID, ok := parseID(c, "subjectId")
	if !ok {
		return
	}
	id, ok := parseID(c, "sessionId")
	if !ok {
		return
	}
	var req model.AcademicSessionRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	req.SubjectID = subjectID

	s, err := h.sessions.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": s})
}

// Delete godoc
// DELETE /subjects/:subjectId/sessions/:sessionId
func (h *SessionHandler) Delete(c *gin.Context) {
	if _, ok := parseID(c, "subjectId"); !ok {
		return
	}
	id, ok := parseID(c, "sessionId")
	if !ok {
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
