package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
)

// SubjectHandler manages the subjects of a class.
type SubjectHandler struct {
	subjects *service.SubjectService
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(subjects *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// Create godoc
// POST /classes/:regionId/class/:classId/subjects
// Adds a subject and returns the class's refreshed subject list.
func (h *SubjectHandler) Create(c *gin.Context) {
	if _, ok := parseID(c, "regionId"); !ok {
		return
	}
	classID, ok := parseID(c, "classId")
	if !ok {
		return
	}
	var req model.SubjectRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	req.ClassID = classID

	ctx := c.Request.Context()
	sub, err := h.subjects.Create(ctx, req)
	if err != nil {
		fail(c, err, req)
		return
	}
	data := gin.H{"subject": sub}
	// The subject exists now; a failed re-read only leaves the list out.
	if subjects, err := h.subjects.ListByClass(ctx, classID); err != nil {
		_ = c.Error(err)
	} else {
		data["subjects"] = subjects
	}
	response.Success(c, http.StatusCreated, data)
}

// Update godoc
// PUT /subjects/:subjectId
func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "subjectId")
	if !ok {
		return
	}
	var req model.SubjectRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}

	ctx := c.Request.Context()
	if req.ClassID == 0 {
		current, err := h.subjects.Get(ctx, id)
		if err != nil {
			fail(c, err, nil)
			return
		}
		req.ClassID = current.ClassID
	}
	sub, err := h.subjects.Update(ctx, id, req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subject": sub})
}

// Delete godoc
// DELETE /subjects/:subjectId
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "subjectId")
	if !ok {
		return
	}
	if err := h.subjects.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
