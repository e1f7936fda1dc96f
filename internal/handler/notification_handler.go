package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
)

// NotificationHandler manages announcements.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List godoc
// GET /notifications
// Staff see every notification; others only those targeted at their role
// or at everyone.
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.notifications.List(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}

	u := currentUser(c)
	if u != nil && !u.Role.In(model.RoleAdmin, model.RoleTeacher) {
		visible := []model.Notification{}
		for _, n := range items {
			if n.TargetRole == "" || n.TargetRole == u.Role {
				visible = append(visible, n)
			}
		}
		items = visible
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": items})
}

// Create godoc
// POST /notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	var req model.NotificationRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	n, err := h.notifications.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"notification": n})
}

// Update godoc
// PUT /notifications/:id
func (h *NotificationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.NotificationRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	n, err := h.notifications.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notification": n})
}

// Delete godoc
// DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
