package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
)

// UserHandler manages user accounts. A handler bound to a role manages only
// users of that role (the students and teachers screens); an unbound one
// manages every account.
type UserHandler struct {
	users *service.UserService
	role  model.Role
}

// NewUserHandler creates a UserHandler for every role.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// NewRoleUserHandler creates a UserHandler limited to role.
func NewRoleUserHandler(users *service.UserService, role model.Role) *UserHandler {
	return &UserHandler{users: users, role: role}
}

// List godoc
// GET /users, GET /students, GET /teachers
// Lists accounts. The unbound handler accepts ?role= to filter.
func (h *UserHandler) List(c *gin.Context) {
	role := h.role
	if role == "" {
		if q := c.Query("role"); q != "" {
			r, ok := model.ParseRole(q)
			if !ok {
				response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, "Peran tidak dikenal.")
				return
			}
			role = r
		}
	}

	users, err := h.users.List(c.Request.Context(), role)
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users, "role": role})
}

// Create godoc
// POST /users, POST /students, POST /teachers
func (h *UserHandler) Create(c *gin.Context) {
	var req model.UserRequest
	if h.role != "" {
		req.Role = h.role
	}
	if !bind(c, &req, func() interface{} { return redactUser(req) }) {
		return
	}
	if h.role != "" {
		req.Role = h.role
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err, redactUser(req))
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// Update godoc
// PUT /users/:id, PUT /students/:id, PUT /teachers/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UserRequest
	if h.role != "" {
		req.Role = h.role
	}
	if !bind(c, &req, func() interface{} { return redactUser(req) }) {
		return
	}
	if h.role != "" {
		req.Role = h.role
	}

	user, err := h.users.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err, redactUser(req))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Delete godoc
// DELETE /users/:id, DELETE /students/:id, DELETE /teachers/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func redactUser(req model.UserRequest) model.UserRequest {
	req.Password = ""
	return req
}
