package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
)

// BannerHandler manages dashboard banners.
type BannerHandler struct {
	banners *service.BannerService
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(banners *service.BannerService) *BannerHandler {
	return &BannerHandler{banners: banners}
}

// List godoc
// GET /banners
// Admins see every banner, everyone else only active ones.
func (h *BannerHandler) List(c *gin.Context) {
	banners, err := h.banners.List(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	if u := currentUser(c); u == nil || u.Role != model.RoleAdmin {
		active := []model.Banner{}
		for _, b := range banners {
			if b.IsActive {
				active = append(active, b)
			}
		}
		banners = active
	}
	response.Success(c, http.StatusOK, gin.H{"banners": banners})
}

// Create godoc
// POST /banners
func (h *BannerHandler) Create(c *gin.Context) {
	var req model.BannerRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	b, err := h.banners.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"banner": b})
}

// Update godoc
// PUT /banners/:id
func (h *BannerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.BannerRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	b, err := h.banners.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"banner": b})
}

// maxBannerImageBytes bounds an uploaded banner image.
const maxBannerImageBytes = 5 << 20

// UploadImage godoc
// POST /banners/:id/image (multipart, field "file")
// Forwards a new banner image to the backend.
func (h *BannerHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, "Berkas gambar wajib diunggah.")
		return
	}
	if fh.Size > maxBannerImageBytes {
		response.FailWithMessage(c, http.StatusRequestEntityTooLarge, response.ErrValidation, "Ukuran gambar maksimal 5 MB.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer f.Close()

	b, err := h.banners.UploadImage(c.Request.Context(), id, fh.Filename, f)
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"banner": b})
}

// Delete godoc
// DELETE /banners/:id
func (h *BannerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.banners.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
