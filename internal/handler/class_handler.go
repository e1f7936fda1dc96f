package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/hierarchy"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
)

// ClassHandler serves the region → grade → class drill-down and its
// administration.
type ClassHandler struct {
	regions *service.RegionService
	classes *service.ClassService
	nav     *service.NavigationService
	log     zerolog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(regions *service.RegionService, classes *service.ClassService, nav *service.NavigationService, log zerolog.Logger) *ClassHandler {
	return &ClassHandler{regions: regions, classes: classes, nav: nav, log: log}
}

// Regions godoc
// GET /classes
// Lists every region.
func (h *ClassHandler) Regions(c *gin.Context) {
	regions, err := h.regions.List(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"regions": regions})
}

// CreateRegion godoc
// POST /classes
func (h *ClassHandler) CreateRegion(c *gin.Context) {
	var req model.RegionRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	region, err := h.regions.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"region": region})
}

// Region godoc
// GET /classes/:regionId
// Shows a region with the grade categories visible to the user.
func (h *ClassHandler) Region(c *gin.Context) {
	regionID, ok := parseID(c, "regionId")
	if !ok {
		return
	}
	view, err := h.nav.Region(c.Request.Context(), regionID, currentUser(c))
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// UpdateRegion godoc
// PUT /classes/:regionId
func (h *ClassHandler) UpdateRegion(c *gin.Context) {
	regionID, ok := parseID(c, "regionId")
	if !ok {
		return
	}
	var req model.RegionRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	region, err := h.regions.Update(c.Request.Context(), regionID, req)
	if err != nil {
		fail(c, err, req)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"region": region})
}

// DeleteRegion godoc
// DELETE /classes/:regionId
func (h *ClassHandler) DeleteRegion(c *gin.Context) {
	regionID, ok := parseID(c, "regionId")
	if !ok {
		return
	}
	if err := h.regions.Delete(c.Request.Context(), regionID); err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": regionID})
}

// Category godoc
// GET /classes/:regionId/grade/:category
// Lists the visible grades of one category with their classes.
func (h *ClassHandler) Category(c *gin.Context) {
	regionID, ok := parseID(c, "regionId")
	if !ok {
		return
	}
	cat, ok := hierarchy.ParseCategory(c.Param("category"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	view, err := h.nav.Category(c.Request.Context(), regionID, cat, currentUser(c))
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// CreateClass godoc
// POST /classes/:regionId/class
// Adds a class to the region and returns the refreshed category it falls in.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	regionID, ok := parseID(c, "regionId")
	if !ok {
		return
	}
	var req model.ClassRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	req.RegionID = regionID

	ctx := c.Request.Context()
	class, err := h.classes.Create(ctx, req)
	if err != nil {
		fail(c, err, req)
		return
	}
	h.respondWithCategory(c, http.StatusCreated, regionID, class)
}

// Class godoc
// GET /classes/:regionId/class/:classId
// Opens a class with its subjects. Students may open only their own class.
func (h *ClassHandler) Class(c *gin.Context) {
	regionID, ok := parseID(c, "regionId")
	if !ok {
		return
	}
	classID, ok := parseID(c, "classId")
	if !ok {
		return
	}
	view, err := h.nav.Class(c.Request.Context(), regionID, classID, currentUser(c))
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// UpdateClass godoc
// PUT /classes/:regionId/class/:classId
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	regionID, ok := parseID(c, "regionId")
	if !ok {
		return
	}
	classID, ok := parseID(c, "classId")
	if !ok {
		return
	}
	var req model.ClassRequest
	if !bind(c, &req, func() interface{} { return req }) {
		return
	}
	req.RegionID = regionID

	class, err := h.classes.Update(c.Request.Context(), classID, req)
	if err != nil {
		fail(c, err, req)
		return
	}
	h.respondWithCategory(c, http.StatusOK, regionID, class)
}

// DeleteClass godoc
// DELETE /classes/:regionId/class/:classId
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	if _, ok := parseID(c, "regionId"); !ok {
		return
	}
	classID, ok := parseID(c, "classId")
	if !ok {
		return
	}
	if err := h.classes.Delete(c.Request.Context(), classID); err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": classID})
}

// respondWithCategory re-reads the category class belongs to so the client
// shows the list as the backend now has it. The change already happened, so a
// failed re-read only drops the category from the response.
func (h *ClassHandler) respondWithCategory(c *gin.Context, status, regionID int, class *model.Class) {
	data := gin.H{"class": class}
	if grade, ok := hierarchy.MatchGradeCode(class.Name); ok {
		cat, _ := hierarchy.CategoryOf(grade)
		view, err := h.nav.Category(c.Request.Context(), regionID, cat, currentUser(c))
		if err != nil {
			h.log.Warn().Err(err).Int("region_id", regionID).Int("class_id", class.ID).Msg("Failed to refresh category after class change")
		} else {
			data["category"] = view
		}
	}
	response.Success(c, status, data)
}
