package model

// Region is the top-level geographic grouping of classes.
type Region struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Class is a group of students inside a region. Its name always starts with a
// grade code, optionally followed by a free-text suffix ("SD1-A").
type Class struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RegionID int    `json:"region_id"`
}

// RegionRequest is the payload for creating or updating a region.
type RegionRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=255"`
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	Name     string `json:"name" binding:"required,class_name"`
	RegionID int    `json:"region_id"`
}
