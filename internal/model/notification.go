package model

// Notification is an announcement shown on the console.
type Notification struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	TargetRole Role   `json:"target_role,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// NotificationRequest is the payload for creating or updating a notification.
type NotificationRequest struct {
	Title      string `json:"title" binding:"required,min=2,max=200"`
	Message    string `json:"message" binding:"required,max=2000"`
	TargetRole Role   `json:"target_role" binding:"omitempty,oneof=admin teacher student parent student_parent"`
}

// Banner is a promotional image shown on the dashboard.
type Banner struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
	Link     string `json:"link,omitempty"`
	IsActive bool   `json:"is_active"`
}

// BannerRequest is the payload for creating or updating a banner.
type BannerRequest struct {
	Title    string `json:"title" binding:"required,min=2,max=200"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
	Link     string `json:"link" binding:"omitempty,url"`
	IsActive bool   `json:"is_active"`
}
