package model

// User is the snapshot of the signed-in account returned by the backend at
// login or profile refresh. Role, Grade and ClassID drive access filtering.
type User struct {
	ID       int    `json:"id"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Grade    string `json:"grade,omitempty"`
	ClassID  *int   `json:"class_id,omitempty"`
	RegionID *int   `json:"region_id,omitempty"`
}

// LoginRequest is the console login form.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,max=255"`
	Password   string `json:"password" binding:"required,min=4,max=128"`
	Role       Role   `json:"role" binding:"omitempty,oneof=admin teacher student parent student_parent"`
	Name       string `json:"name" binding:"max=100"`
}

// RegisterRequest is the self-registration form forwarded to the backend.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Role     Role   `json:"role" binding:"required,oneof=student parent student_parent"`
}

// UserRequest creates or updates a user account from the administration screens.
type UserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password,omitempty" binding:"omitempty,min=6,max=128"`
	Phone    string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Role     Role   `json:"role" binding:"required,oneof=admin teacher student parent student_parent"`
	Grade    string `json:"grade,omitempty" binding:"omitempty,grade_code"`
	ClassID  *int   `json:"class_id,omitempty"`
	RegionID *int   `json:"region_id,omitempty"`
}
