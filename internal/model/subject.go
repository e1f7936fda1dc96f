package model

// Subject is a course taught within one class.
type Subject struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ClassID   int    `json:"class_id"`
	TeacherID *int   `json:"teacher_id,omitempty"`
}

// SubjectRequest is the payload for creating or updating a subject.
type SubjectRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	ClassID   int    `json:"class_id"`
	TeacherID *int   `json:"teacher_id,omitempty"`
}
