package model

// AcademicSession is one meeting of a subject.
type AcademicSession struct {
	ID          int    `json:"id"`
	SubjectID   int    `json:"subject_id"`
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}

// AcademicSessionRequest is the payload for creating or updating a session.
type AcademicSessionRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	SubjectID   int    `json:"subject_id"`
	Date        string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" binding:"max=1000"`
	Content     string `json:"content"`
}
