package dto

// CreateMatchingRequestRequest is a student's request for a specific tutor
type CreateMatchingRequestRequest struct {
	TutorID int64 `json:"tutorId" binding:"required,min=1"`
}

// MatchingRequestResponse represents a matching request with resolved names
type MatchingRequestResponse struct {
	ID          int64  `json:"id"`
	StudentID   int64  `json:"studentId"`
	TutorID     int64  `json:"tutorId"`
	Status      string `json:"status"`
	StaffID     *int64 `json:"staffId,omitempty"`
	StudentName string `json:"studentName,omitempty"`
	TutorName   string `json:"tutorName,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// MatchingResponse represents an active pairing
type MatchingResponse struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"studentId"`
	TutorID   int64  `json:"tutorId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}
