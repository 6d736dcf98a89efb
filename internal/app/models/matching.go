package models

import "time"

// MatchingRequest defines a student's request for a specific tutor, based on
// the 'matching_requests' table. Created with status PENDING; only staff and
// admin accounts may transition it, and only while it is still pending.
type MatchingRequest struct {
	ID        int64         `json:"id" db:"id"`
	StudentID int64         `json:"studentId" db:"student_id"`
	TutorID   int64         `json:"tutorId" db:"tutor_id"`
	Status    RequestStatus `json:"status" db:"status"`
	StaffID   *int64        `json:"staffId,omitempty" db:"staff_id"` // Staff member who decided the request (nullable)
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`

	// Related entities
	Student *User `json:"student,omitempty"`
	Tutor   *User `json:"tutor,omitempty"`
}

// Matching defines an active student-tutor pairing, based on the 'matchings'
// table. Distinct from the request that created it.
type Matching struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	TutorID   int64     `json:"tutorId" db:"tutor_id"`
	Status    string    `json:"status" db:"status"` // Defaults to ON
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
