package models

import "time"

// Room defines a chat channel between exactly two participants, based on the
// 'rooms' table. Rooms are created lazily on first contact. The duplicate
// check matches the exact ordered (user_id, tutor_id) pair only: (A,B) and
// (B,A) are distinct rooms. Known asymmetry, kept until the intended
// semantics are confirmed.
type Room struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	TutorID   int64     `json:"tutorId" db:"tutor_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	User  *User `json:"user,omitempty"`
	Tutor *User `json:"tutor,omitempty"`
}

// Message defines a chat message based on the 'messages' table. Messages are
// soft-deleted via DeletedAt; reads currently return soft-deleted rows as
// well, matching the original behavior.
type Message struct {
	ID        int64      `json:"id" db:"id"`
	RoomID    int64      `json:"roomId" db:"room_id"`
	SenderID  int64      `json:"senderId" db:"sender_id"`
	Text      string     `json:"text" db:"text"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`

	// Related entities
	Sender *User `json:"sender,omitempty"`
}
