package models

import "time"

// Slot defines a bookable time window based on the 'slots' table. Static
// reference data, seeded at startup.
type Slot struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	TimeStart string `json:"timeStart" db:"time_start"` // HH:MM, 24h
	TimeEnd   string `json:"timeEnd" db:"time_end"`
}

// ScheduleRequest defines a proposed meeting based on the
// 'schedule_requests' table. Accepting a pending request materializes a
// Schedule row.
type ScheduleRequest struct {
	ID         int64         `json:"id" db:"id"`
	SenderID   int64         `json:"senderId" db:"sender_id"`
	ReceiverID int64         `json:"receiverId" db:"receiver_id"`
	SlotID     int64         `json:"slotId" db:"slot_id"`
	Days       []string      `json:"days" db:"days"` // Weekday names, e.g. MONDAY
	Status     RequestStatus `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time     `json:"updatedAt" db:"updated_at"`

	// Related entities
	Slot *Slot `json:"slot,omitempty"`
}

// Schedule defines a confirmed recurring meeting based on the 'schedules'
// table.
type Schedule struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	ReceiverID int64     `json:"receiverId" db:"receiver_id"`
	SlotID     int64     `json:"slotId" db:"slot_id"`
	Days       []string  `json:"days" db:"days"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Slot *Slot `json:"slot,omitempty"`
}
