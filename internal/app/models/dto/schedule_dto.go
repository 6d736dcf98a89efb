package dto

// CreateScheduleRequestRequest proposes a recurring meeting in a slot
type CreateScheduleRequestRequest struct {
	ReceiverID int64    `json:"receiverId" binding:"required,min=1"`
	SlotID     int64    `json:"slotId" binding:"required,min=1"`
	Days       []string `json:"days" binding:"required,min=1,dive,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
}

// ScheduleRequestResponse represents a proposed meeting
type ScheduleRequestResponse struct {
	ID         int64    `json:"id"`
	SenderID   int64    `json:"senderId"`
	ReceiverID int64    `json:"receiverId"`
	SlotID     int64    `json:"slotId"`
	SlotName   string   `json:"slotName,omitempty"`
	Days       []string `json:"days"`
	Status     string   `json:"status"`
	CreatedAt  string   `json:"createdAt"`
}

// ScheduleResponse represents a confirmed recurring meeting
type ScheduleResponse struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"userId"`
	ReceiverID int64    `json:"receiverId"`
	SlotID     int64    `json:"slotId"`
	SlotName   string   `json:"slotName,omitempty"`
	Days       []string `json:"days"`
	CreatedAt  string   `json:"createdAt"`
}

// CreateSlotRequest defines a new bookable time window. Times are HH:MM, 24h.
type CreateSlotRequest struct {
	Name      string `json:"name" binding:"required"`
	TimeStart string `json:"timeStart" binding:"required,len=5"`
	TimeEnd   string `json:"timeEnd" binding:"required,len=5"`
}

// SlotResponse represents a bookable time window
type SlotResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	TimeStart string `json:"timeStart"`
	TimeEnd   string `json:"timeEnd"`
}
