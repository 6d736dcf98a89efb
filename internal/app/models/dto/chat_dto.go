package dto

// CreateRoomRequest opens (or returns) a chat room with a tutor
type CreateRoomRequest struct {
	TutorID int64 `json:"tutorId" binding:"required,min=1"`
}

// RoomResponse represents a chat room
type RoomResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	TutorID   int64  `json:"tutorId"`
	CreatedAt string `json:"createdAt"`
}

// SendMessageRequest posts a message into a room
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// MessageResponse represents a chat message
type MessageResponse struct {
	ID         int64  `json:"id"`
	RoomID     int64  `json:"roomId"`
	SenderID   int64  `json:"senderId"`
	SenderName string `json:"senderName,omitempty"`
	Text       string `json:"text"`
	CreatedAt  string `json:"createdAt"`
	DeletedAt  string `json:"deletedAt,omitempty"`
}
