package models

import "time"

// Notification defines a persisted notification record based on the
// 'notifications' table. The row is the durable record; the live websocket
// push is best-effort only.
type Notification struct {
	ID               int64              `json:"id" db:"id"`
	NotificationFrom int64              `json:"notificationFrom" db:"notification_from"`
	NotificationTo   int64              `json:"notificationTo" db:"notification_to"`
	Title            string             `json:"title" db:"title"`
	BlogID           *int64             `json:"blogId,omitempty" db:"blog_id"` // Set for comment notifications (nullable)
	Status           NotificationStatus `json:"status" db:"status"`
	CreatedAt        time.Time          `json:"createdAt" db:"created_at"`
}
