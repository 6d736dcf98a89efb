package dto

import (
	"time"

	"github.com/tutorlink/tutorlink/internal/app/models"
)

// NotificationResponse represents a persisted notification
type NotificationResponse struct {
	ID               int64  `json:"id"`
	NotificationFrom int64  `json:"notificationFrom"`
	NotificationTo   int64  `json:"notificationTo"`
	Title            string `json:"title"`
	BlogID           *int64 `json:"blogId,omitempty"`
	Status           string `json:"status"`
	CreatedAt        string `json:"createdAt"`
}

// NewNotificationResponse maps a notification model to its response form
func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:               n.ID,
		NotificationFrom: n.NotificationFrom,
		NotificationTo:   n.NotificationTo,
		Title:            n.Title,
		BlogID:           n.BlogID,
		Status:           string(n.Status),
		CreatedAt:        n.CreatedAt.Format(time.RFC3339),
	}
}

// DashboardSummaryResponse aggregates platform counts for staff reporting
type DashboardSummaryResponse struct {
	UsersByRole        map[string]int64 `json:"usersByRole"`
	RequestsByStatus   map[string]int64 `json:"requestsByStatus"`
	ActiveMatchings    int64            `json:"activeMatchings"`
	Rooms              int64            `json:"rooms"`
	Messages           int64            `json:"messages"`
	BlogsByStatus      map[string]int64 `json:"blogsByStatus"`
	UnreadNotification int64            `json:"unreadNotifications"`
	OnlineConnections  int              `json:"onlineConnections"`
}

// UploadResponse returns the accessible URL of a stored file
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}
