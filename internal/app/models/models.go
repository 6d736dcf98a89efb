package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
	RoleStaff RoleType = "STAFF"
	RoleTutor RoleType = "TUTOR"
	RoleUser  RoleType = "USER"
)

// ValidRoles lists every role the platform recognizes
var ValidRoles = []RoleType{RoleAdmin, RoleStaff, RoleTutor, RoleUser}

// IsValidRole reports whether the given role is one the platform recognizes
func IsValidRole(role RoleType) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// RequestStatus represents the lifecycle state of a matching or schedule request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// ModerationStatus represents the moderation state of user-generated content
type ModerationStatus string

const (
	ModerationStatusPending  ModerationStatus = "PENDING"
	ModerationStatusApproved ModerationStatus = "APPROVED"
	ModerationStatusRejected ModerationStatus = "REJECTED"
)

// NotificationStatus represents whether a notification has been read
type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "UNREAD"
	NotificationStatusRead   NotificationStatus = "READ"
)

// MatchingStatusOn marks an active student-tutor pairing
const MatchingStatusOn = "ON"
