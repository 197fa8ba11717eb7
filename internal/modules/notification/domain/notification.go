package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// NotificationType is the closed set of notification categories. Display
// sites switch exhaustively over these values, so adding a category is a
// compile-visible change.
type NotificationType string

const (
	TypeCourseUpdate           NotificationType = "COURSE_UPDATE"
	TypeEnrollmentConfirmation NotificationType = "ENROLLMENT_CONFIRMATION"
	TypeQuizReminder           NotificationType = "QUIZ_REMINDER"
	TypeGradeReceived          NotificationType = "GRADE_RECEIVED"
	TypeProjectFeedback        NotificationType = "PROJECT_FEEDBACK"
	TypeAdminMessage           NotificationType = "ADMIN_MESSAGE"
	TypeSystemAlert            NotificationType = "SYSTEM_ALERT"
)

// AllTypes lists every valid notification type in display order.
func AllTypes() []NotificationType {
	return []NotificationType{
		TypeCourseUpdate,
		TypeEnrollmentConfirmation,
		TypeQuizReminder,
		TypeGradeReceived,
		TypeProjectFeedback,
		TypeAdminMessage,
		TypeSystemAlert,
	}
}

// Valid reports whether t is one of the known categories.
func (t NotificationType) Valid() bool {
	switch t {
	case TypeCourseUpdate, TypeEnrollmentConfirmation, TypeQuizReminder,
		TypeGradeReceived, TypeProjectFeedback, TypeAdminMessage, TypeSystemAlert:
		return true
	}
	return false
}

// Priority is an ordinal urgency level attached to a notification.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

type Notification struct {
	ID                uuid.UUID        `json:"notificationId" db:"id"`
	UserID            uuid.UUID        `json:"userId" db:"user_id"`
	Type              NotificationType `json:"type" db:"type"`
	Title             string           `json:"title" db:"title"`
	Message           string           `json:"message" db:"message"`
	IsRead            bool             `json:"isRead" db:"is_read"`
	Priority          Priority         `json:"priority" db:"priority"`
	ActionURL         string           `json:"actionUrl,omitempty" db:"action_url"`
	RelatedEntityID   *uuid.UUID       `json:"relatedEntityId,omitempty" db:"related_entity_id"`
	RelatedEntityType string           `json:"relatedEntityType,omitempty" db:"related_entity_type"`
	CreatedAt         time.Time        `json:"createdAt" db:"created_at"`
	// ReadAt is set exactly once, when IsRead first flips to true.
	ReadAt *time.Time `json:"readAt,omitempty" db:"read_at"`
}

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidType          = errors.New("invalid notification type")
)
