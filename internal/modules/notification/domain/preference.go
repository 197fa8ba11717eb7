package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryMethod says how a notification category reaches the user.
type DeliveryMethod string

const (
	DeliveryInApp DeliveryMethod = "InApp"
	DeliveryEmail DeliveryMethod = "Email"
	DeliveryBoth  DeliveryMethod = "Both"
)

func (d DeliveryMethod) Valid() bool {
	switch d {
	case DeliveryInApp, DeliveryEmail, DeliveryBoth:
		return true
	}
	return false
}

// Preference is a per-user, per-type delivery setting. It gates future
// dispatch only; notifications already stored are unaffected by changes.
type Preference struct {
	ID             uuid.UUID        `json:"preferenceId" db:"id"`
	UserID         uuid.UUID        `json:"userId" db:"user_id"`
	Type           NotificationType `json:"notificationType" db:"type"`
	IsEnabled      bool             `json:"isEnabled" db:"is_enabled"`
	DeliveryMethod DeliveryMethod   `json:"deliveryMethod" db:"delivery_method"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      *time.Time       `json:"updatedAt,omitempty" db:"updated_at"`
}

// DefaultPreference is what a user gets for a type they never configured.
func DefaultPreference(userID uuid.UUID, t NotificationType) Preference {
	return Preference{
		UserID:         userID,
		Type:           t,
		IsEnabled:      true,
		DeliveryMethod: DeliveryInApp,
	}
}
