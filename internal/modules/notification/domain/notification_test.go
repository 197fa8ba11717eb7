package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationType_Valid(t *testing.T) {
	for _, typ := range AllTypes() {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, NotificationType("CARRIER_PIGEON").Valid())
	assert.False(t, NotificationType("").Valid())
}

func TestDeliveryMethod_Valid(t *testing.T) {
	assert.True(t, DeliveryInApp.Valid())
	assert.True(t, DeliveryEmail.Valid())
	assert.True(t, DeliveryBoth.Valid())
	assert.False(t, DeliveryMethod("Fax").Valid())
}

func TestDefaultPreference(t *testing.T) {
	userID := uuid.New()
	pref := DefaultPreference(userID, TypeQuizReminder)
	assert.Equal(t, userID, pref.UserID)
	assert.Equal(t, TypeQuizReminder, pref.Type)
	assert.True(t, pref.IsEnabled)
	assert.Equal(t, DeliveryInApp, pref.DeliveryMethod)
}
