package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
	"github.com/mgoudin/learnhub/internal/modules/notification/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preferenceColumns() []string {
	return []string{"id", "user_id", "type", "is_enabled", "delivery_method", "created_at", "updated_at"}
}

func TestPgPreferenceRepository_GetByUserID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := postgres.NewPgPreferenceRepository(db)
	userID := uuid.New()

	rows := sqlmock.NewRows(preferenceColumns()).
		AddRow(uuid.New(), userID, "ADMIN_MESSAGE", true, "InApp", time.Now(), nil).
		AddRow(uuid.New(), userID, "GRADE_RECEIVED", false, "Email", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM notification_preferences`).
		WithArgs(userID).
		WillReturnRows(rows)

	prefs, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, domain.TypeAdminMessage, prefs[0].Type)
	assert.False(t, prefs[1].IsEnabled)
	assert.Equal(t, domain.DeliveryEmail, prefs[1].DeliveryMethod)
}

func TestPgPreferenceRepository_Get_Missing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := postgres.NewPgPreferenceRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM notification_preferences`).
		WithArgs(userID, "QUIZ_REMINDER").
		WillReturnRows(sqlmock.NewRows(preferenceColumns()))

	pref, err := repo.Get(context.Background(), userID, domain.TypeQuizReminder)
	require.NoError(t, err)
	assert.Nil(t, pref)
}

func TestPgPreferenceRepository_Upsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := postgres.NewPgPreferenceRepository(db)
	pref := domain.DefaultPreference(uuid.New(), domain.TypeCourseUpdate)
	pref.IsEnabled = false

	mock.ExpectExec(`INSERT INTO notification_preferences`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), &pref))
	// Upsert fills identity and creation time for first writes.
	assert.NotEqual(t, uuid.Nil, pref.ID)
	assert.False(t, pref.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
