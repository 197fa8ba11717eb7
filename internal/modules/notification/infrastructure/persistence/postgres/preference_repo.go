package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
)

type PgPreferenceRepository struct {
	db *sqlx.DB
}

func NewPgPreferenceRepository(db *sqlx.DB) *PgPreferenceRepository {
	return &PgPreferenceRepository{db: db}
}

func (r *PgPreferenceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Preference, error) {
	query := `
		SELECT * FROM notification_preferences
		WHERE user_id = $1
		ORDER BY type
	`
	prefs := []domain.Preference{}
	if err := r.db.SelectContext(ctx, &prefs, query, userID); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *PgPreferenceRepository) Get(ctx context.Context, userID uuid.UUID, t domain.NotificationType) (*domain.Preference, error) {
	query := `
		SELECT * FROM notification_preferences
		WHERE user_id = $1 AND type = $2
	`
	var pref domain.Preference
	err := r.db.GetContext(ctx, &pref, query, userID, t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// Upsert inserts the preference on first write and updates it afterwards,
// stamping updated_at only on the update path like the original records did.
func (r *PgPreferenceRepository) Upsert(ctx context.Context, pref *domain.Preference) error {
	if pref.ID == uuid.Nil {
		pref.ID = uuid.New()
	}
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO notification_preferences (id, user_id, type, is_enabled, delivery_method, created_at)
		VALUES (:id, :user_id, :type, :is_enabled, :delivery_method, :created_at)
		ON CONFLICT (user_id, type) DO UPDATE
		SET is_enabled = EXCLUDED.is_enabled,
		    delivery_method = EXCLUDED.delivery_method,
		    updated_at = NOW()
	`
	_, err := r.db.NamedExecContext(ctx, query, pref)
	return err
}
