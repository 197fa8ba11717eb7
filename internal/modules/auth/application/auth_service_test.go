package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mgoudin/learnhub/internal/modules/auth/domain"
	"github.com/mgoudin/learnhub/internal/shared/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userRepoMock struct {
	createFn     func(context.Context, *domain.User) error
	getByEmailFn func(context.Context, string) (*domain.User, error)
	getByIDFn    func(context.Context, uuid.UUID) (*domain.User, error)
}

func (m userRepoMock) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}
func (m userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

const secret = "auth-test-secret"

func TestAuthService_Register(t *testing.T) {
	t.Run("hashes password and defaults role", func(t *testing.T) {
		var created *domain.User
		repo := userRepoMock{
			createFn: func(_ context.Context, u *domain.User) error {
				created = u
				return nil
			},
		}
		svc := NewAuthService(repo, secret, time.Hour)

		user, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "ada@example.com",
			Password: "hunter2hunter2",
			Name:     "Ada",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, user, created)
		assert.Equal(t, domain.RoleStudent, created.Role)
		assert.NotEqual(t, "hunter2hunter2", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2hunter2")))
	})

	t.Run("email taken", func(t *testing.T) {
		repo := userRepoMock{
			createFn: func(context.Context, *domain.User) error { return domain.ErrEmailTaken },
		}
		svc := NewAuthService(repo, secret, time.Hour)

		_, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "ada@example.com",
			Password: "hunter2hunter2",
			Name:     "Ada",
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		Name:         "Ada",
		Role:         domain.RoleAdmin,
	}

	t.Run("success", func(t *testing.T) {
		repo := userRepoMock{
			getByEmailFn: func(context.Context, string) (*domain.User, error) { return stored, nil },
		}
		svc := NewAuthService(repo, secret, time.Hour)

		token, user, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ada@example.com",
			Password: "correct-password",
		})
		require.NoError(t, err)
		assert.Equal(t, stored, user)

		claims, err := utils.ValidateToken(token, secret)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := userRepoMock{
			getByEmailFn: func(context.Context, string) (*domain.User, error) { return stored, nil },
		}
		svc := NewAuthService(repo, secret, time.Hour)

		_, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		repo := userRepoMock{
			getByEmailFn: func(context.Context, string) (*domain.User, error) {
				return nil, domain.ErrUserNotFound
			},
		}
		svc := NewAuthService(repo, secret, time.Hour)

		_, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
