package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/classhub/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// every pooled connection to :memory: would get its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, repo domain.UserRepository, email, role string) *domain.User {
	t.Helper()

	user := &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashed_password",
		Role:         role,
		ClassID:      "10A",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepositoryImpl_Create(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := createTestUser(t, repo, "teacher@example.com", domain.RoleTeacher)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := &domain.User{Name: "Other", Email: "teacher@example.com", PasswordHash: "x", Role: domain.RoleStudent}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestUserRepositoryImpl_Find(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	stored := createTestUser(t, repo, "student@example.com", domain.RoleStudent)

	tests := []struct {
		name          string
		find          func() (*domain.User, error)
		expectedError error
	}{
		{
			name:          "find by email",
			find:          func() (*domain.User, error) { return repo.FindByEmail(ctx, "student@example.com") },
			expectedError: nil,
		},
		{
			name:          "find by id",
			find:          func() (*domain.User, error) { return repo.FindByID(ctx, stored.ID) },
			expectedError: nil,
		},
		{
			name:          "unknown email",
			find:          func() (*domain.User, error) { return repo.FindByEmail(ctx, "nobody@example.com") },
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:          "unknown id",
			find:          func() (*domain.User, error) { return repo.FindByID(ctx, 9999) },
			expectedError: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := tt.find()
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, user.ID)
			assert.Equal(t, "Test User", user.Name)
			assert.Equal(t, "student@example.com", user.Email)
			assert.Equal(t, "hashed_password", user.PasswordHash)
			assert.Equal(t, domain.RoleStudent, user.Role)
			assert.Equal(t, "10A", user.ClassID)
		})
	}
}
