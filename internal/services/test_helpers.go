package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/infrastructure/repositories"
	"github.com/you/classhub/internal/mocks"
)

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService) domain.AuthService {
	t.Helper()

	// Use provided mocks or create defaults
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if otpSvc == nil {
		otpSvc = mocks.NewMockOTPService()
	}

	return NewAuthService(userRepo, passwordSvc, tokenSvc, otpSvc)
}

// otpFixture bundles an OTP service backed by miniredis with its collaborators
type otpFixture struct {
	svc    *OTPServiceImpl
	users  *mocks.MockUserRepository
	mailer *mocks.MockMailer
	redis  *miniredis.Miniredis
	client *redis.Client
}

// createOTPServiceForTest wires the OTP service to a real Redis session store
// running in miniredis. Only users listed in known resolve.
func createOTPServiceForTest(t *testing.T, known ...*domain.User) *otpFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := mocks.NewMockUserRepository()
	byEmail := make(map[string]*domain.User)
	for _, u := range known {
		byEmail[u.Email] = u
	}
	users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if u, ok := byEmail[email]; ok {
			return u, nil
		}
		return nil, domain.ErrUserNotFound
	}

	mailer := mocks.NewMockMailer()
	svc := NewOTPService(users, repositories.NewOTPSessionRepository(client), mailer, OTPConfig{TTL: 5 * time.Minute})

	return &otpFixture{
		svc:    svc.(*OTPServiceImpl),
		users:  users,
		mailer: mailer,
		redis:  mr,
		client: client,
	}
}

// createValidUser creates a student entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Name:         "Student One",
		Email:        "test@example.com",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleStudent,
		ClassID:      "10A",
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createTeacherUser creates a teacher entity for testing
func createTeacherUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.ID = 2
	user.Name = "Teacher One"
	user.Email = "teacher@example.com"
	user.Role = domain.RoleTeacher
	return user
}

// assertAuthResult checks the parts of an AuthResult every login path shares
func assertAuthResult(t *testing.T, result *domain.AuthResult, expectedUser *domain.User) {
	t.Helper()

	if result == nil {
		t.Fatal("auth result is nil")
	}
	if result.User == nil || result.User.ID != expectedUser.ID {
		t.Fatalf("expected user %d, got %+v", expectedUser.ID, result.User)
	}
	if result.AccessToken == "" {
		t.Error("expected access token to be set")
	}
	if result.ExpiresIn <= 0 {
		t.Errorf("expected positive expiry, got %d", result.ExpiresIn)
	}
}
