package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/mocks"
)

func setupAuthRouter(authSvc domain.AuthService) *gin.Engine {
	r := newTestEngine()
	h := NewAuthHandlers(authSvc)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/request-otp", h.RequestOTP)
	r.POST("/auth/verify-otp", h.VerifyOTP)
	r.GET("/auth/me", withActor(3, domain.RoleStudent), h.Me)
	return r
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "success",
			body:           RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1", Role: "student", ClassID: "10A"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed body",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
		{
			name: "duplicate email",
			body: RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1", Role: "student", ClassID: "10A"},
			setupMocks: func(m *mocks.MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Email already registered",
		},
		{
			name: "weak password",
			body: RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "123", Role: "student"},
			setupMocks: func(m *mocks.MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
					return nil, domain.ErrWeakPassword
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Password must be at least 6 characters",
		},
		{
			name: "storage failure is not leaked",
			body: RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1", Role: "teacher"},
			setupMocks: func(m *mocks.MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
					return nil, errors.New("pq: connection refused")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			r := setupAuthRouter(authSvc)

			w := doJSON(t, r, http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body["message"])
				assert.NotContains(t, w.Body.String(), "pq:")
				return
			}
			assert.Equal(t, "mock_access_token", body["token"])
			user := body["user"].(map[string]any)
			assert.Equal(t, "Ann", user["name"])
			assert.Equal(t, "10A", user["classId"])
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		if password != "right" {
			return nil, domain.ErrInvalidCredentials
		}
		return &domain.AuthResult{
			User:        &domain.User{ID: 9, Name: "Tom", Email: email, Role: domain.RoleTeacher},
			AccessToken: "tok",
			ExpiresIn:   86400,
		}, nil
	}
	r := setupAuthRouter(authSvc)

	w := doJSON(t, r, http.MethodPost, "/auth/login", LoginRequest{Email: "tom@example.com", Password: "right"})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "tok", body["token"])
	assert.Equal(t, float64(86400), body["expires_in"])

	w = doJSON(t, r, http.MethodPost, "/auth/login", LoginRequest{Email: "tom@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w)["message"])
}

func TestAuthHandlers_RequestOTP(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{name: "success", body: OTPRequest{Email: "a@example.com"}, expectedStatus: http.StatusOK},
		{name: "missing email", body: OTPRequest{}, expectedStatus: http.StatusBadRequest, expectedMsg: "Email is required"},
		{name: "unknown user", body: OTPRequest{Email: "a@example.com"}, err: domain.ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "User not found"},
		{
			name:           "mail not configured",
			body:           OTPRequest{Email: "a@example.com"},
			err:            fmt.Errorf("failed to send OTP: %w", domain.NewMailConfigurationError(errors.New("smtp host missing"))),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Email service not configured. Please try later.",
		},
		{
			name:           "mail transport failure",
			body:           OTPRequest{Email: "a@example.com"},
			err:            fmt.Errorf("failed to send OTP: %w", domain.NewMailTransportError(errors.New("dial tcp: timeout"))),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Unable to send OTP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.err != nil {
				authSvc.RequestOTPFunc = func(ctx context.Context, email string) (*domain.OTPIssue, error) {
					return &domain.OTPIssue{Handle: "h", TTLSeconds: 300}, tt.err
				}
			}
			r := setupAuthRouter(authSvc)

			w := doJSON(t, r, http.MethodPost, "/auth/request-otp", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body["message"])
				assert.Nil(t, body["sessionId"])
				return
			}
			assert.Equal(t, "mock-handle", body["sessionId"])
			assert.Equal(t, float64(300), body["expiresIn"])
		})
	}
}

func TestAuthHandlers_VerifyOTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "superseded or used session", err: domain.ErrInvalidSession, expectedStatus: http.StatusBadRequest, expectedMsg: "Invalid or expired session"},
		{name: "expired", err: domain.ErrOTPExpired, expectedStatus: http.StatusBadRequest, expectedMsg: "OTP expired"},
		{name: "wrong code", err: domain.ErrOTPInvalid, expectedStatus: http.StatusBadRequest, expectedMsg: "Invalid OTP"},
		{name: "attempts spent", err: domain.ErrOTPAttemptsExceeded, expectedStatus: http.StatusBadRequest, expectedMsg: "Too many attempts. Please request a new OTP."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			var gotEmail, gotCode, gotHandle string
			authSvc.VerifyOTPFunc = func(ctx context.Context, email, code, handle string) (*domain.AuthResult, error) {
				gotEmail, gotCode, gotHandle = email, code, handle
				if tt.err != nil {
					return nil, tt.err
				}
				return &domain.AuthResult{User: &domain.User{ID: 1, Email: email}, AccessToken: "tok"}, nil
			}
			r := setupAuthRouter(authSvc)

			w := doJSON(t, r, http.MethodPost, "/auth/verify-otp",
				OTPVerifyRequest{Email: "a@example.com", OTP: "123456", SessionID: "h1"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "a@example.com", gotEmail)
			assert.Equal(t, "123456", gotCode)
			assert.Equal(t, "h1", gotHandle)
			body := decode(t, w)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body["message"])
				return
			}
			assert.Equal(t, "tok", body["token"])
		})
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	r := setupAuthRouter(authSvc)

	w := doJSON(t, r, http.MethodGet, "/auth/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, float64(3), user["id"])
	assert.Equal(t, "10A", user["classId"])
}
