package domain

import (
	"strings"
	"time"
)

// Roles a user can hold
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleTeacher || role == RoleStudent
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User represents a teacher or a student
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         string
	ClassID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTeacher reports whether the user holds the teacher role
func (u *User) IsTeacher() bool {
	return u != nil && u.Role == RoleTeacher
}

// RegisterInput carries the profile submitted at registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	ClassID  string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User        *User
	AccessToken string
	ExpiresIn   int64
}

// OTPSession is a pending one-time login attempt
type OTPSession struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Handle    string    `json:"handle"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the session is no longer valid at t
func (s *OTPSession) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// OTPIssue is what the caller learns about a freshly issued OTP session.
// The code itself is only delivered out of band.
type OTPIssue struct {
	Handle     string
	TTLSeconds int64
}

// Homework is an assignment published by a teacher to a class
type Homework struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Files       []string   `json:"files"`
	CreatedBy   uint       `json:"createdBy"`
	ClassID     string     `json:"classId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// HomeworkInput carries the fields of a create request
type HomeworkInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	ClassID     string
	Files       []string
}

// HomeworkPatch carries the fields of an update request; nil means unchanged
type HomeworkPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClassID     *string
	Files       []string
}

// Completion records that a student finished a homework
type Completion struct {
	ID          uint      `json:"id"`
	HomeworkID  uint      `json:"homeworkId"`
	StudentID   uint      `json:"studentId"`
	CompletedAt time.Time `json:"completedAt"`
}

// Notification is a message addressed to one user
type Notification struct {
	ID        uint      `json:"id"`
	ToUserID  uint      `json:"toUserId"`
	Message   string    `json:"message"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	ClassID   string `json:"class_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
