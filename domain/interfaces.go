package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

// OTPSessionRepository stores pending OTP sessions. Entries expire on their own
// once ExpiresAt has passed.
type OTPSessionRepository interface {
	// Upsert replaces any live session for session.Email with session
	Upsert(ctx context.Context, session *OTPSession) error
	// FindByHandle returns ErrInvalidSession when no such session exists
	FindByHandle(ctx context.Context, handle string) (*OTPSession, error)
	// Consume deletes the session and reports whether this call removed it
	Consume(ctx context.Context, session *OTPSession) (bool, error)
	// RecordFailure counts a wrong code against the session and returns the
	// running total, or 0 when the session no longer exists
	RecordFailure(ctx context.Context, session *OTPSession) (int64, error)
}

// HomeworkRepository defines homework data access operations
type HomeworkRepository interface {
	Create(ctx context.Context, hw *Homework) error
	FindByID(ctx context.Context, id uint) (*Homework, error)
	ListByClass(ctx context.Context, classID string) ([]*Homework, error)
	Update(ctx context.Context, hw *Homework) error
	Delete(ctx context.Context, id uint) error
}

// CompletionRepository defines completion data access operations
type CompletionRepository interface {
	// CreateIfAbsent inserts c unless the (homework, student) pair already exists
	CreateIfAbsent(ctx context.Context, c *Completion) (bool, error)
	Find(ctx context.Context, homeworkID, studentID uint) (*Completion, error)
	CountByHomework(ctx context.Context, homeworkID uint) (int64, error)
}

// NotificationRepository defines notification data access operations
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint) ([]*Notification, error)
	MarkSeen(ctx context.Context, id uint) (*Notification, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RequestOTP(ctx context.Context, email string) (*OTPIssue, error)
	VerifyOTP(ctx context.Context, email, code, handle string) (*AuthResult, error)
	Profile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines OTP operations
type OTPService interface {
	Request(ctx context.Context, email string) (*OTPIssue, error)
	Verify(ctx context.Context, email, code, handle string) (*User, error)
}

// HomeworkService defines homework business logic
type HomeworkService interface {
	Create(ctx context.Context, actor Actor, in HomeworkInput) (*Homework, error)
	Get(ctx context.Context, id uint) (*Homework, error)
	ListByClass(ctx context.Context, classID string) ([]*Homework, error)
	Update(ctx context.Context, actor Actor, id uint, patch HomeworkPatch) (*Homework, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

// CompletionService defines completion business logic
type CompletionService interface {
	Mark(ctx context.Context, homeworkID, studentID uint) (*Completion, bool, error)
	Stats(ctx context.Context, homeworkID uint) (int64, error)
}

// NotificationService defines notification business logic
type NotificationService interface {
	Send(ctx context.Context, toUserID uint, message string) (*Notification, error)
	ListForUser(ctx context.Context, userID uint) ([]*Notification, error)
	MarkSeen(ctx context.Context, id uint) (*Notification, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(user *User) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// Mailer delivers OTP codes. Failures are reported as *MailError.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string, ttl time.Duration) error
}

// Broadcaster fans an event out to every member of a room and returns how
// many members it was handed to.
type Broadcaster interface {
	Broadcast(room, event string, payload any) int
}

// FileStorage persists uploaded attachments and returns their public paths
type FileStorage interface {
	Save(ctx context.Context, name string, content []byte) (string, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID uint
	Role   string
}

// IsTeacher reports whether the actor holds the teacher role
func (a Actor) IsTeacher() bool {
	return a.Role == RoleTeacher
}
