package repositories

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"column:password"`
	Role         string `gorm:"index;size:32"`
	ClassID      string `gorm:"index;size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBHomework represents the database model for Homework
type DBHomework struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	DueDate     *time.Time
	Files       datatypes.JSONSlice[string]
	CreatedBy   uint      `gorm:"index"`
	ClassID     string    `gorm:"index;size:64"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (DBHomework) TableName() string {
	return "homeworks"
}

// DBCompletion is unique per (homework, student)
type DBCompletion struct {
	ID          uint `gorm:"primaryKey"`
	HomeworkID  uint `gorm:"uniqueIndex:idx_completion_homework_student;not null"`
	StudentID   uint `gorm:"uniqueIndex:idx_completion_homework_student;not null"`
	CompletedAt time.Time
}

func (DBCompletion) TableName() string {
	return "completions"
}

type DBNotification struct {
	ID        uint      `gorm:"primaryKey"`
	ToUserID  uint      `gorm:"index;not null"`
	Message   string    `gorm:"type:text"`
	Seen      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"index"`
}

func (DBNotification) TableName() string {
	return "notifications"
}

// Migrate creates or updates every table owned by the repositories
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&DBUser{}, &DBHomework{}, &DBCompletion{}, &DBNotification{})
}
