package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/you/classhub/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletionRepositoryImpl implements domain.CompletionRepository using GORM.
// Uniqueness of (homework, student) is enforced by idx_completion_homework_student.
type CompletionRepositoryImpl struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new completion repository
func NewCompletionRepository(db *gorm.DB) domain.CompletionRepository {
	return &CompletionRepositoryImpl{db: db}
}

// CreateIfAbsent implements domain.CompletionRepository
func (r *CompletionRepositoryImpl) CreateIfAbsent(ctx context.Context, c *domain.Completion) (bool, error) {
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now().UTC()
	}
	row := &DBCompletion{
		HomeworkID:  c.HomeworkID,
		StudentID:   c.StudentID,
		CompletedAt: c.CompletedAt,
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	c.ID = row.ID
	return true, nil
}

// Find implements domain.CompletionRepository
func (r *CompletionRepositoryImpl) Find(ctx context.Context, homeworkID, studentID uint) (*domain.Completion, error) {
	var row DBCompletion
	err := r.db.WithContext(ctx).
		Where("homework_id = ? AND student_id = ?", homeworkID, studentID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompletionNotFound
		}
		return nil, err
	}
	return &domain.Completion{
		ID:          row.ID,
		HomeworkID:  row.HomeworkID,
		StudentID:   row.StudentID,
		CompletedAt: row.CompletedAt,
	}, nil
}

// CountByHomework implements domain.CompletionRepository
func (r *CompletionRepositoryImpl) CountByHomework(ctx context.Context, homeworkID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBCompletion{}).
		Where("homework_id = ?", homeworkID).
		Count(&count).Error
	return count, err
}
