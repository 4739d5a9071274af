package repositories

import (
	"context"
	"errors"

	"github.com/you/classhub/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HomeworkRepositoryImpl implements domain.HomeworkRepository using GORM
type HomeworkRepositoryImpl struct {
	db *gorm.DB
}

// NewHomeworkRepository creates a new homework repository
func NewHomeworkRepository(db *gorm.DB) domain.HomeworkRepository {
	return &HomeworkRepositoryImpl{db: db}
}

// Create implements domain.HomeworkRepository
func (r *HomeworkRepositoryImpl) Create(ctx context.Context, hw *domain.Homework) error {
	row := homeworkToDB(hw)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*hw = *homeworkToDomain(row)
	return nil
}

// FindByID implements domain.HomeworkRepository
func (r *HomeworkRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Homework, error) {
	var row DBHomework
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHomeworkNotFound
		}
		return nil, err
	}
	return homeworkToDomain(&row), nil
}

// ListByClass implements domain.HomeworkRepository, newest first
func (r *HomeworkRepositoryImpl) ListByClass(ctx context.Context, classID string) ([]*domain.Homework, error) {
	var rows []DBHomework
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Homework, 0, len(rows))
	for i := range rows {
		out = append(out, homeworkToDomain(&rows[i]))
	}
	return out, nil
}

// Update implements domain.HomeworkRepository
func (r *HomeworkRepositoryImpl) Update(ctx context.Context, hw *domain.Homework) error {
	row := homeworkToDB(hw)
	res := r.db.WithContext(ctx).Model(&DBHomework{ID: hw.ID}).
		Select("Title", "Description", "DueDate", "Files", "ClassID").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrHomeworkNotFound
	}
	return nil
}

// Delete implements domain.HomeworkRepository
func (r *HomeworkRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBHomework{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrHomeworkNotFound
	}
	return nil
}

func homeworkToDB(hw *domain.Homework) *DBHomework {
	files := hw.Files
	if files == nil {
		files = []string{}
	}
	return &DBHomework{
		ID:          hw.ID,
		Title:       hw.Title,
		Description: hw.Description,
		DueDate:     hw.DueDate,
		Files:       datatypes.NewJSONSlice(files),
		CreatedBy:   hw.CreatedBy,
		ClassID:     hw.ClassID,
		CreatedAt:   hw.CreatedAt,
		UpdatedAt:   hw.UpdatedAt,
	}
}

func homeworkToDomain(row *DBHomework) *domain.Homework {
	files := []string(row.Files)
	if files == nil {
		files = []string{}
	}
	return &domain.Homework{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate,
		Files:       files,
		CreatedBy:   row.CreatedBy,
		ClassID:     row.ClassID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
