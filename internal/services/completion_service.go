package services

import (
	"context"
	"time"

	"github.com/you/classhub/domain"
)

// CompletionServiceImpl implements domain.CompletionService
type CompletionServiceImpl struct {
	repo         domain.CompletionRepository
	homeworkRepo domain.HomeworkRepository
}

// NewCompletionService creates a new completion service
func NewCompletionService(repo domain.CompletionRepository, homeworkRepo domain.HomeworkRepository) domain.CompletionService {
	return &CompletionServiceImpl{repo: repo, homeworkRepo: homeworkRepo}
}

// Mark implements domain.CompletionService. A second mark for the same pair
// returns the stored record with already set to true.
func (s *CompletionServiceImpl) Mark(ctx context.Context, homeworkID, studentID uint) (*domain.Completion, bool, error) {
	if homeworkID == 0 || studentID == 0 {
		return nil, false, domain.ErrInvalidRequest
	}

	if _, err := s.homeworkRepo.FindByID(ctx, homeworkID); err != nil {
		return nil, false, err
	}

	c := &domain.Completion{
		HomeworkID:  homeworkID,
		StudentID:   studentID,
		CompletedAt: time.Now(),
	}
	inserted, err := s.repo.CreateIfAbsent(ctx, c)
	if err != nil {
		return nil, false, err
	}
	if inserted {
		return c, false, nil
	}

	existing, err := s.repo.Find(ctx, homeworkID, studentID)
	if err != nil {
		return nil, false, err
	}
	return existing, true, nil
}

// Stats implements domain.CompletionService
func (s *CompletionServiceImpl) Stats(ctx context.Context, homeworkID uint) (int64, error) {
	if homeworkID == 0 {
		return 0, domain.ErrInvalidRequest
	}
	return s.repo.CountByHomework(ctx, homeworkID)
}
