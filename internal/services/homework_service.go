package services

import (
	"context"
	"strings"
	"time"

	"github.com/you/classhub/domain"
)

// HomeworkServiceImpl implements domain.HomeworkService. Every change is
// broadcast to the room of the homework's class after it is stored.
type HomeworkServiceImpl struct {
	repo domain.HomeworkRepository
	hub  domain.Broadcaster
}

// NewHomeworkService creates a new homework service
func NewHomeworkService(repo domain.HomeworkRepository, hub domain.Broadcaster) domain.HomeworkService {
	return &HomeworkServiceImpl{repo: repo, hub: hub}
}

// Create implements domain.HomeworkService
func (s *HomeworkServiceImpl) Create(ctx context.Context, actor domain.Actor, in domain.HomeworkInput) (*domain.Homework, error) {
	if !actor.IsTeacher() {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	classID := strings.TrimSpace(in.ClassID)
	if title == "" || classID == "" {
		return nil, domain.ErrInvalidRequest
	}

	files := in.Files
	if files == nil {
		files = []string{}
	}

	now := time.Now()
	hw := &domain.Homework{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate,
		Files:       files,
		CreatedBy:   actor.UserID,
		ClassID:     classID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, hw); err != nil {
		return nil, err
	}

	s.hub.Broadcast(hw.ClassID, domain.EventHomeworkCreated, domain.HomeworkPayload{Homework: hw})
	return hw, nil
}

// Get implements domain.HomeworkService
func (s *HomeworkServiceImpl) Get(ctx context.Context, id uint) (*domain.Homework, error) {
	if id == 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.FindByID(ctx, id)
}

// ListByClass implements domain.HomeworkService, newest first
func (s *HomeworkServiceImpl) ListByClass(ctx context.Context, classID string) ([]*domain.Homework, error) {
	classID = strings.TrimSpace(classID)
	if classID == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.ListByClass(ctx, classID)
}

// Update implements domain.HomeworkService. Nil patch fields keep their value;
// a non-nil Files list replaces the attachments.
func (s *HomeworkServiceImpl) Update(ctx context.Context, actor domain.Actor, id uint, patch domain.HomeworkPatch) (*domain.Homework, error) {
	if !actor.IsTeacher() {
		return nil, domain.ErrForbidden
	}

	hw, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.ErrInvalidRequest
		}
		hw.Title = title
	}
	if patch.Description != nil {
		hw.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.DueDate != nil {
		hw.DueDate = patch.DueDate
	}
	if patch.ClassID != nil {
		classID := strings.TrimSpace(*patch.ClassID)
		if classID == "" {
			return nil, domain.ErrInvalidRequest
		}
		hw.ClassID = classID
	}
	if patch.Files != nil {
		hw.Files = patch.Files
	}
	hw.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, hw); err != nil {
		return nil, err
	}

	s.hub.Broadcast(hw.ClassID, domain.EventHomeworkUpdated, domain.HomeworkPayload{Homework: hw})
	return hw, nil
}

// Delete implements domain.HomeworkService
func (s *HomeworkServiceImpl) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.IsTeacher() {
		return domain.ErrForbidden
	}

	hw, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Broadcast(hw.ClassID, domain.EventHomeworkDeleted, domain.HomeworkDeletedPayload{ID: id})
	return nil
}
