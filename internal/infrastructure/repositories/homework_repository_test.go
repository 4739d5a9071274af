package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/classhub/domain"
)

func TestHomeworkRepositoryImpl_CRUD(t *testing.T) {
	repo := NewHomeworkRepository(setupTestDB(t))
	ctx := context.Background()
	due := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)

	hw := &domain.Homework{
		Title:       "Fractions",
		Description: "Exercises 1-10",
		DueDate:     &due,
		Files:       []string{"/uploads/1-sheet.pdf"},
		CreatedBy:   1,
		ClassID:     "10A",
	}
	require.NoError(t, repo.Create(ctx, hw))
	require.NotZero(t, hw.ID)
	assert.False(t, hw.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, hw.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fractions", found.Title)
	assert.Equal(t, []string{"/uploads/1-sheet.pdf"}, found.Files)
	require.NotNil(t, found.DueDate)
	assert.True(t, due.Equal(*found.DueDate))

	found.Title = "Fractions (revised)"
	found.Files = []string{"/uploads/2-a.pdf", "/uploads/2-b.pdf"}
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindByID(ctx, hw.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fractions (revised)", updated.Title)
	assert.Equal(t, []string{"/uploads/2-a.pdf", "/uploads/2-b.pdf"}, updated.Files)

	require.NoError(t, repo.Delete(ctx, hw.ID))
	_, err = repo.FindByID(ctx, hw.ID)
	assert.ErrorIs(t, err, domain.ErrHomeworkNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, hw.ID), domain.ErrHomeworkNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Homework{ID: 999, Title: "x"}), domain.ErrHomeworkNotFound)
}

func TestHomeworkRepositoryImpl_ListByClass(t *testing.T) {
	repo := NewHomeworkRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	for i, spec := range []struct {
		title, class string
	}{
		{"first", "10A"},
		{"other class", "10B"},
		{"second", "10A"},
		{"third", "10A"},
	} {
		hw := &domain.Homework{
			Title:     spec.title,
			ClassID:   spec.class,
			CreatedBy: 1,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, hw))
	}

	list, err := repo.ListByClass(ctx, "10A")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "first", list[2].Title)
	assert.NotNil(t, list[0].Files)

	empty, err := repo.ListByClass(ctx, "12C")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
