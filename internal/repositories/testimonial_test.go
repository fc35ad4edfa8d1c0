package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumatch/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestTestimonialWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userRepo := NewUserWriteRepository(db)
	writeRepo := NewTestimonialWriteRepository(db)
	ctx := context.Background()

	userID, err := userRepo.Save(ctx, "Alice", "alice@example.com", "hash", "tok")
	require.NoError(t, err)

	t.Run("registered author", func(t *testing.T) {
		saved, err := writeRepo.Save(ctx, models.TestimonialDB{
			AuthorID:    &userID,
			Content:     "Great feedback on my resume.",
			Rating:      5,
			Designation: "Engineer",
		})
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, saved.TestimonialID)
		assert.Equal(t, &userID, saved.AuthorID)
		assert.Nil(t, saved.AuthorName)
		assert.Equal(t, "Engineer", saved.Designation)
		assert.False(t, saved.Approved)
		assert.False(t, saved.CreatedAt.IsZero())
	})

	t.Run("anonymous author", func(t *testing.T) {
		saved, err := writeRepo.Save(ctx, models.TestimonialDB{
			AuthorName:  strPtr("Guest"),
			Content:     "Very helpful.",
			Rating:      4,
			Designation: "User",
		})
		assert.NoError(t, err)
		assert.Nil(t, saved.AuthorID)
		assert.Equal(t, "Guest", *saved.AuthorName)
	})

	t.Run("both authors rejected by constraint", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, models.TestimonialDB{
			AuthorID:    &userID,
			AuthorName:  strPtr("Guest"),
			Content:     "bad",
			Rating:      3,
			Designation: "User",
		})
		assert.Error(t, err)
	})

	t.Run("no author rejected by constraint", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, models.TestimonialDB{
			Content:     "bad",
			Rating:      3,
			Designation: "User",
		})
		assert.Error(t, err)
	})

	t.Run("rating out of range rejected by constraint", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, models.TestimonialDB{
			AuthorID:    &userID,
			Content:     "bad",
			Rating:      6,
			Designation: "User",
		})
		assert.Error(t, err)
	})
}

func TestTestimonialReadRepository(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userRepo := NewUserWriteRepository(db)
	writeRepo := NewTestimonialWriteRepository(db)
	readRepo := NewTestimonialReadRepository(db)
	ctx := context.Background()

	userID, err := userRepo.Save(ctx, "Bob", "bob@example.com", "hash", "tok")
	require.NoError(t, err)

	pending, err := writeRepo.Save(ctx, models.TestimonialDB{
		AuthorID:    &userID,
		Content:     "Pending review.",
		Rating:      4,
		Designation: "Engineer",
	})
	require.NoError(t, err)

	approved, err := writeRepo.Save(ctx, models.TestimonialDB{
		AuthorName:  strPtr("Guest"),
		Content:     "Already approved.",
		Rating:      5,
		Designation: "User",
		Approved:    true,
	})
	require.NoError(t, err)

	t.Run("get all", func(t *testing.T) {
		all, err := readRepo.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("get approved only", func(t *testing.T) {
		list, err := readRepo.GetApproved(ctx)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, approved.TestimonialID, list[0].TestimonialID)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := readRepo.GetByID(ctx, pending.TestimonialID)
		assert.NoError(t, err)
		assert.Equal(t, "Pending review.", got.Content)
	})

	t.Run("get by unknown id", func(t *testing.T) {
		got, err := readRepo.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("exists by author", func(t *testing.T) {
		has, err := readRepo.ExistsByAuthor(ctx, userID)
		assert.NoError(t, err)
		assert.True(t, has)

		otherID, err := userRepo.Save(ctx, "Carol", "carol@example.com", "hash", "tok2")
		require.NoError(t, err)
		has, err = readRepo.ExistsByAuthor(ctx, otherID)
		assert.NoError(t, err)
		assert.False(t, has)
	})
}

func TestTestimonialWriteRepository_UpdateAndDelete(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userRepo := NewUserWriteRepository(db)
	writeRepo := NewTestimonialWriteRepository(db)
	readRepo := NewTestimonialReadRepository(db)
	ctx := context.Background()

	userID, err := userRepo.Save(ctx, "Dana", "dana@example.com", "hash", "tok")
	require.NoError(t, err)

	saved, err := writeRepo.Save(ctx, models.TestimonialDB{
		AuthorID:    &userID,
		Content:     "Initial text.",
		Rating:      3,
		Designation: "User",
	})
	require.NoError(t, err)

	t.Run("update existing", func(t *testing.T) {
		updated, err := writeRepo.Update(ctx, saved.TestimonialID, "Revised text.", 5, "Manager", true)
		assert.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Revised text.", updated.Content)
		assert.Equal(t, 5, updated.Rating)
		assert.Equal(t, "Manager", updated.Designation)
		assert.True(t, updated.Approved)
	})

	t.Run("update missing returns nil", func(t *testing.T) {
		updated, err := writeRepo.Update(ctx, uuid.New(), "x", 1, "User", false)
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("delete existing", func(t *testing.T) {
		assert.NoError(t, writeRepo.Delete(ctx, saved.TestimonialID))

		got, err := readRepo.GetByID(ctx, saved.TestimonialID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete missing errors", func(t *testing.T) {
		assert.Error(t, writeRepo.Delete(ctx, saved.TestimonialID))
	})
}

func TestTestimonialRepository_CascadeOnUserDelete(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userRepo := NewUserWriteRepository(db)
	writeRepo := NewTestimonialWriteRepository(db)
	readRepo := NewTestimonialReadRepository(db)
	ctx := context.Background()

	userID, err := userRepo.Save(ctx, "Eve", "eve@example.com", "hash", "tok")
	require.NoError(t, err)

	saved, err := writeRepo.Save(ctx, models.TestimonialDB{
		AuthorID:    &userID,
		Content:     "Goes away with the account.",
		Rating:      4,
		Designation: "User",
	})
	require.NoError(t, err)

	require.NoError(t, userRepo.Delete(ctx, userID))

	got, err := readRepo.GetByID(ctx, saved.TestimonialID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
