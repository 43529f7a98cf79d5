package repository

import (
	"context"
	"testing"

	"atelier/internal/database"
	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestPostLikeCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "t", Description: "d"}
	require.NoError(t, repo.Create(ctx, post))

	for i := 1; i <= 3; i++ {
		count, err := repo.IncrementLikeCount(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.LikeCount)
}

func TestPostLikeCounterMissingPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.IncrementLikeCount(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostDeleteIsNoOpForUnknownID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	deleted, err := repo.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestPostCommentsCount(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "t", Description: "d"}
	require.NoError(t, postRepo.Create(ctx, post))

	for i := 0; i < 2; i++ {
		require.NoError(t, commentRepo.Create(ctx, &models.Comment{
			PostID:     post.ID,
			AuthorName: "ada",
			Content:    "nice",
		}))
	}

	got, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)
}

func TestCommentDeleteUnknownID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	deleted, err := repo.Delete(context.Background(), 123)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestSubscriberUpsertDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)
	assert.True(t, created)

	// Same email, different case: still one row
	created, err = repo.Upsert(ctx, "Ada Again", "ADA@Example.com")
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestBlocklistNormalizesNames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlocklistRepository(db)
	ctx := context.Background()

	_, err := repo.Block(ctx, "  Troll ", "spam")
	require.NoError(t, err)

	for _, name := range []string{"troll", "TROLL", " Troll "} {
		blocked, err := repo.IsBlocked(ctx, name)
		require.NoError(t, err)
		assert.True(t, blocked, "name %q should be blocked", name)
	}

	blocked, err := repo.IsBlocked(ctx, "not-troll")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestBlocklistBlockIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlocklistRepository(db)
	ctx := context.Background()

	first, err := repo.Block(ctx, "Troll", "spam")
	require.NoError(t, err)
	second, err := repo.Block(ctx, "troll", "still spam")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBlocklistUnblockUnknownID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlocklistRepository(db)

	deleted, err := repo.Unblock(context.Background(), 77)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestProfileEnsureDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureDefault(ctx, models.Profile{Name: "Owner"}))

	profile, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Owner", profile.Name)

	// Second call must not overwrite edits
	profile.Name = "Edited"
	require.NoError(t, repo.Update(ctx, profile))
	require.NoError(t, repo.EnsureDefault(ctx, models.Profile{Name: "Owner"}))

	profile, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Edited", profile.Name)
}

func TestContactMarkReplied(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	msg := &models.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	require.NoError(t, repo.Create(ctx, msg))
	assert.Nil(t, msg.RepliedAt)

	require.NoError(t, repo.MarkReplied(ctx, msg.ID))

	got, err := repo.GetByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.RepliedAt)
}
