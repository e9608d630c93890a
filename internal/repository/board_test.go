package repository

import (
	"context"
	"testing"

	"pinboard/internal/database"
	"pinboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBoard(t *testing.T, db *gorm.DB, authorID *uint) *models.Board {
	t.Helper()
	board := &models.Board{Title: "title", Content: "content", AuthorID: authorID}
	require.NoError(t, db.Create(board).Error)
	return board
}

func TestBoardLikeIsIdempotentAtTheRow(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	liker := seedUser(t, db, "liker")
	board := seedBoard(t, db, &author.ID)

	inserted, err := repo.Like(ctx, liker.ID, board.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	// A second insert hits the unique index and reports no new row. This is
	// what a toggle that lost a concurrent race observes.
	inserted, err = repo.Like(ctx, liker.ID, board.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := repo.CountLikes(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Unlike(ctx, liker.ID, board.ID))
	liked, err := repo.IsLiked(ctx, liker.ID, board.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// Unliking when no like exists is not an error.
	require.NoError(t, repo.Unlike(ctx, liker.ID, board.ID))
}

func TestBoardGetByIDComputedFields(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewBoardRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	board := seedBoard(t, db, &author.ID)

	_, err := repo.Like(ctx, viewer.ID, board.ID)
	require.NoError(t, err)
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{
		BoardID: board.ID, AuthorID: &viewer.ID, Content: "hello",
	}))

	got, err := repo.GetByID(ctx, board.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.CommentsCount)
	assert.True(t, got.Liked)
	require.NotNil(t, got.Author)
	assert.Equal(t, "author", got.Author.Name)

	// Anonymous view.
	got, err = repo.GetByID(ctx, board.ID, 0)
	require.NoError(t, err)
	assert.False(t, got.Liked)
	assert.Equal(t, 1, got.LikesCount)

	_, err = repo.GetByID(ctx, 999, 0)
	requireNotFound(t, err)
}

func TestBoardIncrementViews(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	board := seedBoard(t, db, &author.ID)

	require.NoError(t, repo.IncrementViews(ctx, board.ID))
	require.NoError(t, repo.IncrementViews(ctx, board.ID))

	got, err := repo.GetByID(ctx, board.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.ViewCount)
}

func TestBoardExists(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	board := seedBoard(t, db, &author.ID)

	exists, err := repo.Exists(ctx, board.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, models.CodeNotFound, appErr.Code)
}
