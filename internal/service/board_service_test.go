package service

import (
	"context"
	"testing"
	"time"

	"pinboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoard(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewBoardService(repos.boards)
	ctx := context.Background()

	author := createTestUser(t, db, "author")

	board, err := svc.Create(ctx, CreateBoardInput{
		AuthorID: author.ID,
		Title:    "  Hello  ",
		Content:  "First post",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", board.Title)
	require.NotNil(t, board.AuthorID)
	assert.Equal(t, author.ID, *board.AuthorID)
	assert.Zero(t, board.LikesCount)
	assert.Zero(t, board.CommentsCount)

	_, err = svc.Create(ctx, CreateBoardInput{AuthorID: author.ID, Title: " ", Content: "x"})
	requireAppError(t, err, models.CodeValidation)
	_, err = svc.Create(ctx, CreateBoardInput{AuthorID: author.ID, Title: "x", Content: ""})
	requireAppError(t, err, models.CodeValidation)
}

func TestGetBoardCountsViews(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewBoardService(repos.boards)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	board := createTestBoard(t, db, &author.ID)

	for i := 0; i < 3; i++ {
		_, err := svc.Get(ctx, board.ID, 0)
		require.NoError(t, err)
	}

	got, err := svc.Get(ctx, board.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(4), got.ViewCount)
}

func TestBoardListOrderAndComputedFields(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewBoardService(repos.boards)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	first := createTestBoard(t, db, &author.ID)
	second := &models.Board{Title: "Second", Content: "body", AuthorID: &author.ID,
		CreatedAt: first.CreatedAt.Add(time.Minute)}
	require.NoError(t, db.Create(second).Error)

	createTestComment(t, db, first.ID, &viewer.ID)
	_, err := repos.boards.Like(ctx, viewer.ID, first.ID)
	require.NoError(t, err)

	boards, err := svc.List(ctx, 20, 0, viewer.ID)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	// Newest first.
	assert.Equal(t, second.ID, boards[0].ID)
	assert.Equal(t, first.ID, boards[1].ID)
	assert.Equal(t, 1, boards[1].LikesCount)
	assert.Equal(t, 1, boards[1].CommentsCount)
	assert.True(t, boards[1].Liked)
	assert.False(t, boards[0].Liked)
}

func TestUpdateBoardOwnership(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewBoardService(repos.boards)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	intruder := createTestUser(t, db, "intruder")
	board := createTestBoard(t, db, &author.ID)

	updated, err := svc.Update(ctx, UpdateBoardInput{
		UserID: author.ID, BoardID: board.ID, Title: "New title", Content: "New body",
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)

	_, err = svc.Update(ctx, UpdateBoardInput{
		UserID: intruder.ID, BoardID: board.ID, Title: "Taken over", Content: "x",
	})
	requireAppError(t, err, models.CodeForbidden)

	_, err = svc.Update(ctx, UpdateBoardInput{
		UserID: author.ID, BoardID: 999, Title: "x", Content: "x",
	})
	requireAppError(t, err, models.CodeNotFound)
}

func TestOrphanedBoardCannotBeMutated(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewBoardService(repos.boards)
	ctx := context.Background()

	user := createTestUser(t, db, "someone")
	board := createTestBoard(t, db, nil)

	_, err := svc.Update(ctx, UpdateBoardInput{
		UserID: user.ID, BoardID: board.ID, Title: "x", Content: "x",
	})
	requireAppError(t, err, models.CodeForbidden)

	err = svc.Delete(ctx, user.ID, board.ID)
	requireAppError(t, err, models.CodeForbidden)
}

func TestDeleteBoard(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewBoardService(repos.boards)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	intruder := createTestUser(t, db, "intruder")
	board := createTestBoard(t, db, &author.ID)

	err := svc.Delete(ctx, intruder.ID, board.ID)
	requireAppError(t, err, models.CodeForbidden)

	require.NoError(t, svc.Delete(ctx, author.ID, board.ID))

	_, err = svc.Get(ctx, board.ID, 0)
	requireAppError(t, err, models.CodeNotFound)
}
