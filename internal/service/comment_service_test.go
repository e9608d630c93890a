package service

import (
	"context"
	"testing"

	"pinboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	db, repos := setupRepos(t)
	notifier := &recordingNotifier{}
	svc := NewCommentService(repos.comments, repos.boards, notifier)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	board := createTestBoard(t, db, &author.ID)

	comment, err := svc.Create(ctx, commenter.ID, board.ID, "  great board  ")
	require.NoError(t, err)
	assert.Equal(t, "great board", comment.Content)
	assert.Equal(t, board.ID, comment.BoardID)
	require.NotNil(t, comment.AuthorID)
	assert.Equal(t, commenter.ID, *comment.AuthorID)

	// The board's author was told about it.
	assert.Equal(t, []uint{commenter.ID}, notifier.boardComments)
}

func TestCreateCommentValidation(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewCommentService(repos.comments, repos.boards, &recordingNotifier{})
	ctx := context.Background()

	user := createTestUser(t, db, "someone")
	board := createTestBoard(t, db, &user.ID)

	_, err := svc.Create(ctx, user.ID, board.ID, "   ")
	requireAppError(t, err, models.CodeValidation)

	_, err = svc.Create(ctx, user.ID, 999, "hello")
	requireAppError(t, err, models.CodeNotFound)
}

func TestCreateCommentNotifierFailureDoesNotFailCreate(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewCommentService(repos.comments, repos.boards, &recordingNotifier{Err: assert.AnError})
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	board := createTestBoard(t, db, &author.ID)

	comment, err := svc.Create(ctx, commenter.ID, board.ID, "hello")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
}

func TestListCommentsByBoard(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewCommentService(repos.comments, repos.boards, &recordingNotifier{})
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	board := createTestBoard(t, db, &author.ID)
	first := createTestComment(t, db, board.ID, &author.ID)
	second := createTestComment(t, db, board.ID, &author.ID)

	comments, err := svc.ListByBoard(ctx, board.ID, 0)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// Oldest first: comments read as a thread.
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)

	_, err = svc.ListByBoard(ctx, 999, 0)
	requireAppError(t, err, models.CodeNotFound)
}

func TestUpdateCommentOwnership(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewCommentService(repos.comments, repos.boards, &recordingNotifier{})
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	intruder := createTestUser(t, db, "intruder")
	board := createTestBoard(t, db, &author.ID)
	comment := createTestComment(t, db, board.ID, &author.ID)

	updated, err := svc.Update(ctx, author.ID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = svc.Update(ctx, intruder.ID, comment.ID, "hijacked")
	requireAppError(t, err, models.CodeForbidden)

	_, err = svc.Update(ctx, author.ID, 999, "x")
	requireAppError(t, err, models.CodeNotFound)

	// Orphaned comments cannot be mutated.
	orphan := createTestComment(t, db, board.ID, nil)
	_, err = svc.Update(ctx, author.ID, orphan.ID, "x")
	requireAppError(t, err, models.CodeForbidden)
}

func TestDeleteComment(t *testing.T) {
	db, repos := setupRepos(t)
	svc := NewCommentService(repos.comments, repos.boards, &recordingNotifier{})
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	intruder := createTestUser(t, db, "intruder")
	board := createTestBoard(t, db, &author.ID)
	comment := createTestComment(t, db, board.ID, &author.ID)

	err := svc.Delete(ctx, intruder.ID, comment.ID)
	requireAppError(t, err, models.CodeForbidden)

	require.NoError(t, svc.Delete(ctx, author.ID, comment.ID))

	err = svc.Delete(ctx, author.ID, comment.ID)
	requireAppError(t, err, models.CodeNotFound)
}
