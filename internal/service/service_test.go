package service

import (
	"context"
	"testing"

	"pinboard/internal/database"
	"pinboard/internal/models"
	"pinboard/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

type testRepos struct {
	users         repository.UserRepository
	sessions      repository.SessionRepository
	boards        repository.BoardRepository
	comments      repository.CommentRepository
	notifications repository.NotificationRepository
}

func setupRepos(t *testing.T) (*gorm.DB, testRepos) {
	t.Helper()
	db := setupTestDB(t)
	return db, testRepos{
		users:         repository.NewUserRepository(db),
		sessions:      repository.NewSessionRepository(db),
		boards:        repository.NewBoardRepository(db),
		comments:      repository.NewCommentRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBoard(t *testing.T, db *gorm.DB, authorID *uint) *models.Board {
	t.Helper()
	board := &models.Board{Title: "Hello", Content: "First post", AuthorID: authorID}
	require.NoError(t, db.Create(board).Error)
	return board
}

func createTestComment(t *testing.T, db *gorm.DB, boardID uint, authorID *uint) *models.Comment {
	t.Helper()
	comment := &models.Comment{BoardID: boardID, AuthorID: authorID, Content: "nice"}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

// recordingNotifier captures notifier calls so tests can assert which events
// fired. Err, when set, is returned from every call.
type recordingNotifier struct {
	boardLikes     []uint // actor ids
	commentLikes   []uint
	boardComments  []uint
	Err            error
}

func (n *recordingNotifier) BoardLiked(_ context.Context, actorID uint, _ *models.Board) error {
	n.boardLikes = append(n.boardLikes, actorID)
	return n.Err
}

func (n *recordingNotifier) CommentLiked(_ context.Context, actorID uint, _ *models.Comment) error {
	n.commentLikes = append(n.commentLikes, actorID)
	return n.Err
}

func (n *recordingNotifier) BoardCommented(_ context.Context, actorID uint, _ *models.Board, _ *models.Comment) error {
	n.boardComments = append(n.boardComments, actorID)
	return n.Err
}

// requireAppError asserts err is an AppError with the given code.
func requireAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
	return appErr
}
