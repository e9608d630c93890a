package service

import (
	"context"
	"strings"

	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// CommentService implements comment CRUD with ownership-based authorization
// on mutations. Creating a comment notifies the board's author.
type CommentService struct {
	commentRepo repository.CommentRepository
	boardRepo   repository.BoardRepository
	notifier    Notifier
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, boardRepo repository.BoardRepository, notifier Notifier) *CommentService {
	return &CommentService{commentRepo: commentRepo, boardRepo: boardRepo, notifier: notifier}
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	return nil
}

func (s *CommentService) Create(ctx context.Context, userID, boardID uint, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.GetByID(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}

	authorID := userID
	comment := &models.Comment{
		BoardID:  boardID,
		AuthorID: &authorID,
		Content:  strings.TrimSpace(content),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.notifier.BoardCommented(ctx, userID, board, comment); err != nil {
		ReportFailure(ctx, models.NotificationBoardComment, err)
	}

	return s.commentRepo.GetByID(ctx, comment.ID, userID)
}

func (s *CommentService) ListByBoard(ctx context.Context, boardID, currentUserID uint) ([]*models.Comment, error) {
	exists, err := s.boardRepo.Exists(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Board", boardID)
	}
	return s.commentRepo.ListByBoard(ctx, boardID, currentUserID)
}

// requireOwner loads the comment and checks that userID owns it. Orphaned
// comments cannot be mutated.
func (s *CommentService) requireOwner(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID == nil || *comment.AuthorID != userID {
		return nil, models.NewForbiddenError("You can only modify your own comments")
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, userID, commentID uint, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment, err := s.requireOwner(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = strings.TrimSpace(content)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	if _, err := s.requireOwner(ctx, userID, commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}
