package service

import (
	"context"
	"strings"

	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// BoardService implements board CRUD with ownership-based authorization on
// mutations. Reads are public.
type BoardService struct {
	boardRepo repository.BoardRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository) *BoardService {
	return &BoardService{boardRepo: boardRepo}
}

// CreateBoardInput carries the fields for a new board.
type CreateBoardInput struct {
	AuthorID uint
	Title    string
	Content  string
}

// UpdateBoardInput carries the fields for a board update.
type UpdateBoardInput struct {
	UserID  uint
	BoardID uint
	Title   string
	Content string
}

func validateBoardFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	return nil
}

func (s *BoardService) Create(ctx context.Context, in CreateBoardInput) (*models.Board, error) {
	if err := validateBoardFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	authorID := in.AuthorID
	board := &models.Board{
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		AuthorID: &authorID,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}
	return s.boardRepo.GetByID(ctx, board.ID, in.AuthorID)
}

// Get returns the board detail, bumping the view counter first so every
// detail read counts exactly once.
func (s *BoardService) Get(ctx context.Context, boardID, currentUserID uint) (*models.Board, error) {
	if err := s.boardRepo.IncrementViews(ctx, boardID); err != nil {
		return nil, err
	}
	return s.boardRepo.GetByID(ctx, boardID, currentUserID)
}

func (s *BoardService) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Board, error) {
	return s.boardRepo.List(ctx, limit, offset, currentUserID)
}

// requireOwner loads the board and checks that userID owns it. A board with
// no author matches no one: orphaned boards cannot be mutated.
func (s *BoardService) requireOwner(ctx context.Context, userID, boardID uint) (*models.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if board.AuthorID == nil || *board.AuthorID != userID {
		return nil, models.NewForbiddenError("You can only modify your own boards")
	}
	return board, nil
}

func (s *BoardService) Update(ctx context.Context, in UpdateBoardInput) (*models.Board, error) {
	if err := validateBoardFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	board, err := s.requireOwner(ctx, in.UserID, in.BoardID)
	if err != nil {
		return nil, err
	}

	board.Title = strings.TrimSpace(in.Title)
	board.Content = strings.TrimSpace(in.Content)
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) Delete(ctx context.Context, userID, boardID uint) error {
	if _, err := s.requireOwner(ctx, userID, boardID); err != nil {
		return err
	}
	return s.boardRepo.Delete(ctx, boardID)
}
