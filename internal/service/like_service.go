package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// Notifier is the subset of NotificationService the mutation services need.
type Notifier interface {
	BoardLiked(ctx context.Context, actorID uint, board *models.Board) error
	CommentLiked(ctx context.Context, actorID uint, comment *models.Comment) error
	BoardCommented(ctx context.Context, actorID uint, board *models.Board, comment *models.Comment) error
}

// LikeService implements the like toggle for boards and comments. A toggle
// flips the caller's like and reports the resulting state; only transitions
// into the liked state notify the content's author.
type LikeService struct {
	boardRepo   repository.BoardRepository
	commentRepo repository.CommentRepository
	notifier    Notifier
}

// NewLikeService creates a new LikeService.
func NewLikeService(boardRepo repository.BoardRepository, commentRepo repository.CommentRepository, notifier Notifier) *LikeService {
	return &LikeService{boardRepo: boardRepo, commentRepo: commentRepo, notifier: notifier}
}

// LikeStatus is the caller-relative like state of a board or comment.
type LikeStatus struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

// ToggleBoard flips userID's like on a board and returns the new liked
// state. Concurrent toggles race on the unique (board, user) index: the
// insert that loses reports liked without notifying twice.
func (s *LikeService) ToggleBoard(ctx context.Context, userID, boardID uint) (bool, error) {
	board, err := s.boardRepo.GetByID(ctx, boardID, userID)
	if err != nil {
		return false, err
	}

	liked, err := s.boardRepo.IsLiked(ctx, userID, boardID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.boardRepo.Unlike(ctx, userID, boardID); err != nil {
			return false, err
		}
		return false, nil
	}

	inserted, err := s.boardRepo.Like(ctx, userID, boardID)
	if err != nil {
		return false, err
	}
	if inserted {
		if err := s.notifier.BoardLiked(ctx, userID, board); err != nil {
			ReportFailure(ctx, models.NotificationBoardLike, err)
		}
	}
	return true, nil
}

// ToggleComment flips userID's like on a comment and returns the new liked
// state.
func (s *LikeService) ToggleComment(ctx context.Context, userID, commentID uint) (bool, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return false, err
	}

	liked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.commentRepo.Unlike(ctx, userID, commentID); err != nil {
			return false, err
		}
		return false, nil
	}

	inserted, err := s.commentRepo.Like(ctx, userID, commentID)
	if err != nil {
		return false, err
	}
	if inserted {
		if err := s.notifier.CommentLiked(ctx, userID, comment); err != nil {
			ReportFailure(ctx, models.NotificationCommentLike, err)
		}
	}
	return true, nil
}

// BoardLikeStatus returns the like count and whether userID has liked the
// board.
func (s *LikeService) BoardLikeStatus(ctx context.Context, userID, boardID uint) (*LikeStatus, error) {
	exists, err := s.boardRepo.Exists(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Board", boardID)
	}

	count, err := s.boardRepo.CountLikes(ctx, boardID)
	if err != nil {
		return nil, err
	}
	liked, err := s.boardRepo.IsLiked(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Count: count, Liked: liked}, nil
}

// CommentLikeStatus returns the like count and whether userID has liked the
// comment.
func (s *LikeService) CommentLikeStatus(ctx context.Context, userID, commentID uint) (*LikeStatus, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, userID); err != nil {
		return nil, err
	}

	count, err := s.commentRepo.CountLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}
	liked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Count: count, Liked: liked}, nil
}
