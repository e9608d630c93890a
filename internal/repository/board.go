package repository

import (
	"context"
	"errors"

	"pinboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardRepository defines the interface for board data operations
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Board, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Board, error)
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id uint) error
	// IncrementViews bumps the view counter atomically in SQL; it never runs
	// through a read-modify-write cycle in the application.
	IncrementViews(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, boardID uint) (bool, error)
	// Like inserts the like row. It reports false when the row already
	// existed: the unique constraint resolved a concurrent duplicate and no
	// new like was added.
	Like(ctx context.Context, userID, boardID uint) (bool, error)
	Unlike(ctx context.Context, userID, boardID uint) error
	CountLikes(ctx context.Context, boardID uint) (int64, error)
}

// boardRepository implements BoardRepository
type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *models.Board) error {
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// applyBoardDetails adds subqueries to fetch counts and liked status in a single query.
func (r *boardRepository) applyBoardDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "boards.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.board_id = boards.id) AS comments_count, " +
		"(SELECT COUNT(*) FROM board_likes WHERE board_likes.board_id = boards.id) AS likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM board_likes WHERE board_likes.board_id = boards.id AND board_likes.user_id = ?) AS liked", currentUserID)
	}

	return db.Select(selectQuery + ", FALSE AS liked")
}

func (r *boardRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Board, error) {
	var board models.Board
	err := r.applyBoardDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		First(&board, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Board", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &board, nil
}

func (r *boardRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Board{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *boardRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Board, error) {
	var boards []*models.Board
	err := r.applyBoardDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&boards).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return boards, nil
}

func (r *boardRepository) Update(ctx context.Context, board *models.Board) error {
	if err := r.db.WithContext(ctx).Save(board).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Board{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Board{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardRepository) IsLiked(ctx context.Context, userID, boardID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BoardLike{}).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *boardRepository) Like(ctx context.Context, userID, boardID uint) (bool, error) {
	// ON CONFLICT DO NOTHING pushes the uniqueness decision down to the
	// database, closing the check-then-insert race between concurrent toggles.
	like := models.BoardLike{UserID: userID, BoardID: boardID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *boardRepository) Unlike(ctx context.Context, userID, boardID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		Delete(&models.BoardLike{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardRepository) CountLikes(ctx context.Context, boardID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BoardLike{}).
		Where("board_id = ?", boardID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
