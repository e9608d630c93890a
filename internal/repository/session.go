package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"pinboard/internal/models"

	"gorm.io/gorm"
)

// SessionRepository defines persistence operations for login sessions.
type SessionRepository interface {
	// Create persists a new session for the user and returns it. The token is
	// generated here so no caller can supply a guessable one.
	Create(ctx context.Context, userID uint, lifetime time.Duration) (*models.Session, error)
	// GetByToken returns the session for the token, or (nil, nil) when the
	// token is unknown or the session has expired. Expiry is filtered in the
	// query; a physically present but expired row never resolves.
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// Delete removes the session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes all sessions that are past their expiry.
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository returns a new SessionRepository implementation.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// newToken returns 32 random bytes hex-encoded (256 bits of entropy).
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (r *sessionRepository) Create(ctx context.Context, userID uint, lifetime time.Duration) (*models.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	session := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(lifetime),
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return session, nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.Session{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}
