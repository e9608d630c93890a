package service

import (
	"errors"

	"pinboard/internal/models"
)

// isNotFound reports whether the error is a typed not-found error.
func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
