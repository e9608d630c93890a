package server

import (
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleBoardLike handles POST /api/boards/:id/like. A first call likes,
// the next call unlikes; the response reports the resulting state.
func (s *Server) ToggleBoardLike(c *fiber.Ctx) error {
	boardID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.ToggleBoard(c.UserContext(), currentUserID(c), boardID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"liked": liked,
	})
}

// ToggleCommentLike handles POST /api/comments/:id/like
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.ToggleComment(c.UserContext(), currentUserID(c), commentID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"liked": liked,
	})
}

// GetBoardLikeStatus handles GET /api/boards/:id/likes
func (s *Server) GetBoardLikeStatus(c *fiber.Ctx) error {
	boardID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	status, err := s.likeService.BoardLikeStatus(c.UserContext(), currentUserID(c), boardID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

// GetCommentLikeStatus handles GET /api/comments/:id/likes
func (s *Server) GetCommentLikeStatus(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	status, err := s.likeService.CommentLikeStatus(c.UserContext(), currentUserID(c), commentID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(status)
}
