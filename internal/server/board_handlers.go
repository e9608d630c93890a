package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type boardRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateBoard handles POST /api/boards
func (s *Server) CreateBoard(c *fiber.Ctx) error {
	var req boardRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	board, err := s.boardService.Create(c.UserContext(), service.CreateBoardInput{
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(board)
}

// GetBoards handles GET /api/boards
func (s *Server) GetBoards(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	boards, err := s.boardService.List(c.UserContext(), p.Limit, p.Offset, s.optionalUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"boards": boards,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetBoard handles GET /api/boards/:id. Every detail read bumps the view
// counter.
func (s *Server) GetBoard(c *fiber.Ctx) error {
	boardID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	board, err := s.boardService.Get(c.UserContext(), boardID, s.optionalUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(board)
}

// UpdateBoard handles PUT /api/boards/:id
func (s *Server) UpdateBoard(c *fiber.Ctx) error {
	boardID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req boardRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	board, err := s.boardService.Update(c.UserContext(), service.UpdateBoardInput{
		UserID:  currentUserID(c),
		BoardID: boardID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(board)
}

// DeleteBoard handles DELETE /api/boards/:id
func (s *Server) DeleteBoard(c *fiber.Ctx) error {
	boardID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.boardService.Delete(c.UserContext(), currentUserID(c), boardID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Board deleted",
	})
}
