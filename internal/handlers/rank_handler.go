package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type RankHandler struct {
	rankingService services.RankingService
	logger         *zap.Logger
}

func NewRankHandler(rankingService services.RankingService, logger *zap.Logger) *RankHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RankHandler{
		rankingService: rankingService,
		logger:         logger,
	}
}

// HandleRank handles POST /api/v1/rank
func (h *RankHandler) HandleRank(c *fiber.Ctx) error {
	input, err := parseRankForm(c)
	if err != nil {
		return err
	}

	h.logger.Debug("rank request", zap.Int("files", len(input.files)))

	result, err := h.rankingService.RankResumes(c.UserContext(), input.jobDescription, input.files)
	if err != nil {
		return rankError(err)
	}

	message := "Ranking complete"
	if result.Message != "" {
		message = result.Message
	}

	return c.JSON(models.RankResponse{
		Success: !result.Empty(),
		Message: message,
		Data:    result,
	})
}

// rankError maps ranking service errors to HTTP errors.
func rankError(err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyJobDescription):
		return fiber.NewError(fiber.StatusBadRequest, errMissingJobDescription.Error())
	case errors.Is(err, services.ErrEmptyInput):
		return fiber.NewError(fiber.StatusBadRequest, errMissingResumes.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusServiceUnavailable, "ranking cancelled")
	default:
		return err
	}
}

// HandleHealth handles GET /api/v1/health
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}
