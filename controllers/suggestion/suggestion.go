package suggestion

import (
	"strconv"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/logger"
	suggestionModel "helpdesk-backend/models/suggestion"
	"helpdesk-backend/services"
	classificationService "helpdesk-backend/services/classification"
	reviewService "helpdesk-backend/services/suggestion"
	"helpdesk-backend/types"
	"helpdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller exposes the review queue of AI-proposed categories
type Controller struct {
	DB              *gorm.DB
	Logger          *logger.AsyncLogger
	ReviewService   *reviewService.Service
	ClassifyService *classificationService.Service
	Permissions     *services.PermissionService
}

func NewSuggestionController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:              db,
		Logger:          asyncLogger,
		ReviewService:   reviewService.NewService(db),
		ClassifyService: classificationService.NewService(db),
		Permissions:     services.NewPermissionService(),
	}
}

// List returns suggestions, optionally filtered by ?status=.
func (sc *Controller) List(c *fiber.Ctx) error {
	suggestions, err := sc.ReviewService.List(c.Query("status"))
	if err != nil {
		logger.Error("Failed to list suggestions", err)
		return sc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Suggestions retrieved successfully",
		Data:    suggestions,
	})
}

// Stats returns the review queue dashboard counters.
func (sc *Controller) Stats(c *fiber.Ctx) error {
	stats, err := sc.ReviewService.GetStats()
	if err != nil {
		logger.Error("Failed to compute suggestion stats", err)
		return sc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Suggestion stats retrieved successfully",
		Data:    stats,
	})
}

// Preview classifies free text without creating a ticket. A new-path
// outcome is returned as an unsaved draft, nothing is stored.
func (sc *Controller) Preview(c *fiber.Ctx) error {
	var req types.PreviewClassificationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Title is required",
			Data:    nil,
		})
	}

	result, err := sc.ClassifyService.Preview(req.Title, req.Content)
	if err != nil {
		return sc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Preview classification completed",
		Data:    result,
	})
}

// Update edits the path or notes of a pending suggestion.
func (sc *Controller) Update(c *fiber.Ctx) error {
	id, ok := sc.parseID(c)
	if !ok {
		return nil
	}

	var req types.UpdateSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	record, err := sc.ReviewService.Update(id, req.SuggestedPath, req.Notes)
	if err != nil {
		return sc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Suggestion updated successfully",
		Data:    record,
	})
}

// Approve accepts a pending suggestion once the automation webhook confirms.
func (sc *Controller) Approve(c *fiber.Ctx) error {
	return sc.review(c, sc.ReviewService.Approve, "Suggestion approved")
}

// Reject declines a pending suggestion once the automation webhook confirms.
func (sc *Controller) Reject(c *fiber.Ctx) error {
	return sc.review(c, sc.ReviewService.Reject, "Suggestion rejected")
}

func (sc *Controller) review(c *fiber.Ctx, decide func(uint, string, string) (*suggestionModel.CategorySuggestion, error), message string) error {
	sc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	id, ok := sc.parseID(c)
	if !ok {
		return nil
	}

	var req types.ReviewSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if req.ReviewedBy == "" {
		if username, ok := sc.Permissions.GetUsername(c); ok {
			req.ReviewedBy = username
		}
	}
	if req.ReviewedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "reviewed_by is required",
			Data:    nil,
		})
	}

	record, err := decide(id, req.ReviewedBy, req.Notes)
	if err != nil {
		logger.Error("Failed to apply review decision", err)
		return sc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    record,
	})
}

func (sc *Controller) parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid suggestion id",
			Data:    nil,
		})
		return 0, false
	}
	return uint(id), true
}

func (sc *Controller) sendError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: apperrors.MessageOf(err),
		Data: fiber.Map{
			"code": apperrors.CodeOf(err),
		},
	})
}
