package survey

import (
	"strconv"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/logger"
	surveyService "helpdesk-backend/services/survey"
	"helpdesk-backend/types"
	"helpdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles satisfaction survey responses
type Controller struct {
	DB            *gorm.DB
	Logger        *logger.AsyncLogger
	SurveyService *surveyService.Service
}

func NewSurveyController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:            db,
		Logger:        asyncLogger,
		SurveyService: surveyService.NewService(db),
	}
}

// Rate records a rating for a ticket. The first answer returns the token
// needed to change it later; repeats require ?token=.
func (sc *Controller) Rate(c *fiber.Ctx) error {
	sc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	ticketID, ok := sc.parseTicketID(c)
	if !ok {
		return nil
	}

	rating, err := strconv.Atoi(c.Params("rating"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid rating",
			Data:    nil,
		})
	}

	result, err := sc.SurveyService.Rate(ticketID, rating, c.Query("token"))
	if err != nil {
		return sc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Thank you for your feedback",
		Data:    result,
	})
}

// Comment attaches free text to an answered survey. Token gated.
func (sc *Controller) Comment(c *fiber.Ctx) error {
	ticketID, ok := sc.parseTicketID(c)
	if !ok {
		return nil
	}

	var req types.SurveyCommentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if req.Token == "" {
		req.Token = c.Query("token")
	}

	record, err := sc.SurveyService.Comment(ticketID, req.Comment, req.Token)
	if err != nil {
		return sc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Comment recorded",
		Data:    record,
	})
}

// Reset clears the survey of a ticket for a new response cycle.
func (sc *Controller) Reset(c *fiber.Ctx) error {
	ticketID, ok := sc.parseTicketID(c)
	if !ok {
		return nil
	}

	if err := sc.SurveyService.Reset(ticketID); err != nil {
		return sc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Survey reset",
		Data:    nil,
	})
}

func (sc *Controller) parseTicketID(c *fiber.Ctx) (int, bool) {
	ticketID, err := strconv.Atoi(c.Params("ticketID"))
	if err != nil || ticketID <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid ticket id",
			Data:    nil,
		})
		return 0, false
	}
	return ticketID, true
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
