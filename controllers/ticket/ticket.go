package ticket

import (
	"strconv"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/logger"
	ticketService "helpdesk-backend/services/ticket"
	"helpdesk-backend/types"
	"helpdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles ticket intake from the ITSM and classification
type Controller struct {
	DB            *gorm.DB
	Logger        *logger.AsyncLogger
	TicketService *ticketService.Service
}

func NewTicketController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:            db,
		Logger:        asyncLogger,
		TicketService: ticketService.NewService(db),
	}
}

// Webhook receives a ticket forwarded by the automation engine and upserts
// the local snapshot.
func (tc *Controller) Webhook(c *fiber.Ctx) error {
	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	var req types.TicketWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse webhook payload", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid webhook payload",
			Data:    nil,
		})
	}

	row, err := tc.TicketService.UpsertFromWebhook(req)
	if err != nil {
		logger.Error("Failed to store webhook ticket", err)
		return tc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Ticket stored",
		Data:    row,
	})
}

// List returns the stored tickets, newest first.
func (tc *Controller) List(c *fiber.Ctx) error {
	tickets, err := tc.TicketService.List()
	if err != nil {
		logger.Error("Failed to list tickets", err)
		return tc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tickets retrieved successfully",
		Data:    tickets,
	})
}

// Get returns a single ticket by its ITSM id.
func (tc *Controller) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid ticket id",
			Data:    nil,
		})
	}

	row, err := tc.TicketService.Get(id)
	if err != nil {
		return tc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Ticket retrieved successfully",
		Data:    row,
	})
}

// Classify runs the classification pipeline for a ticket and persists the
// outcome on it.
func (tc *Controller) Classify(c *fiber.Ctx) error {
	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	var req types.ClassifyTicketRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	result, err := tc.TicketService.Classify(req)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUpstream {
			// The ticket was flagged for manual approval in the ITSM.
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Could not classify the ticket, it was flagged for manual approval",
				Data: fiber.Map{
					"code": apperrors.CodeOf(err),
				},
			})
		}
		return tc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Ticket classified successfully",
		Data:    result,
	})
}

func (tc *Controller) sendError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: apperrors.MessageOf(err),
		Data: fiber.Map{
			"code": apperrors.CodeOf(err),
		},
	})
}
