package reset

import (
	"helpdesk-backend/apperrors"
	"helpdesk-backend/logger"
	resetService "helpdesk-backend/services/reset"
	"helpdesk-backend/types"
	"helpdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles the self-service password reset endpoints
type Controller struct {
	DB           *gorm.DB
	Logger       *logger.AsyncLogger
	ResetService *resetService.Service
}

func NewResetController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:           db,
		Logger:       asyncLogger,
		ResetService: resetService.NewService(db),
	}
}

// RequestReset starts a reset: checks the account with the provider and
// sends the first code to the registered phone.
func (rc *Controller) RequestReset(c *fiber.Ctx) error {
	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	var req types.RequestResetRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	request, maskedPhone, err := rc.ResetService.RequestReset(req.Identifier, req.System)
	if err != nil {
		logger.Error("Failed to create reset request", err)
		return rc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "A verification code was sent to " + maskedPhone,
		Data: fiber.Map{
			"token":      request.Token,
			"status":     request.Status,
			"phone":      maskedPhone,
			"expires_at": request.ExpiresAt,
		},
	})
}

// ValidateOtp checks the submitted code against the live one.
func (rc *Controller) ValidateOtp(c *fiber.Ctx) error {
	// Codes must never land in the log table
	rc.Logger.Log(utils.CreateSanitizedLogEntryWithCustomBody(c, "[OTP_BODY_REDACTED]", ""))

	var req types.ValidateOtpRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	request, err := rc.ResetService.ValidateOtp(req.Token, req.OtpCode)
	if err != nil {
		return rc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Code validated, you can now set a new password",
		Data: fiber.Map{
			"token":  request.Token,
			"status": request.Status,
		},
	})
}

// ResendOtp issues a fresh code, superseding the previous one.
func (rc *Controller) ResendOtp(c *fiber.Ctx) error {
	var req types.ResendOtpRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	request, err := rc.ResetService.ResendOtp(req.Token)
	if err != nil {
		return rc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "A new verification code was sent",
		Data: fiber.Map{
			"token":  request.Token,
			"status": request.Status,
		},
	})
}

// ConfirmReset executes the password change on the target systems.
func (rc *Controller) ConfirmReset(c *fiber.Ctx) error {
	// The body carries the new password, keep it out of the log table
	rc.Logger.Log(utils.CreateSanitizedLogEntryWithCustomBody(c, "[PASSWORD_BODY_REDACTED]", ""))

	var req types.ConfirmResetRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	request, err := rc.ResetService.ConfirmReset(req.Token, req.NewPassword)
	if err != nil {
		logger.Error("Failed to confirm password reset", err)
		return rc.sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Password reset completed",
		Data: fiber.Map{
			"token":        request.Token,
			"status":       request.Status,
			"completed_at": request.CompletedAt,
		},
	})
}

func (rc *Controller) sendError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: apperrors.MessageOf(err),
		Data: fiber.Map{
			"code": apperrors.CodeOf(err),
		},
	})
}
