package category

import (
	"helpdesk-backend/apperrors"
	"helpdesk-backend/logger"
	categoryModel "helpdesk-backend/models/category"
	syncService "helpdesk-backend/services/categorysync"
	"helpdesk-backend/types"
	"helpdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller serves the mirrored category tree and its sync operation
type Controller struct {
	DB          *gorm.DB
	Logger      *logger.AsyncLogger
	SyncService *syncService.Service
}

func NewCategoryController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:          db,
		Logger:      asyncLogger,
		SyncService: syncService.NewService(db),
	}
}

// List returns the full mirrored tree ordered by path.
func (cc *Controller) List(c *fiber.Ctx) error {
	var categories []categoryModel.Category
	if err := cc.DB.Order("full_path ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Categories retrieved successfully",
		Data:    categories,
	})
}

// SyncFromAPI reconciles the mirror against the ITSM category tree.
func (cc *Controller) SyncFromAPI(c *fiber.Ctx) error {
	cc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	stats, err := cc.SyncService.SyncFromAPI()
	if err != nil {
		logger.Error("Category sync failed", err)
		status := apperrors.HTTPStatus(err)
		return c.Status(status).JSON(types.ApiResponse{
			Status:  status,
			Message: apperrors.MessageOf(err),
			Data: fiber.Map{
				"code": apperrors.CodeOf(err),
			},
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Category sync completed",
		Data:    stats,
	})
}
