package server

import (
	"helpdesk-backend/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatusController answers the root health probe used by the reverse proxy
// and the automation engine.
type StatusController struct {
	DB *gorm.DB
}

func NewStatusController(db *gorm.DB) *StatusController {
	return &StatusController{DB: db}
}

// Health reports service liveness and database reachability.
func (sc *StatusController) Health(c *fiber.Ctx) error {
	dbStatus := "ok"
	if sqlDB, err := sc.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "helpdesk-backend is running",
		Data: fiber.Map{
			"service":  "helpdesk-backend",
			"status":   "ok",
			"database": dbStatus,
		},
	})
}
