package routes

import (
	"helpdesk-backend/constants"
	categoryController "helpdesk-backend/controllers/category"
	resetController "helpdesk-backend/controllers/reset"
	serverController "helpdesk-backend/controllers/server"
	suggestionController "helpdesk-backend/controllers/suggestion"
	surveyController "helpdesk-backend/controllers/survey"
	ticketController "helpdesk-backend/controllers/ticket"
	"helpdesk-backend/logger"
	"helpdesk-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	resetCtrl := resetController.NewResetController(db, asyncLogger)
	categoryCtrl := categoryController.NewCategoryController(db, asyncLogger)
	ticketCtrl := ticketController.NewTicketController(db, asyncLogger)
	suggestionCtrl := suggestionController.NewSuggestionController(db, asyncLogger)
	surveyCtrl := surveyController.NewSurveyController(db, asyncLogger)
	statusCtrl := serverController.NewStatusController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", statusCtrl.Health)

	api := app.Group("/api")

	/*=============================================================================
	| Password Reset Routes (public, token-gated by the workflow itself)
	===============================================================================*/
	resetGroup := api.Group("/password-reset")
	resetGroup.Post("/request", resetCtrl.RequestReset)
	resetGroup.Post("/validate-otp", resetCtrl.ValidateOtp)
	resetGroup.Post("/resend-otp", resetCtrl.ResendOtp)
	resetGroup.Post("/confirm", resetCtrl.ConfirmReset)

	/*=============================================================================
	| Category Mirror Routes
	===============================================================================*/
	categoryGroup := api.Group("/categories")
	categoryGroup.Get("/", middleware.RequireAnyPermission(), categoryCtrl.List)
	categoryGroup.Post("/sync-from-api", middleware.RequirePermissions(
		constants.PermHelpdeskAdminFull,
		constants.PermOperatorFull,
	), categoryCtrl.SyncFromAPI)

	/*=============================================================================
	| Ticket Routes
	===============================================================================*/
	ticketGroup := api.Group("/tickets")

	// Webhook intake called by the automation engine, not by users
	ticketGroup.Post("/webhook", ticketCtrl.Webhook)

	ticketGroup.Get("/", middleware.RequireAnyPermission(), ticketCtrl.List)
	ticketGroup.Post("/classify", middleware.RequirePermissions(
		constants.PermHelpdeskAdminFull,
		constants.PermOperatorFull,
	), ticketCtrl.Classify)
	ticketGroup.Get("/:id", middleware.RequireAnyPermission(), ticketCtrl.Get)

	/*=============================================================================
	| Category Suggestion Review Routes
	===============================================================================*/
	suggestionGroup := api.Group("/category-suggestions")
	suggestionGroup.Get("/", middleware.RequireAnyPermission(), suggestionCtrl.List)
	suggestionGroup.Get("/stats", middleware.RequireAnyPermission(), suggestionCtrl.Stats)
	suggestionGroup.Post("/preview", middleware.RequirePermissions(
		constants.ReviewPermissions...,
	), suggestionCtrl.Preview)
	suggestionGroup.Put("/:id", middleware.RequirePermissions(
		constants.ReviewPermissions...,
	), suggestionCtrl.Update)
	suggestionGroup.Post("/:id/approve", middleware.RequirePermissions(
		constants.ReviewPermissions...,
	), suggestionCtrl.Approve)
	suggestionGroup.Post("/:id/reject", middleware.RequirePermissions(
		constants.ReviewPermissions...,
	), suggestionCtrl.Reject)

	/*=============================================================================
	| Satisfaction Survey Routes (rated from an email link, so mostly public)
	===============================================================================*/
	surveyGroup := app.Group("/satisfaction-survey")
	surveyGroup.Post("/:ticketID/rate/:rating", surveyCtrl.Rate)
	surveyGroup.Post("/:ticketID/comment", surveyCtrl.Comment)
	surveyGroup.Post("/:ticketID/reset", middleware.RequirePermissions(
		constants.PermHelpdeskAdminFull,
	), surveyCtrl.Reset)
}
