package database

import (
	"fmt"
	"os"

	"helpdesk-backend/logger"
	"helpdesk-backend/models/category"
	"helpdesk-backend/models/log"
	"helpdesk-backend/models/providertoken"
	"helpdesk-backend/models/resetrequest"
	"helpdesk-backend/models/suggestion"
	"helpdesk-backend/models/survey"
	"helpdesk-backend/models/ticket"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Handle foreign key constraints after migrations
	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Foundation models without foreign keys
	stage1Models := []interface{}{
		&category.Category{},
		&resetrequest.ResetRequest{},
		&providertoken.ProviderToken{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&resetrequest.OtpCode{},
		&ticket.Ticket{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		&suggestion.CategorySuggestion{},
		&survey.SatisfactionSurvey{},
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Reset request indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reset_requests_identifier_created_at ON reset_requests(identifier, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create reset request identifier index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reset_requests_status ON reset_requests(status)").Error; err != nil {
		return fmt.Errorf("failed to create reset request status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_otp_codes_request_status ON otp_codes(reset_request_id, status)").Error; err != nil {
		return fmt.Errorf("failed to create otp code request/status index: %w", err)
	}

	// Category mirror indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_categories_full_path ON categories(full_path)").Error; err != nil {
		return fmt.Errorf("failed to create category full_path index: %w", err)
	}

	// Ticket indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_tickets_itsm_status ON tickets(itsm_status)").Error; err != nil {
		return fmt.Errorf("failed to create ticket itsm_status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_tickets_classification_method ON tickets(classification_method)").Error; err != nil {
		return fmt.Errorf("failed to create ticket classification_method index: %w", err)
	}

	// Suggestion indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_category_suggestions_reviewed_at ON category_suggestions(reviewed_at)").Error; err != nil {
		return fmt.Errorf("failed to create suggestion reviewed_at index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_otp_codes_reset_request",
			sql: `ALTER TABLE otp_codes ADD CONSTRAINT fk_otp_codes_reset_request
				  FOREIGN KEY (reset_request_id) REFERENCES reset_requests(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_tickets_category",
			sql: `ALTER TABLE tickets ADD CONSTRAINT fk_tickets_category
				  FOREIGN KEY (category_id) REFERENCES categories(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_categories_parent",
			sql: `ALTER TABLE categories ADD CONSTRAINT fk_categories_parent
				  FOREIGN KEY (parent_id) REFERENCES categories(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Legacy function for backward compatibility
func ConnectDB() (*gorm.DB, error) {
	return InitDB()
}
