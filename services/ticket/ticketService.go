package ticket

import (
	"encoding/json"
	"fmt"
	"time"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/constants"
	"helpdesk-backend/logger"
	"helpdesk-backend/models/category"
	"helpdesk-backend/models/ticket"
	"helpdesk-backend/services/classification"
	"helpdesk-backend/types"
	"helpdesk-backend/utils"

	"gorm.io/gorm"
)

// Service stores ticket snapshots received from the ITSM and applies
// classification results to them.
type Service struct {
	DB         *gorm.DB
	Classifier *classification.Service
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:         db,
		Classifier: classification.NewService(db),
	}
}

// UpsertFromWebhook stores or refreshes the local snapshot of an ITSM
// ticket. Content arrives as HTML and is cleaned before storage; the raw
// payload is kept for audit.
func (s *Service) UpsertFromWebhook(payload types.TicketWebhookRequest) (*ticket.Ticket, error) {
	if payload.ID <= 0 {
		return nil, apperrors.Validation("invalid_ticket_id", "ticket id must be a positive integer")
	}
	if payload.Name == "" {
		return nil, apperrors.Validation("missing_title", "ticket name is required")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize raw payload: %w", err)
	}

	var dateCreated *time.Time
	if payload.DateCreation != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, payload.DateCreation); err == nil {
				dateCreated = &parsed
				break
			}
		}
	}

	now := time.Now()
	row := ticket.Ticket{
		ID:               payload.ID,
		Title:            payload.Name,
		Content:          utils.CleanHTMLContent(payload.Content),
		RawPayload:       string(raw),
		DateCreated:      dateCreated,
		RequesterID:      payload.UserRecipientID,
		RequesterName:    payload.UserRecipientName,
		Location:         payload.Location,
		CategoryName:     payload.CategoryName,
		EntityID:         payload.EntityID,
		EntityName:       payload.EntityName,
		TeamAssignedID:   payload.TeamAssignedID,
		TeamAssignedName: payload.TeamAssignedName,
		LastITSMUpdate:   &now,
	}

	var existing ticket.Ticket
	err = s.DB.First(&existing, payload.ID).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		if err := s.DB.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to create ticket %d: %w", payload.ID, err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load ticket %d: %w", payload.ID, err)
	default:
		// Classification fields are owned locally and survive the refresh.
		row.CategoryID = existing.CategoryID
		row.ClassificationMethod = existing.ClassificationMethod
		row.ClassificationConfidence = existing.ClassificationConfidence
		row.ITSMStatus = existing.ITSMStatus
		row.CreatedAt = existing.CreatedAt
		if err := s.DB.Save(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to update ticket %d: %w", payload.ID, err)
		}
	}

	logger.Info(fmt.Sprintf("Ticket %d stored from webhook", payload.ID))
	return &row, nil
}

// List returns the local snapshots, newest first.
func (s *Service) List() ([]ticket.Ticket, error) {
	var tickets []ticket.Ticket
	if err := s.DB.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// Get loads one ticket by its ITSM id.
func (s *Service) Get(id int) (*ticket.Ticket, error) {
	var row ticket.Ticket
	err := s.DB.First(&row, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("ticket_not_found", "ticket not found")
		}
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	return &row, nil
}

// Classify runs the classification pipeline and writes the result onto the
// ticket. When classification is unavailable the ticket is flagged for
// manual approval in the ITSM before the error is returned.
func (s *Service) Classify(req types.ClassifyTicketRequest) (*classification.Result, error) {
	if req.Title == "" {
		return nil, apperrors.Validation("missing_title", "title is required")
	}

	result, err := s.Classifier.Classify(req.TicketID, req.Title, req.Content)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUpstream {
			s.flagForApproval(req.TicketID)
		}
		return nil, err
	}

	if req.TicketID > 0 {
		if applyErr := s.applyResult(req.TicketID, result); applyErr != nil {
			// The classification stands even if the ticket row is missing.
			logger.Warning(fmt.Sprintf("Classification of ticket %d not persisted: %v", req.TicketID, applyErr))
		}
	}
	return result, nil
}

func (s *Service) applyResult(ticketID int, result *classification.Result) error {
	var row ticket.Ticket
	if err := s.DB.First(&row, ticketID).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"classification_method":     result.Method,
		"classification_confidence": result.Confidence,
	}
	if result.Method == constants.ClassificationMethodExisting {
		var matched category.Category
		if err := s.DB.Where("glpi_id = ?", result.GlpiID).First(&matched).Error; err == nil {
			updates["category_id"] = matched.ID
			updates["category_name"] = result.CategoryPath
		}
	} else {
		updates["category_name"] = result.CategoryPath
	}

	return s.DB.Model(&row).Updates(updates).Error
}

func (s *Service) flagForApproval(ticketID int) {
	if ticketID <= 0 {
		return
	}
	err := s.DB.Model(&ticket.Ticket{}).
		Where("id = ?", ticketID).
		Update("itsm_status", constants.ITSMStatusApproval).Error
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to flag ticket %d for approval", ticketID), err)
	}
}
