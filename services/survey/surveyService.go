package survey

import (
	"fmt"
	"time"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/constants"
	"helpdesk-backend/httpServices/n8n"
	"helpdesk-backend/logger"
	"helpdesk-backend/models/survey"
	"helpdesk-backend/models/ticket"

	"gorm.io/gorm"
)

// SurveyNotifier pushes a survey answer back to the ITSM updater flow.
type SurveyNotifier interface {
	NotifySurveyResponse(ticketID, rating int, comment string) bool
}

// Service records satisfaction survey answers, one per ticket.
type Service struct {
	DB       *gorm.DB
	Notifier SurveyNotifier
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:       db,
		Notifier: n8n.NewClient(),
	}
}

// RateResult carries the stored survey plus the token the respondent needs
// to change the answer later. The token is only revealed on first response.
type RateResult struct {
	Survey   *survey.SatisfactionSurvey `json:"survey"`
	Token    string                     `json:"token,omitempty"`
	Notified bool                       `json:"notified"`
}

// Rate stores a rating for a ticket. The first answer creates the survey and
// issues the anti-fraud token; later changes require presenting that token.
func (s *Service) Rate(ticketID, rating int, token string) (*RateResult, error) {
	if !survey.IsValidRating(rating) {
		return nil, apperrors.Validation("invalid_rating", "rating must be between 1 and 5")
	}
	if err := s.ensureTicketExists(ticketID); err != nil {
		return nil, err
	}

	var record survey.SatisfactionSurvey
	err := s.DB.Where("ticket_id = ?", ticketID).First(&record).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}

	respondedAt := time.Now()

	if err == gorm.ErrRecordNotFound {
		newToken, err := survey.GenerateToken()
		if err != nil {
			return nil, fmt.Errorf("failed to generate survey token: %w", err)
		}
		tokenExpiresAt := respondedAt.Add(constants.SurveyTokenExpiry())

		record = survey.SatisfactionSurvey{
			TicketID:       ticketID,
			Rating:         rating,
			Token:          newToken,
			TokenExpiresAt: &tokenExpiresAt,
			RespondedAt:    &respondedAt,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to store survey response: %w", err)
		}

		notified := s.Notifier.NotifySurveyResponse(ticketID, rating, record.Comment)
		logger.Success(fmt.Sprintf("Survey created for ticket %d with rating %d", ticketID, rating))
		return &RateResult{Survey: &record, Token: newToken, Notified: notified}, nil
	}

	// Survey exists: only the token holder may change the answer.
	if !record.IsTokenValid(token) {
		return nil, apperrors.State("already_rated", "this ticket was already rated, a valid token is required to change the answer")
	}

	err = s.DB.Model(&record).Updates(map[string]interface{}{
		"rating":       rating,
		"responded_at": respondedAt,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update survey response: %w", err)
	}
	record.Rating = rating
	record.RespondedAt = &respondedAt

	notified := s.Notifier.NotifySurveyResponse(ticketID, rating, record.Comment)
	return &RateResult{Survey: &record, Notified: notified}, nil
}

// Comment attaches free text to an answered survey. Token gated.
func (s *Service) Comment(ticketID int, comment, token string) (*survey.SatisfactionSurvey, error) {
	var record survey.SatisfactionSurvey
	err := s.DB.Where("ticket_id = ?", ticketID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("survey_not_found", "no survey response exists for this ticket")
		}
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}

	if !record.IsTokenValid(token) {
		return nil, apperrors.State("invalid_token", "a valid survey token is required to comment")
	}

	if err := s.DB.Model(&record).Update("comment", comment).Error; err != nil {
		return nil, fmt.Errorf("failed to store survey comment: %w", err)
	}
	record.Comment = comment

	s.Notifier.NotifySurveyResponse(ticketID, record.Rating, comment)
	return &record, nil
}

// Reset clears a ticket's survey so a new response cycle can start.
// Admin operation.
func (s *Service) Reset(ticketID int) error {
	result := s.DB.Where("ticket_id = ?", ticketID).Delete(&survey.SatisfactionSurvey{})
	if result.Error != nil {
		return fmt.Errorf("failed to reset survey: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("survey_not_found", "no survey response exists for this ticket")
	}
	logger.Info(fmt.Sprintf("Survey reset for ticket %d", ticketID))
	return nil
}

func (s *Service) ensureTicketExists(ticketID int) error {
	var count int64
	err := s.DB.Model(&ticket.Ticket{}).Where("id = ?", ticketID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check ticket: %w", err)
	}
	if count == 0 {
		return apperrors.NotFound("ticket_not_found", "ticket not found")
	}
	return nil
}
