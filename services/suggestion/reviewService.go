package suggestion

import (
	"fmt"
	"strings"
	"time"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/constants"
	"helpdesk-backend/httpServices/n8n"
	"helpdesk-backend/logger"
	"helpdesk-backend/models/category"
	"helpdesk-backend/models/suggestion"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// ReviewNotifier confirms a review decision with the automation engine.
type ReviewNotifier interface {
	NotifyCategoryReview(payload n8n.CategoryReviewPayload) error
}

// Service manages the review queue of AI-proposed categories.
type Service struct {
	DB       *gorm.DB
	Notifier ReviewNotifier
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:       db,
		Notifier: n8n.NewClient(),
	}
}

// List returns suggestions, optionally filtered by status, newest first.
func (s *Service) List(status string) ([]suggestion.CategorySuggestion, error) {
	query := s.DB.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var suggestions []suggestion.CategorySuggestion
	if err := query.Find(&suggestions).Error; err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, nil
}

// Stats is the review queue dashboard summary.
type Stats struct {
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	Total         int64 `json:"total"`
	ReviewedToday int64 `json:"reviewed_today"`
}

// GetStats counts the queue by status plus decisions taken today.
func (s *Service) GetStats() (*Stats, error) {
	stats := &Stats{}

	counts := map[string]*int64{
		constants.SuggestionStatusPending:  &stats.Pending,
		constants.SuggestionStatusApproved: &stats.Approved,
		constants.SuggestionStatusRejected: &stats.Rejected,
	}
	for status, target := range counts {
		err := s.DB.Model(&suggestion.CategorySuggestion{}).
			Where("status = ?", status).
			Count(target).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count %s suggestions: %w", status, err)
		}
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected

	err := s.DB.Model(&suggestion.CategorySuggestion{}).
		Where("reviewed_at >= ?", now.BeginningOfDay()).
		Count(&stats.ReviewedToday).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count today's reviews: %w", err)
	}
	return stats, nil
}

// Update edits the path or notes of a suggestion that is still pending.
func (s *Service) Update(id uint, suggestedPath, notes string) (*suggestion.CategorySuggestion, error) {
	record, err := s.findByID(id)
	if err != nil {
		return nil, err
	}
	if !record.IsPending() {
		return nil, apperrors.State("already_reviewed", "suggestion has already been reviewed")
	}

	updates := map[string]interface{}{}
	if suggestedPath != "" {
		if !strings.HasPrefix(suggestedPath, "TI") {
			return nil, apperrors.Validation("invalid_path", "suggested path must be rooted at TI")
		}
		updates["suggested_path"] = category.JoinPath(category.SplitPath(suggestedPath))
	}
	if notes != "" {
		updates["notes"] = notes
	}
	if len(updates) == 0 {
		return record, nil
	}

	if err := s.DB.Model(record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update suggestion: %w", err)
	}
	return s.findByID(id)
}

// Approve accepts a pending suggestion. The automation webhook must confirm
// the decision before it is recorded; on webhook failure the suggestion
// stays pending.
func (s *Service) Approve(id uint, reviewedBy, notes string) (*suggestion.CategorySuggestion, error) {
	return s.review(id, constants.SuggestionStatusApproved, reviewedBy, notes)
}

// Reject declines a pending suggestion under the same webhook contract.
func (s *Service) Reject(id uint, reviewedBy, notes string) (*suggestion.CategorySuggestion, error) {
	return s.review(id, constants.SuggestionStatusRejected, reviewedBy, notes)
}

func (s *Service) review(id uint, status, reviewedBy, notes string) (*suggestion.CategorySuggestion, error) {
	record, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	reviewedAt := time.Now()
	payload := s.buildReviewPayload(record, status, reviewedBy, notes, reviewedAt)

	err = applyDecision(record, status, reviewedBy, notes, reviewedAt, func() error {
		return s.Notifier.NotifyCategoryReview(payload)
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUpstream {
			logger.Error(fmt.Sprintf("Review of suggestion %d not applied, webhook refused", id), err)
		}
		return nil, err
	}

	err = s.DB.Model(record).Updates(map[string]interface{}{
		"status":      record.Status,
		"notes":       record.Notes,
		"reviewed_by": record.ReviewedBy,
		"reviewed_at": record.ReviewedAt,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to record review decision: %w", err)
	}

	logger.Success(fmt.Sprintf("Suggestion %d %s by %s", id, status, reviewedBy))
	return s.findByID(id)
}

// applyDecision finalizes a review on the in-memory record. The confirm
// callback is the automation webhook: the decision only applies once it
// answers, and on failure the record is left untouched, still pending.
func applyDecision(record *suggestion.CategorySuggestion, status, reviewedBy, notes string, reviewedAt time.Time, confirm func() error) error {
	if !record.IsPending() {
		return apperrors.State("already_reviewed", "suggestion has already been reviewed")
	}
	if err := confirm(); err != nil {
		return err
	}

	record.Status = status
	record.ReviewedBy = reviewedBy
	record.Notes = notes
	record.ReviewedAt = &reviewedAt
	return nil
}

// buildReviewPayload resolves the deepest mirrored ancestor of the suggested
// path so automation knows where to attach the new category in the ITSM.
func (s *Service) buildReviewPayload(record *suggestion.CategorySuggestion, status, reviewedBy, notes string, reviewedAt time.Time) n8n.CategoryReviewPayload {
	parts := category.SplitPath(record.SuggestedPath)

	categoryName := ""
	if len(parts) > 0 {
		categoryName = parts[len(parts)-1]
	}

	parentGlpiID := 0
	for depth := len(parts) - 1; depth > 0; depth-- {
		parentPath := category.JoinPath(parts[:depth])
		var parent category.Category
		if err := s.DB.Where("full_path = ?", parentPath).First(&parent).Error; err == nil {
			parentGlpiID = parent.GlpiID
			break
		}
	}

	isIncident, isRequest, isProblem, isChange := pathTypeFlags(parts)

	return n8n.CategoryReviewPayload{
		SuggestionID:  record.ID,
		TicketID:      record.TicketID,
		SuggestedPath: record.SuggestedPath,
		ParentGlpiID:  parentGlpiID,
		CategoryName:  categoryName,
		Status:        status,
		Notes:         notes,
		ReviewedBy:    reviewedBy,
		ReviewedAt:    reviewedAt.Format(time.RFC3339),
		IsIncident:    isIncident,
		IsRequest:     isRequest,
		IsProblem:     isProblem,
		IsChange:      isChange,
	}
}

// pathTypeFlags derives the ITSM ticket-type flags from the branch the path
// sits on, which is the segment right below the "TI" root.
func pathTypeFlags(parts []string) (isIncident, isRequest, isProblem, isChange int) {
	if len(parts) == 0 {
		return
	}
	branch := strings.ToLower(strings.TrimSpace(parts[0]))
	if branch == "ti" && len(parts) > 1 {
		branch = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	switch {
	case strings.Contains(branch, "incidente"):
		isIncident = 1
	case strings.Contains(branch, "requisição"), strings.Contains(branch, "requisicao"):
		isRequest = 1
	case strings.Contains(branch, "problema"):
		isProblem = 1
	case strings.Contains(branch, "mudança"), strings.Contains(branch, "mudanca"):
		isChange = 1
	}
	return
}

func (s *Service) findByID(id uint) (*suggestion.CategorySuggestion, error) {
	var record suggestion.CategorySuggestion
	err := s.DB.First(&record, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("suggestion_not_found", "category suggestion not found")
		}
		return nil, fmt.Errorf("failed to load suggestion: %w", err)
	}
	return &record, nil
}
