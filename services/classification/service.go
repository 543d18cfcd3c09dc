package classification

import (
	"fmt"
	"strings"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/constants"
	"helpdesk-backend/logger"
	"helpdesk-backend/models/category"
	"helpdesk-backend/models/suggestion"
	"helpdesk-backend/utils"

	"gorm.io/gorm"
)

// Suggester proposes a new category path and its confidence when the mirror
// has no fit.
type Suggester func(title, content, categoriesText string, similarPaths []string) (string, string, error)

// Service classifies tickets against the mirrored category tree, falling
// back to an AI-proposed new category that a human must approve.
type Service struct {
	Suggest Suggester

	load    func() ([]category.Category, error)
	persist func(*suggestion.CategorySuggestion) error
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		Suggest: SuggestNewPath,
		load: func() ([]category.Category, error) {
			var categories []category.Category
			if err := db.Find(&categories).Error; err != nil {
				return nil, fmt.Errorf("failed to load category mirror: %w", err)
			}
			return categories, nil
		},
		persist: func(row *suggestion.CategorySuggestion) error {
			return db.Create(row).Error
		},
	}
}

// Result is the outcome of classifying one ticket.
type Result struct {
	Method          string                         `json:"classification_method"`
	CategoryID      uint                           `json:"category_id,omitempty"`
	GlpiID          int                            `json:"glpi_id,omitempty"`
	CategoryPath    string                         `json:"category_path,omitempty"`
	Confidence      string                         `json:"confidence"`
	TicketType      int                            `json:"ticket_type,omitempty"`
	TicketTypeLabel string                         `json:"ticket_type_label,omitempty"`
	Suggestion      *suggestion.CategorySuggestion `json:"suggestion,omitempty"`
}

// Classify matches the ticket against existing categories first; only when
// no confident match exists does it ask the model for a new path, which is
// stored as a pending suggestion for review. Returns an error when neither
// route produces an answer, so the caller can flag the ticket for manual
// triage.
func (s *Service) Classify(ticketID int, title, content string) (*Result, error) {
	return s.classify(ticketID, title, content, constants.SuggestionSourceTicket)
}

// Preview runs the same pipeline on free text without a ticket behind it.
// Nothing is persisted; a new-path outcome comes back as an unsaved draft.
func (s *Service) Preview(title, content string) (*Result, error) {
	return s.classify(0, title, content, constants.SuggestionSourcePreview)
}

func (s *Service) classify(ticketID int, title, content, source string) (*Result, error) {
	content = utils.CleanHTMLContent(content)

	categories, err := s.load()
	if err != nil {
		return nil, err
	}

	if match := MatchExisting(title, content, categories); match != nil && match.Confidence == constants.ConfidenceHigh {
		return &Result{
			Method:          constants.ClassificationMethodExisting,
			CategoryID:      match.CategoryID,
			GlpiID:          match.GlpiID,
			CategoryPath:    match.FullPath,
			Confidence:      match.Confidence,
			TicketType:      match.TicketType,
			TicketTypeLabel: match.TicketTypeLabel,
		}, nil
	}

	suggestedPath, confidence, err := s.Suggest(title, content, categoriesText(categories), similarPaths(title, content, categories))
	if err != nil {
		logger.Error("Category suggestion is unavailable", err)
		return nil, apperrors.Upstream("classification_unavailable", "no confident match and the suggestion model is unavailable", err)
	}

	newSuggestion := &suggestion.CategorySuggestion{
		TicketID:      ticketID,
		TicketTitle:   title,
		TicketContent: content,
		SuggestedPath: suggestedPath,
		Confidence:    confidence,
		Source:        source,
		Status:        constants.SuggestionStatusPending,
	}
	// A preview is a dry run: the draft goes back to the caller only, it
	// never reaches the review queue.
	if source != constants.SuggestionSourcePreview {
		if err := s.persist(newSuggestion); err != nil {
			return nil, fmt.Errorf("failed to store category suggestion: %w", err)
		}
	}

	ticketType, label := DetermineTicketType(category.SplitPath(suggestedPath))
	return &Result{
		Method:          constants.ClassificationMethodSuggestion,
		CategoryPath:    suggestedPath,
		Confidence:      confidence,
		TicketType:      ticketType,
		TicketTypeLabel: label,
		Suggestion:      newSuggestion,
	}, nil
}

// categoriesText renders the mirror as the flat list the prompt expects.
func categoriesText(categories []category.Category) string {
	var sb strings.Builder
	for i := range categories {
		sb.WriteString(fmt.Sprintf("- %s (ID: %d)\n", category.JoinPath(categories[i].PathParts()), categories[i].GlpiID))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// similarPaths picks existing category paths sharing vocabulary with the
// ticket so the model reuses established names instead of inventing new
// ones. Capped to keep the prompt small.
func similarPaths(title, content string, categories []category.Category) []string {
	text := strings.ToLower(title + " " + content)

	var similar []string
	for i := range categories {
		for _, part := range categories[i].PathParts() {
			partLower := strings.ToLower(part)
			if len(partLower) > 4 && strings.Contains(text, partLower) {
				similar = append(similar, category.JoinPath(categories[i].PathParts()))
				break
			}
		}
		if len(similar) >= 10 {
			break
		}
	}
	return similar
}
