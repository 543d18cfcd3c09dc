package types

// PreviewClassificationRequest classifies free text without a ticket.
type PreviewClassificationRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateSuggestionRequest edits a pending suggestion.
type UpdateSuggestionRequest struct {
	SuggestedPath string `json:"suggested_path"`
	Notes         string `json:"notes"`
}

// ReviewSuggestionRequest carries the reviewer's decision context.
type ReviewSuggestionRequest struct {
	ReviewedBy string `json:"reviewed_by"`
	Notes      string `json:"notes"`
}
