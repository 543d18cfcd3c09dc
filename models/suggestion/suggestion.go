package suggestion

import (
	"time"

	"helpdesk-backend/constants"
)

// CategorySuggestion is an AI-proposed category path waiting for review.
// It snapshots the ticket title/content so the reviewer can judge the
// suggestion even if the ticket changes later.
type CategorySuggestion struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID      int        `gorm:"index" json:"ticket_id"`
	TicketTitle   string     `gorm:"type:varchar(255)" json:"ticket_title"`
	TicketContent string     `gorm:"type:text" json:"ticket_content"`
	SuggestedPath string     `gorm:"type:varchar(1024);not null" json:"suggested_path"`
	Confidence    string     `gorm:"type:varchar(20)" json:"confidence"`
	Source        string     `gorm:"type:varchar(20);default:ticket" json:"source"`
	Status        string     `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Notes         string     `gorm:"type:text" json:"notes"`
	ReviewedBy    string     `gorm:"type:varchar(255)" json:"reviewed_by"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsPending checks if the suggestion can still be reviewed or edited
func (s *CategorySuggestion) IsPending() bool {
	return s.Status == constants.SuggestionStatusPending
}
