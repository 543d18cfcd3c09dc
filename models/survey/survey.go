package survey

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// SatisfactionSurvey stores one rating (and optional comment) per ticket.
// The anti-fraud token issued on the first response must accompany every
// later change until an admin resets the survey.
type SatisfactionSurvey struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID       int        `gorm:"not null;uniqueIndex" json:"ticket_id"`
	Rating         int        `gorm:"not null" json:"rating"`
	Comment        string     `gorm:"type:text" json:"comment"`
	Token          string     `gorm:"type:varchar(64)" json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	RespondedAt    *time.Time `json:"responded_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// GenerateToken generates a url-safe anti-fraud token
func GenerateToken() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// IsTokenValid checks the supplied token against the stored one
func (s *SatisfactionSurvey) IsTokenValid(token string) bool {
	if s.Token == "" || token == "" || s.Token != token {
		return false
	}
	if s.TokenExpiresAt == nil {
		return false
	}
	return time.Now().Before(*s.TokenExpiresAt)
}

// IsValidRating checks the rating range accepted by the survey
func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
