package resetrequest

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"helpdesk-backend/constants"
)

// ResetRequest represents a self-service password reset request
type ResetRequest struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Token          string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"token"`
	Identifier     string     `gorm:"type:varchar(255);not null;index" json:"identifier"`
	System         string     `gorm:"type:varchar(20);not null" json:"system"`
	Status         string     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	PhoneEncrypted string     `gorm:"type:text" json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	ExpiresAt      time.Time  `gorm:"not null" json:"expires_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	OtpCodes []OtpCode `gorm:"foreignKey:ResetRequestID" json:"-"`
}

// GenerateToken generates a url-safe random token for the request
func GenerateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// IsExpired checks if the reset request has expired
func (r *ResetRequest) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// IsTerminal checks if the request reached an absorbing state
func (r *ResetRequest) IsTerminal() bool {
	switch r.Status {
	case constants.ResetStatusCompleted, constants.ResetStatusExpired, constants.ResetStatusFailed:
		return true
	default:
		return false
	}
}

// CanGenerateOtp checks whether a new OTP may be issued in the current state
func (r *ResetRequest) CanGenerateOtp() bool {
	switch r.Status {
	case constants.ResetStatusPending, constants.ResetStatusOtpSent, constants.ResetStatusOtpValidated:
		return true
	default:
		return false
	}
}

// CanConfirm checks whether the password reset may be executed
func (r *ResetRequest) CanConfirm() bool {
	return r.Status == constants.ResetStatusOtpValidated
}

// OtpCode represents a one-time password bound to a reset request.
// A request owns at most one live (pending) code; issuing a new code
// supersedes the previous one.
type OtpCode struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ResetRequestID uint       `gorm:"not null;index" json:"reset_request_id"`
	Code           string     `gorm:"type:varchar(6);not null" json:"-"`
	Status         string     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	Attempts       int        `gorm:"default:0" json:"attempts"`
	MaxAttempts    int        `gorm:"default:3" json:"max_attempts"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt      time.Time  `gorm:"not null" json:"expires_at"`
	ValidatedAt    *time.Time `json:"validated_at,omitempty"`
}

// IsExpired checks if the OTP code has expired
func (o *OtpCode) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// IsLive checks if the code is still the one accepted by validation
func (o *OtpCode) IsLive() bool {
	return o.Status == constants.OtpStatusPending && !o.IsExpired()
}

// HasExceededAttempts checks if the attempt limit has been reached
func (o *OtpCode) HasExceededAttempts() bool {
	return o.Attempts >= o.MaxAttempts
}

// RemainingAttempts returns how many validation attempts are left
func (o *OtpCode) RemainingAttempts() int {
	remaining := o.MaxAttempts - o.Attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}
