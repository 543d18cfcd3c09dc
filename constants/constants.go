package constants

import (
	"os"
	"strconv"
	"time"
)

// Target systems for a password reset request
const (
	SystemZoho = "zoho"
	SystemAD   = "ad"
	SystemBoth = "both"
)

// IsValidSystem reports whether the given system is a recognized target.
func IsValidSystem(system string) bool {
	switch system {
	case SystemZoho, SystemAD, SystemBoth:
		return true
	default:
		return false
	}
}

// Reset request statuses
const (
	ResetStatusPending      = "pending"
	ResetStatusOtpSent      = "otp_sent"
	ResetStatusOtpValidated = "otp_validated"
	ResetStatusCompleted    = "completed"
	ResetStatusExpired      = "expired"
	ResetStatusFailed       = "failed"
)

// OTP code statuses
const (
	OtpStatusPending    = "pending"
	OtpStatusValidated  = "validated"
	OtpStatusSuperseded = "superseded"
	OtpStatusExpired    = "expired"
)

// Category suggestion statuses
const (
	SuggestionStatusPending  = "pending"
	SuggestionStatusApproved = "approved"
	SuggestionStatusRejected = "rejected"
)

// Category suggestion sources
const (
	SuggestionSourceTicket  = "ticket"
	SuggestionSourcePreview = "preview"
)

// Classification methods
const (
	ClassificationMethodExisting   = "existing_category"
	ClassificationMethodSuggestion = "new_suggestion"
)

// Classification confidence levels
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ITSMStatusApproval is written onto a ticket when automatic classification
// is unavailable and a human must pick the category in the ITSM.
const ITSMStatusApproval = "Aprovação"

// Workflow defaults, overridable via environment
const (
	DefaultOtpExpiryMinutes        = 10
	DefaultResetRequestExpiryHours = 1
	DefaultMaxOtpAttempts          = 3
	DefaultMaxResetRequestsPerHour = 3
	DefaultSurveyTokenExpiryDays   = 7
)

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// OtpExpiry returns the OTP time-to-live.
func OtpExpiry() time.Duration {
	return time.Duration(envInt("OTP_EXPIRY_MINUTES", DefaultOtpExpiryMinutes)) * time.Minute
}

// ResetRequestExpiry returns the reset request time-to-live.
func ResetRequestExpiry() time.Duration {
	return time.Duration(envInt("RESET_REQUEST_EXPIRY_HOURS", DefaultResetRequestExpiryHours)) * time.Hour
}

// MaxOtpAttempts returns the validation attempt limit per OTP code.
func MaxOtpAttempts() int {
	return envInt("MAX_OTP_ATTEMPTS", DefaultMaxOtpAttempts)
}

// MaxResetRequestsPerHour returns the per-identifier rate limit.
func MaxResetRequestsPerHour() int {
	return envInt("MAX_RESET_REQUESTS_PER_HOUR", DefaultMaxResetRequestsPerHour)
}

// SurveyTokenExpiry returns the anti-fraud token validity window.
func SurveyTokenExpiry() time.Duration {
	return time.Duration(envInt("SURVEY_TOKEN_EXPIRY_DAYS", DefaultSurveyTokenExpiryDays)) * 24 * time.Hour
}
