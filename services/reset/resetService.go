package reset

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/constants"
	"helpdesk-backend/httpServices/directory"
	"helpdesk-backend/httpServices/sms"
	"helpdesk-backend/httpServices/zoho"
	"helpdesk-backend/logger"
	"helpdesk-backend/models/resetrequest"
	"helpdesk-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MailboxProvider resolves identifiers and resets mailbox passwords.
type MailboxProvider interface {
	GetUserPhoneByEmail(email string) (string, error)
	ResetPassword(email, newPassword string) error
}

// DirectoryProvider resolves and resets directory accounts.
type DirectoryProvider interface {
	UserExists(username string) (bool, error)
	ResetPassword(username, newPassword string) error
}

// SmsSender delivers one-time codes.
type SmsSender interface {
	SendOtp(phone, code string) error
}

// Service drives the self-service password reset workflow.
type Service struct {
	DB        *gorm.DB
	Mailbox   MailboxProvider
	Directory DirectoryProvider
	SMS       SmsSender
}

// NewService wires the workflow to the real providers.
func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:        db,
		Mailbox:   zoho.NewClient(db),
		Directory: directory.NewClient(),
		SMS:       sms.NewClient(),
	}
}

// RequestReset validates the identifier against the target system, enforces
// the per-identifier rate limit, creates a reset request and sends the first
// OTP to the phone number registered with the provider.
func (s *Service) RequestReset(identifier, system string) (*resetrequest.ResetRequest, string, error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if identifier == "" {
		return nil, "", apperrors.Validation("invalid_identifier", "identifier is required")
	}
	if !constants.IsValidSystem(system) {
		return nil, "", apperrors.Validation("invalid_system", "system must be one of: zoho, ad, both")
	}

	if err := s.checkRateLimit(identifier); err != nil {
		return nil, "", err
	}

	phone, err := s.resolvePhone(identifier, system)
	if err != nil {
		return nil, "", err
	}

	phoneEncrypted, err := utils.EncryptSecret(phone)
	if err != nil {
		return nil, "", fmt.Errorf("failed to protect phone number: %w", err)
	}

	token, err := resetrequest.GenerateToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate request token: %w", err)
	}

	// Older live requests for the same identifier lose to the new one.
	err = s.DB.Model(&resetrequest.ResetRequest{}).
		Where("identifier = ? AND status IN ?", identifier, []string{
			constants.ResetStatusPending,
			constants.ResetStatusOtpSent,
			constants.ResetStatusOtpValidated,
		}).
		Update("status", constants.ResetStatusExpired).Error
	if err != nil {
		return nil, "", fmt.Errorf("failed to expire previous requests: %w", err)
	}

	request := &resetrequest.ResetRequest{
		Token:          token,
		Identifier:     identifier,
		System:         system,
		Status:         constants.ResetStatusPending,
		PhoneEncrypted: phoneEncrypted,
		ExpiresAt:      time.Now().Add(constants.ResetRequestExpiry()),
	}
	if err := s.DB.Create(request).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create reset request: %w", err)
	}

	if err := s.GenerateAndSendOtp(request); err != nil {
		return nil, "", err
	}

	logger.Success("Reset request created for " + identifier + " (" + system + ")")
	return request, MaskPhone(phone), nil
}

func (s *Service) checkRateLimit(identifier string) error {
	var count int64
	err := s.DB.Model(&resetrequest.ResetRequest{}).
		Where("identifier = ? AND created_at > ?", identifier, time.Now().Add(-time.Hour)).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check rate limit: %w", err)
	}
	if count >= int64(constants.MaxResetRequestsPerHour()) {
		return apperrors.RateLimit("too many reset requests for this account, try again later")
	}
	return nil
}

// resolvePhone confirms the identifier exists in every target system and
// returns the phone number registered on the mailbox account, which is the
// organization's phone registry.
func (s *Service) resolvePhone(identifier, system string) (string, error) {
	if system == constants.SystemAD || system == constants.SystemBoth {
		exists, err := s.Directory.UserExists(usernameFromIdentifier(identifier))
		if err != nil {
			return "", err
		}
		if !exists {
			return "", apperrors.NotFound("user_not_found", "account not found in the directory")
		}
	}

	phone, err := s.Mailbox.GetUserPhoneByEmail(identifier)
	if err != nil {
		return "", err
	}
	if phone == "" {
		return "", apperrors.NotFound("user_not_found", "no account with a registered phone number was found")
	}
	return phone, nil
}

// GenerateAndSendOtp supersedes any live code, issues a fresh one and
// delivers it by SMS. The code never outlives its parent request.
func (s *Service) GenerateAndSendOtp(request *resetrequest.ResetRequest) error {
	if request.IsExpired() {
		s.markExpired(request)
		return apperrors.Expired("request_expired", "reset request has expired")
	}
	if !request.CanGenerateOtp() {
		return apperrors.State("invalid_state", "reset request does not accept a new code in its current state")
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	otp := resetrequest.OtpCode{
		ResetRequestID: request.ID,
		Code:           code,
		Status:         constants.OtpStatusPending,
		MaxAttempts:    constants.MaxOtpAttempts(),
		ExpiresAt:      codeExpiryFor(request, time.Now()),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&resetrequest.OtpCode{}).
			Where("reset_request_id = ? AND status = ?", request.ID, constants.OtpStatusPending).
			Update("status", constants.OtpStatusSuperseded).Error; err != nil {
			return err
		}
		return tx.Create(&otp).Error
	})
	if err != nil {
		return fmt.Errorf("failed to issue code: %w", err)
	}

	phone, err := utils.DecryptSecret(request.PhoneEncrypted)
	if err != nil {
		return fmt.Errorf("failed to recover phone number: %w", err)
	}

	if err := s.SMS.SendOtp(phone, code); err != nil {
		// An undelivered code must not stay redeemable.
		if updateErr := s.DB.Model(&otp).Update("status", constants.OtpStatusSuperseded).Error; updateErr != nil {
			logger.Error("Failed to void undelivered code", updateErr)
		}
		return err
	}

	if rearm(request) {
		if err := s.DB.Model(request).Update("status", request.Status).Error; err != nil {
			return fmt.Errorf("failed to advance request: %w", err)
		}
	}
	return nil
}

// rearm puts the request back on the code-entry step. A fresh code
// invalidates any earlier validation, so this applies from every state
// that accepts a new code, idempotently.
func rearm(request *resetrequest.ResetRequest) bool {
	if request.Status == constants.ResetStatusOtpSent {
		return false
	}
	request.Status = constants.ResetStatusOtpSent
	return true
}

// codeExpiryFor clamps the code lifetime so a code never outlives its
// parent request.
func codeExpiryFor(request *resetrequest.ResetRequest, now time.Time) time.Time {
	expiresAt := now.Add(constants.OtpExpiry())
	if expiresAt.After(request.ExpiresAt) {
		return request.ExpiresAt
	}
	return expiresAt
}

// ResendOtp re-issues a code for an in-flight request.
func (s *Service) ResendOtp(token string) (*resetrequest.ResetRequest, error) {
	request, err := s.findByToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.GenerateAndSendOtp(request); err != nil {
		return nil, err
	}
	return request, nil
}

// ValidateOtp checks the submitted code against the single live code of the
// request. Attempts are counted under a row lock so concurrent submissions
// cannot bypass the limit.
func (s *Service) ValidateOtp(token, code string) (*resetrequest.ResetRequest, error) {
	request, err := s.findByToken(token)
	if err != nil {
		return nil, err
	}
	if request.IsExpired() {
		s.markExpired(request)
		return nil, apperrors.Expired("request_expired", "reset request has expired")
	}
	if request.Status != constants.ResetStatusOtpSent {
		return nil, apperrors.State("invalid_state", "reset request is not awaiting a code")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var otp resetrequest.OtpCode
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reset_request_id = ? AND status = ?", request.ID, constants.OtpStatusPending).
			Order("created_at DESC").
			First(&otp).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.State("no_active_code", "no active code exists for this request")
			}
			return err
		}

		judgeErr := judgeSubmission(&otp, code)
		if err := tx.Model(&otp).Updates(map[string]interface{}{
			"attempts":     otp.Attempts,
			"status":       otp.Status,
			"validated_at": otp.ValidatedAt,
		}).Error; err != nil {
			return err
		}
		if judgeErr != nil {
			return judgeErr
		}
		return tx.Model(request).Update("status", constants.ResetStatusOtpValidated).Error
	})
	if err != nil {
		return nil, err
	}

	request.Status = constants.ResetStatusOtpValidated
	return request, nil
}

// judgeSubmission applies one submitted code to the live code, mutating its
// attempt counter and status. Once the attempt limit is hit the code stays
// pending, so every later submission keeps answering with the exceeded
// error, correct code included, instead of reporting a missing code.
func judgeSubmission(otp *resetrequest.OtpCode, submitted string) error {
	submitted = strings.TrimSpace(submitted)

	if otp.IsExpired() {
		otp.Status = constants.OtpStatusExpired
		return apperrors.Expired("code_expired", "code has expired, request a new one")
	}
	if otp.HasExceededAttempts() {
		return apperrors.State("attempts_exceeded", "too many wrong codes, request a new one")
	}

	otp.Attempts++
	if otp.Code != submitted {
		if otp.HasExceededAttempts() {
			return apperrors.State("attempts_exceeded", "too many wrong codes, request a new one")
		}
		return apperrors.Validation("invalid_code", fmt.Sprintf("wrong code, %d attempts remaining", otp.RemainingAttempts()))
	}

	validatedAt := time.Now()
	otp.Status = constants.OtpStatusValidated
	otp.ValidatedAt = &validatedAt
	return nil
}

// ConfirmReset executes the password change on every target system. For the
// combined target the mailbox goes first and a failure on either side marks
// the request failed.
func (s *Service) ConfirmReset(token, newPassword string) (*resetrequest.ResetRequest, error) {
	request, err := s.findByToken(token)
	if err != nil {
		return nil, err
	}
	if request.IsExpired() {
		s.markExpired(request)
		return nil, apperrors.Expired("request_expired", "reset request has expired")
	}
	if !request.CanConfirm() {
		return nil, apperrors.State("invalid_state", "reset request has no validated code")
	}

	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return nil, apperrors.Validation("weak_password", err.Error())
	}

	if err := s.applyReset(request, newPassword); err != nil {
		if updateErr := s.DB.Model(request).Update("status", constants.ResetStatusFailed).Error; updateErr != nil {
			logger.Error("Failed to mark reset request as failed", updateErr)
		}
		request.Status = constants.ResetStatusFailed
		return nil, err
	}

	completedAt := time.Now()
	err = s.DB.Model(request).Updates(map[string]interface{}{
		"status":       constants.ResetStatusCompleted,
		"completed_at": completedAt,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to complete reset request: %w", err)
	}

	request.Status = constants.ResetStatusCompleted
	request.CompletedAt = &completedAt
	logger.Success("Password reset completed for " + request.Identifier + " (" + request.System + ")")
	return request, nil
}

func (s *Service) applyReset(request *resetrequest.ResetRequest, newPassword string) error {
	switch request.System {
	case constants.SystemZoho:
		return s.Mailbox.ResetPassword(request.Identifier, newPassword)
	case constants.SystemAD:
		return s.Directory.ResetPassword(usernameFromIdentifier(request.Identifier), newPassword)
	case constants.SystemBoth:
		if err := s.Mailbox.ResetPassword(request.Identifier, newPassword); err != nil {
			return err
		}
		return s.Directory.ResetPassword(usernameFromIdentifier(request.Identifier), newPassword)
	default:
		return apperrors.Validation("invalid_system", "unknown target system")
	}
}

func (s *Service) findByToken(token string) (*resetrequest.ResetRequest, error) {
	var request resetrequest.ResetRequest
	err := s.DB.Where("token = ?", token).First(&request).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("request_not_found", "reset request not found")
		}
		return nil, fmt.Errorf("failed to load reset request: %w", err)
	}
	return &request, nil
}

func (s *Service) markExpired(request *resetrequest.ResetRequest) {
	if request.IsTerminal() {
		return
	}
	if err := s.DB.Model(request).Update("status", constants.ResetStatusExpired).Error; err != nil {
		logger.Error("Failed to mark reset request as expired", err)
	}
	request.Status = constants.ResetStatusExpired
}

// generateCode produces a uniformly random 6-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// usernameFromIdentifier maps an email identifier to the directory account
// name, which is the local part by convention.
func usernameFromIdentifier(identifier string) string {
	if at := strings.Index(identifier, "@"); at > 0 {
		return identifier[:at]
	}
	return identifier
}

// MaskPhone hides all but the last four digits of a phone number.
func MaskPhone(phone string) string {
	digits := 0
	masked := []rune(phone)
	for i := len(masked) - 1; i >= 0; i-- {
		if masked[i] >= '0' && masked[i] <= '9' {
			digits++
			if digits > 4 {
				masked[i] = '*'
			}
		}
	}
	return string(masked)
}
