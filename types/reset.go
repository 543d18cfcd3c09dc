package types

// RequestResetRequest starts a password reset for an identifier.
type RequestResetRequest struct {
	Identifier string `json:"identifier"`
	System     string `json:"system"`
}

// ValidateOtpRequest submits a one-time code for a reset request.
type ValidateOtpRequest struct {
	Token   string `json:"token"`
	OtpCode string `json:"otp_code"`
}

// ConfirmResetRequest executes the password change.
type ConfirmResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResendOtpRequest asks for a fresh code on an in-flight request.
type ResendOtpRequest struct {
	Token string `json:"token"`
}
