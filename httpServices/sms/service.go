package sms

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"helpdesk-backend/apperrors"
)

// Client sends SMS messages through the Twilio REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
}

type messageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewClient() *Client {
	baseURL := os.Getenv("TWILIO_API_URL")
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		authToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		fromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

// SendOtp delivers a one-time code to the given phone number.
func (c *Client) SendOtp(phone, code string) error {
	message := fmt.Sprintf("Your password reset code is: %s. It expires in a few minutes, do not share it with anyone.", code)
	return c.Send(phone, message)
}

// Send posts a single SMS message.
func (c *Client) Send(phone, body string) error {
	if c.accountSID == "" || c.authToken == "" {
		return apperrors.Provider("authentication_error", "SMS provider credentials are not configured", nil)
	}

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	httpReq, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	httpReq.SetBasicAuth(c.accountSID, c.authToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if strings.Contains(err.Error(), "Timeout") || strings.Contains(err.Error(), "timeout") {
			return apperrors.Provider("timeout", "SMS provider did not respond in time", err)
		}
		return apperrors.Provider("sms_error", "SMS provider is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)
	var msgResp messageResponse
	_ = json.Unmarshal(raw, &msgResp)
	detail := msgResp.Message
	if detail == "" {
		detail = string(raw)
	}

	return apperrors.Provider(classifyError(resp.StatusCode, detail), detail, nil)
}

// classifyError buckets provider failures by status code and error text so
// callers can tell a bad phone number apart from an account problem.
func classifyError(statusCode int, detail string) string {
	lower := strings.ToLower(detail)
	switch {
	case statusCode == http.StatusUnauthorized || strings.Contains(lower, "authenticat"):
		return "authentication_error"
	case strings.Contains(lower, "is not a valid phone number") || strings.Contains(lower, "invalid 'to' phone number"):
		return "invalid_phone"
	case strings.Contains(lower, "insufficient funds") || strings.Contains(lower, "balance"):
		return "insufficient_balance"
	case strings.Contains(lower, "timeout"):
		return "timeout"
	default:
		return "sms_error"
	}
}
