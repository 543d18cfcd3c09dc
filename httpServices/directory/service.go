package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"helpdesk-backend/apperrors"
)

// Client talks to the internal directory gateway that fronts Active
// Directory password operations.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type resetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"new_password"`
}

type gatewayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(os.Getenv("DIRECTORY_GATEWAY_URL"), "/"),
		apiKey:  os.Getenv("DIRECTORY_GATEWAY_API_KEY"),
	}
}

// UserExists asks the gateway whether the account is known to the directory.
func (c *Client) UserExists(username string) (bool, error) {
	httpReq, err := http.NewRequest("GET", c.baseURL+"/api/users/"+username, nil)
	if err != nil {
		return false, err
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, c.parseStatusError(resp.StatusCode)
	}
	return true, nil
}

// ResetPassword sets a new password on the directory account.
func (c *Client) ResetPassword(username, newPassword string) error {
	body, err := json.Marshal(resetPasswordRequest{
		Username:    username,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/api/reset-password", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseStatusError(resp.StatusCode)
	}

	var gatewayResp gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return apperrors.Provider("service_unavailable", "directory gateway returned an unreadable response", err)
	}
	if !gatewayResp.Success {
		message := gatewayResp.Error
		if message == "" {
			message = "directory gateway reported a failure"
		}
		return apperrors.Provider("provider_error", message, nil)
	}
	return nil
}

func (c *Client) transportError(err error) error {
	if strings.Contains(err.Error(), "Timeout") || strings.Contains(err.Error(), "timeout") {
		return apperrors.Provider("timeout", "directory gateway did not respond in time", err)
	}
	return apperrors.Provider("service_unavailable", "directory gateway is unreachable", err)
}

func (c *Client) parseStatusError(statusCode int) error {
	switch {
	case statusCode == http.StatusUnauthorized:
		return apperrors.Provider("invalid_token", "directory gateway rejected the API key", nil)
	case statusCode == http.StatusForbidden:
		return apperrors.Provider("insufficient_permissions", "directory gateway denied the operation", nil)
	case statusCode == http.StatusNotFound:
		return apperrors.Provider("user_not_found", "directory account not found", nil)
	case statusCode == http.StatusTooManyRequests:
		return apperrors.Provider("rate_limit_exceeded", "directory gateway rate limit exceeded", nil)
	case statusCode >= 500:
		return apperrors.Provider("service_unavailable", fmt.Sprintf("directory gateway returned status %d", statusCode), nil)
	default:
		return apperrors.Provider("provider_error", fmt.Sprintf("directory gateway returned status %d", statusCode), nil)
	}
}
