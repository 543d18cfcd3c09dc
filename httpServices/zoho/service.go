package zoho

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/logger"
	"helpdesk-backend/models/providertoken"

	"gorm.io/gorm"
)

// Client talks to the Zoho Mail admin API. Access tokens are cached in the
// database and renewed from the refresh token only when expired.
type Client struct {
	db           *gorm.DB
	httpClient   *http.Client
	accountsURL  string
	mailURL      string
	clientID     string
	clientSecret string
	refreshToken string
	orgID        string
}

func NewClient(db *gorm.DB) *Client {
	accountsURL := os.Getenv("ZOHO_ACCOUNTS_URL")
	if accountsURL == "" {
		accountsURL = "https://accounts.zoho.com"
	}
	mailURL := os.Getenv("ZOHO_MAIL_URL")
	if mailURL == "" {
		mailURL = "https://mail.zoho.com"
	}

	return &Client{
		db: db,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		accountsURL:  strings.TrimRight(accountsURL, "/"),
		mailURL:      strings.TrimRight(mailURL, "/"),
		clientID:     os.Getenv("ZOHO_CLIENT_ID"),
		clientSecret: os.Getenv("ZOHO_CLIENT_SECRET"),
		refreshToken: os.Getenv("ZOHO_REFRESH_TOKEN"),
		orgID:        os.Getenv("ZOHO_ORG_ID"),
	}
}

// GetAccessToken returns a usable access token, refreshing the cached one
// only when it has expired.
func (c *Client) GetAccessToken() (string, error) {
	if c.refreshToken == "" {
		return "", apperrors.Provider("configuration_error", "mailbox provider refresh token is not configured", nil)
	}

	var token providertoken.ProviderToken
	err := c.db.Where("refresh_token = ?", c.refreshToken).First(&token).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", err
	}
	if err == gorm.ErrRecordNotFound {
		token = providertoken.ProviderToken{RefreshToken: c.refreshToken}
	}

	if token.IsAccessTokenValid() {
		return token.AccessToken, nil
	}

	return c.refreshAccessToken(&token)
}

func (c *Client) refreshAccessToken(token *providertoken.ProviderToken) (string, error) {
	form := url.Values{}
	form.Set("refresh_token", c.refreshToken)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "refresh_token")

	resp, err := c.httpClient.Post(
		c.accountsURL+"/oauth/v2/token",
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.parseStatusError(resp.StatusCode)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", apperrors.Provider("service_unavailable", "mailbox provider returned an unreadable token response", err)
	}
	if tokenResp.Error != "" || tokenResp.AccessToken == "" {
		return "", apperrors.Provider("invalid_token", "mailbox provider rejected the refresh token", nil)
	}

	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	token.AccessToken = tokenResp.AccessToken
	token.ExpiresAt = &expiresAt
	if tokenResp.Scope != "" {
		token.Scope = tokenResp.Scope
	}
	if tokenResp.APIDomain != "" {
		token.APIDomain = tokenResp.APIDomain
	}

	if err := c.db.Save(token).Error; err != nil {
		logger.Error("Failed to persist refreshed mailbox token", err)
	}

	return token.AccessToken, nil
}

// GetUserByEmail looks up a mailbox account by email. Returns nil without
// error when the address is unknown to the organization.
func (c *Client) GetUserByEmail(email string) (*Account, error) {
	accessToken, err := c.GetAccessToken()
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/organization/%s/accounts?emailId=%s", c.mailURL, c.orgID, url.QueryEscape(email))
	httpReq, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Zoho-oauthtoken "+accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseStatusError(resp.StatusCode)
	}

	var listResp accountListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, apperrors.Provider("service_unavailable", "mailbox provider returned an unreadable account list", err)
	}

	for i := range listResp.Data {
		if strings.EqualFold(listResp.Data[i].EmailAddress, email) {
			return &listResp.Data[i], nil
		}
	}
	return nil, nil
}

// GetUserPhoneByEmail returns the mobile number registered on the mailbox
// account, falling back to the landline field. Empty when the account has
// no phone or does not exist.
func (c *Client) GetUserPhoneByEmail(email string) (string, error) {
	account, err := c.GetUserByEmail(email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", nil
	}
	if account.MobileNumber != "" {
		return account.MobileNumber, nil
	}
	return account.PhoneNumber, nil
}

// ResetPassword sets a new password on the mailbox account for the given
// email address.
func (c *Client) ResetPassword(email, newPassword string) error {
	account, err := c.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.Provider("user_not_found", "mailbox account not found for "+email, nil)
	}

	accessToken, err := c.GetAccessToken()
	if err != nil {
		return err
	}

	body, err := json.Marshal(resetPasswordRequest{
		Password: newPassword,
		Mode:     "resetPassword",
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/organization/%s/accounts/%d", c.mailURL, c.orgID, account.ZUID)
	httpReq, err := http.NewRequest("PUT", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Zoho-oauthtoken "+accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseStatusError(resp.StatusCode)
	}
	return nil
}

func (c *Client) transportError(err error) error {
	if strings.Contains(err.Error(), "Timeout") || strings.Contains(err.Error(), "timeout") {
		return apperrors.Provider("timeout", "mailbox provider did not respond in time", err)
	}
	return apperrors.Provider("service_unavailable", "mailbox provider is unreachable", err)
}

func (c *Client) parseStatusError(statusCode int) error {
	switch {
	case statusCode == http.StatusUnauthorized:
		return apperrors.Provider("invalid_token", "mailbox provider rejected the access token", nil)
	case statusCode == http.StatusForbidden:
		return apperrors.Provider("insufficient_permissions", "mailbox provider credentials lack the required scope", nil)
	case statusCode == http.StatusNotFound:
		return apperrors.Provider("user_not_found", "mailbox account not found", nil)
	case statusCode == http.StatusTooManyRequests:
		return apperrors.Provider("rate_limit_exceeded", "mailbox provider rate limit exceeded", nil)
	case statusCode >= 500:
		return apperrors.Provider("service_unavailable", fmt.Sprintf("mailbox provider returned status %d", statusCode), nil)
	default:
		return apperrors.Provider("provider_error", fmt.Sprintf("mailbox provider returned status %d", statusCode), nil)
	}
}
