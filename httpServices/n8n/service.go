package n8n

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/logger"
)

// Client posts review decisions and survey answers to the automation
// engine's webhooks. Each concern has its own webhook URL; an empty URL
// means the concern is not wired to automation.
type Client struct {
	httpClient       *http.Client
	reviewWebhookURL string
	surveyWebhookURL string
}

// CategoryReviewPayload carries a review decision to the automation flow
// that applies it in the ITSM.
type CategoryReviewPayload struct {
	Type          string `json:"type"`
	SuggestionID  uint   `json:"suggestion_id"`
	TicketID      int    `json:"ticket_id"`
	SuggestedPath string `json:"suggested_path"`
	ParentGlpiID  int    `json:"parent_glpi_id"`
	CategoryName  string `json:"category_name"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
	ReviewedBy    string `json:"reviewed_by"`
	ReviewedAt    string `json:"reviewed_at"`
	IsIncident    int    `json:"is_incident"`
	IsRequest     int    `json:"is_request"`
	IsProblem     int    `json:"is_problem"`
	IsChange      int    `json:"is_change"`
}

type surveyPayload struct {
	Type     string `json:"type"`
	TicketID int    `json:"ticket_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		reviewWebhookURL: os.Getenv("N8N_CATEGORY_REVIEW_WEBHOOK_URL"),
		surveyWebhookURL: os.Getenv("N8N_SURVEY_WEBHOOK_URL"),
	}
}

// NotifyCategoryReview posts a review decision and fails unless the webhook
// confirms it with a 2xx. With no webhook configured the decision applies
// locally and nil is returned.
func (c *Client) NotifyCategoryReview(payload CategoryReviewPayload) error {
	if c.reviewWebhookURL == "" {
		logger.Warning("Category review webhook is not configured, decision applies locally only")
		return nil
	}

	payload.Type = "category-suggestion-review"
	return c.post(c.reviewWebhookURL, payload)
}

// NotifySurveyResponse forwards a survey answer to the ITSM updater flow.
// Best effort: the survey row is the source of truth either way.
func (c *Client) NotifySurveyResponse(ticketID, rating int, comment string) bool {
	if c.surveyWebhookURL == "" {
		return false
	}

	err := c.post(c.surveyWebhookURL, surveyPayload{
		Type:     "satisfaction-survey-update",
		TicketID: ticketID,
		Rating:   rating,
		Comment:  comment,
	})
	if err != nil {
		logger.Error("Failed to forward survey response to automation", err)
		return false
	}
	return true
}

func (c *Client) post(webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest("POST", webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.Upstream("webhook_unreachable", "automation webhook is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Upstream("webhook_rejected", fmt.Sprintf("automation webhook returned status %d", resp.StatusCode), nil)
	}
	return nil
}
