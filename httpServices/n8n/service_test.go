package n8n

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"helpdesk-backend/apperrors"
)

func TestNotifyCategoryReview(t *testing.T) {
	var received CategoryReviewPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("unreadable payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("N8N_CATEGORY_REVIEW_WEBHOOK_URL", srv.URL)
	t.Setenv("N8N_SURVEY_WEBHOOK_URL", "")
	client := NewClient()

	err := client.NotifyCategoryReview(CategoryReviewPayload{
		SuggestionID:  7,
		TicketID:      1234,
		SuggestedPath: "TI > Incidente > Sistemas > Problema de Acesso",
		CategoryName:  "Problema de Acesso",
		Status:        "approved",
		ReviewedBy:    "maria",
		IsIncident:    1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Type != "category-suggestion-review" {
		t.Fatalf("payload type not stamped: %q", received.Type)
	}
	if received.SuggestionID != 7 || received.IsIncident != 1 {
		t.Fatalf("payload fields lost: %+v", received)
	}
}

func TestNotifyCategoryReviewRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("N8N_CATEGORY_REVIEW_WEBHOOK_URL", srv.URL)
	client := NewClient()

	err := client.NotifyCategoryReview(CategoryReviewPayload{SuggestionID: 7})
	if err == nil {
		t.Fatal("a non-2xx answer must fail the notification")
	}
	if code := apperrors.CodeOf(err); code != "webhook_rejected" {
		t.Fatalf("expected webhook_rejected, got %q", code)
	}
}

func TestNotifyCategoryReviewUnconfigured(t *testing.T) {
	t.Setenv("N8N_CATEGORY_REVIEW_WEBHOOK_URL", "")
	client := NewClient()

	// Without a webhook the decision applies locally.
	if err := client.NotifyCategoryReview(CategoryReviewPayload{SuggestionID: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNotifySurveyResponse(t *testing.T) {
	var received surveyPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("unreadable payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("N8N_SURVEY_WEBHOOK_URL", srv.URL)
	client := NewClient()

	if !client.NotifySurveyResponse(1234, 5, "ótimo atendimento") {
		t.Fatal("expected notification to be reported as delivered")
	}
	if received.Type != "satisfaction-survey-update" || received.Rating != 5 {
		t.Fatalf("unexpected payload: %+v", received)
	}
}

func TestNotifySurveyResponseUnconfigured(t *testing.T) {
	t.Setenv("N8N_SURVEY_WEBHOOK_URL", "")
	client := NewClient()

	if client.NotifySurveyResponse(1234, 5, "") {
		t.Fatal("unconfigured webhook must report not delivered")
	}
}
