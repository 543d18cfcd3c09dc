package suggestion

import (
	"testing"
	"time"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/constants"
	"helpdesk-backend/models/category"
	"helpdesk-backend/models/suggestion"
)

func pendingSuggestion() *suggestion.CategorySuggestion {
	return &suggestion.CategorySuggestion{
		ID:            7,
		TicketID:      1234,
		SuggestedPath: "TI > Incidente > Sistemas > Novo Sistema",
		Status:        constants.SuggestionStatusPending,
	}
}

func TestApplyDecisionWebhookFailureLeavesPending(t *testing.T) {
	record := pendingSuggestion()
	webhookErr := apperrors.Upstream("webhook_rejected", "automation webhook returned status 500", nil)

	err := applyDecision(record, constants.SuggestionStatusApproved, "maria", "ok", time.Now(), func() error {
		return webhookErr
	})
	if err != webhookErr {
		t.Fatalf("the webhook error must surface unchanged, got %v", err)
	}
	if record.Status != constants.SuggestionStatusPending {
		t.Fatalf("a refused decision must leave the suggestion pending, got %q", record.Status)
	}
	if record.ReviewedBy != "" || record.ReviewedAt != nil {
		t.Fatalf("reviewer fields must stay empty on failure: %+v", record)
	}
}

func TestApplyDecisionAlreadyReviewedIsImmutable(t *testing.T) {
	record := pendingSuggestion()
	record.Status = constants.SuggestionStatusApproved

	confirmed := false
	err := applyDecision(record, constants.SuggestionStatusRejected, "joao", "", time.Now(), func() error {
		confirmed = true
		return nil
	})
	if apperrors.CodeOf(err) != "already_reviewed" {
		t.Fatalf("expected already_reviewed, got %v", err)
	}
	if confirmed {
		t.Fatal("a decided suggestion must not trigger the webhook again")
	}
	if record.Status != constants.SuggestionStatusApproved {
		t.Fatalf("the recorded decision must not change, got %q", record.Status)
	}
}

func TestApplyDecisionRecordsReview(t *testing.T) {
	record := pendingSuggestion()
	reviewedAt := time.Now()

	err := applyDecision(record, constants.SuggestionStatusRejected, "maria", "fora do padrão", reviewedAt, func() error {
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != constants.SuggestionStatusRejected || record.ReviewedBy != "maria" {
		t.Fatalf("decision not recorded: %+v", record)
	}
	if record.Notes != "fora do padrão" {
		t.Fatalf("notes not recorded: %q", record.Notes)
	}
	if record.ReviewedAt == nil || !record.ReviewedAt.Equal(reviewedAt) {
		t.Fatalf("review timestamp not recorded: %v", record.ReviewedAt)
	}
}

func TestPathTypeFlags(t *testing.T) {
	cases := []struct {
		name       string
		path       string
		isIncident int
		isRequest  int
		isProblem  int
		isChange   int
	}{
		{"incident branch", "TI > Incidente > Equipamentos > Hardware", 1, 0, 0, 0},
		{"request branch", "TI > Requisição > Software > Instalação", 0, 1, 0, 0},
		{"request branch without accent", "TI > Requisicao > Software", 0, 1, 0, 0},
		{"problem branch", "TI > Problema > Rede > Lentidão Recorrente", 0, 0, 1, 0},
		{"change branch", "TI > Mudança > Infraestrutura > Troca de Firewall", 0, 0, 0, 1},
		{"problem-named leaf under incident stays incident", "TI > Incidente > Sistemas > Problema de Acesso", 1, 0, 0, 0},
		{"no branch keyword", "TI > Outros", 0, 0, 0, 0},
		{"empty path", "", 0, 0, 0, 0},
	}

	for _, tc := range cases {
		isIncident, isRequest, isProblem, isChange := pathTypeFlags(category.SplitPath(tc.path))
		if isIncident != tc.isIncident || isRequest != tc.isRequest || isProblem != tc.isProblem || isChange != tc.isChange {
			t.Fatalf("%s: flags = (%d,%d,%d,%d), expected (%d,%d,%d,%d)", tc.name,
				isIncident, isRequest, isProblem, isChange,
				tc.isIncident, tc.isRequest, tc.isProblem, tc.isChange)
		}
	}
}
