package classification

import (
	"testing"

	"helpdesk-backend/constants"
	"helpdesk-backend/models/category"
)

func testCategories() []category.Category {
	return []category.Category{
		{ID: 1, GlpiID: 63, Name: "Não Liga / Travando", FullPath: "TI > Incidente > Equipamentos > Hardware > Computadores > Não Liga / Travando"},
		{ID: 2, GlpiID: 41, Name: "Instalação", FullPath: "TI > Requisição > Software > Instalação"},
		{ID: 3, GlpiID: 27, Name: "Solicitação de Toner", FullPath: "TI > Requisição > Equipamentos > Hardware > Impressora > Solicitação de Toner"},
	}
}

func TestMatchExistingHardwareIncident(t *testing.T) {
	match := MatchExisting(
		"Computador não liga",
		"O computador da recepção não liga mais desde ontem",
		testCategories(),
	)
	if match == nil {
		t.Fatal("expected a match, got nil")
	}
	if match.GlpiID != 63 {
		t.Fatalf("expected category 63, got %d (%s)", match.GlpiID, match.FullPath)
	}
	if match.Confidence != constants.ConfidenceHigh {
		t.Fatalf("expected high confidence, got %q (score %d)", match.Confidence, match.Score)
	}
	if match.TicketType != TicketTypeIncident || match.TicketTypeLabel != "incidente" {
		t.Fatalf("expected incident type, got %d %q", match.TicketType, match.TicketTypeLabel)
	}
}

func TestMatchExistingSoftwareRequestBeatsHardware(t *testing.T) {
	match := MatchExisting(
		"Instalar Office",
		"Gostaria de solicitar a instalação do pacote Office no meu computador",
		testCategories(),
	)
	if match == nil {
		t.Fatal("expected a match, got nil")
	}
	// The software indicator must push the request away from hardware paths
	// even though the text mentions a computer.
	if match.GlpiID != 41 {
		t.Fatalf("expected category 41, got %d (%s)", match.GlpiID, match.FullPath)
	}
	if match.Confidence != constants.ConfidenceHigh {
		t.Fatalf("expected high confidence, got %q (score %d)", match.Confidence, match.Score)
	}
	if match.TicketType != TicketTypeRequest {
		t.Fatalf("expected request type, got %d", match.TicketType)
	}
}

func TestMatchExistingNoSignal(t *testing.T) {
	match := MatchExisting("Bom dia", "qualquer coisa sem relação", testCategories())
	if match != nil {
		t.Fatalf("expected nil for unrelated text, got %+v", match)
	}
}

func TestMatchExistingEmptyTree(t *testing.T) {
	if match := MatchExisting("Computador não liga", "não liga", nil); match != nil {
		t.Fatalf("expected nil with no categories, got %+v", match)
	}
}

func TestDetermineTicketType(t *testing.T) {
	cases := []struct {
		parts []string
		typ   int
		label string
	}{
		{[]string{"TI", "Incidente", "Software"}, TicketTypeIncident, "incidente"},
		{[]string{"TI", "Requisição", "Acesso"}, TicketTypeRequest, "requisição"},
		{[]string{"TI", "Requisicao", "Acesso"}, TicketTypeRequest, "requisição"},
		{[]string{"TI", "Mudança"}, 0, ""},
		{nil, 0, ""},
	}

	for _, tc := range cases {
		typ, label := DetermineTicketType(tc.parts)
		if typ != tc.typ || label != tc.label {
			t.Fatalf("DetermineTicketType(%v) = %d %q, expected %d %q", tc.parts, typ, label, tc.typ, tc.label)
		}
	}
}
