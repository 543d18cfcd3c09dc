package classification

import (
	"strings"
	"testing"

	"helpdesk-backend/constants"
)

func TestParseSuggestionResponse(t *testing.T) {
	cases := []struct {
		name       string
		response   string
		expected   string
		confidence string
	}{
		{
			"labeled format",
			"SUGESTÃO: TI > Requisição > Software > Instalação",
			"TI > Requisição > Software > Instalação",
			"",
		},
		{
			"labeled format without accent",
			"sugestao: TI > Incidente > Sistemas > Problema de Acesso",
			"TI > Incidente > Sistemas > Problema de Acesso",
			"",
		},
		{
			"label buried in chatter",
			"Analisando o ticket...\nSUGESTÃO: TI > Incidente > Software > Office\nEspero ter ajudado.",
			"TI > Incidente > Software > Office",
			"",
		},
		{
			"bare path on first line",
			"TI > Requisição > Acesso > AD > Criação de Usuário / Conta",
			"TI > Requisição > Acesso > AD > Criação de Usuário / Conta",
			"",
		},
		{
			"path with confidence line",
			"SUGESTÃO: TI > Incidente > Software > Office\nCONFIANÇA: alta",
			"TI > Incidente > Software > Office",
			constants.ConfidenceHigh,
		},
		{
			"confidence without accent",
			"SUGESTÃO: TI > Incidente > Software > Office\nconfianca: baixa",
			"TI > Incidente > Software > Office",
			constants.ConfidenceLow,
		},
		{
			"english confidence",
			"SUGESTÃO: TI > Incidente > Software > Office\nCONFIDENCE: medium",
			"TI > Incidente > Software > Office",
			constants.ConfidenceMedium,
		},
		{
			"unrecognizable confidence wording",
			"SUGESTÃO: TI > Incidente > Software > Office\nCONFIANÇA: sei lá",
			"TI > Incidente > Software > Office",
			"",
		},
		{
			"confidence line does not shadow a bare path",
			"CONFIANÇA: alta\nTI > Incidente > Software > Office",
			"TI > Incidente > Software > Office",
			constants.ConfidenceHigh,
		},
		{
			"model declined",
			"Nenhuma",
			"",
			"",
		},
		{
			"path not rooted at TI",
			"SUGESTÃO: RH > Pessoal > Férias\nCONFIANÇA: alta",
			"",
			"",
		},
		{
			"empty response",
			"",
			"",
			"",
		},
	}

	for _, tc := range cases {
		path, confidence := ParseSuggestionResponse(tc.response)
		if path != tc.expected {
			t.Fatalf("%s: got path %q, expected %q", tc.name, path, tc.expected)
		}
		if confidence != tc.confidence {
			t.Fatalf("%s: got confidence %q, expected %q", tc.name, confidence, tc.confidence)
		}
	}
}

func TestNormalizeConfidence(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{"alta", constants.ConfidenceHigh},
		{" Alta ", constants.ConfidenceHigh},
		{"high", constants.ConfidenceHigh},
		{"média", constants.ConfidenceMedium},
		{"media", constants.ConfidenceMedium},
		{"medium", constants.ConfidenceMedium},
		{"baixa", constants.ConfidenceLow},
		{"low", constants.ConfidenceLow},
		{"talvez", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := normalizeConfidence(tc.raw); got != tc.expected {
			t.Fatalf("%q: got %q, expected %q", tc.raw, got, tc.expected)
		}
	}
}

func TestBuildSuggestionPromptIncludesContext(t *testing.T) {
	prompt := buildSuggestionPrompt(
		"Erro no Salesforce",
		"O sistema apresenta erro ao salvar",
		"- TI > Incidente > Sistemas (ID: 80)",
		[]string{"TI > Incidente > Sistemas > Problema de Acesso"},
	)

	for _, fragment := range []string{
		"Erro no Salesforce",
		"O sistema apresenta erro ao salvar",
		"TI > Incidente > Sistemas (ID: 80)",
		"TI > Incidente > Sistemas > Problema de Acesso",
		"SUGESTÃO:",
		"CONFIANÇA:",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q", fragment)
		}
	}
}
