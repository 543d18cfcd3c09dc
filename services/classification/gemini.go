package classification

import (
	"context"
	"fmt"
	"os"
	"strings"

	"helpdesk-backend/constants"

	"google.golang.org/genai"
)

// SuggestNewPath asks Gemini for a brand new category path when no mirrored
// category fits the ticket, plus the model's own confidence in it
// (high/medium/low). The prompt is in Portuguese because the category tree
// and the tickets are.
func SuggestNewPath(title, content, categoriesText string, similarPaths []string) (string, string, error) {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", "", fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := buildSuggestionPrompt(title, content, categoriesText, similarPaths)

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash",
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate category suggestion: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", "", fmt.Errorf("no content generated for suggestion")
	}
	responseText := result.Candidates[0].Content.Parts[0].Text

	suggestedPath, confidence := ParseSuggestionResponse(responseText)
	if suggestedPath == "" {
		return "", "", fmt.Errorf("model returned no usable category path: %q", responseText)
	}
	if confidence == "" {
		confidence = constants.ConfidenceMedium
	}
	return suggestedPath, confidence, nil
}

func buildSuggestionPrompt(title, content, categoriesText string, similarPaths []string) string {
	var sb strings.Builder

	sb.WriteString("Você é um assistente especializado em classificação de tickets de suporte técnico.\n\n")
	sb.WriteString("Analise o ticket abaixo e sugira uma categoria hierárquica seguindo o padrão:\n")
	sb.WriteString("TI > [Incidente/Requisição/Mudança] > [Área] > [Subárea] > [Categoria Específica] > [Sistema/Aplicação quando aplicável]\n\n")
	sb.WriteString("REGRAS IMPORTANTES:\n")
	sb.WriteString("- SEMPRE analise o contexto completo do ticket antes de sugerir categoria\n")
	sb.WriteString("- SEMPRE inclua o sistema/aplicação mencionado no ticket no último nível quando aplicável\n")
	sb.WriteString("- Se existem categorias similares listadas abaixo, use o nome EXATO e a ESTRUTURA EXATA como aparece nelas\n")
	sb.WriteString("- \"Requisição\" = solicitação | \"Incidente\" = problema | \"Mudança\" = alteração PERMANENTE na infraestrutura\n")
	sb.WriteString("- NÃO invente categorias que não seguem o padrão hierárquico correto\n\n")

	if categoriesText != "" {
		sb.WriteString("Categorias existentes (formato: Nível 1 > Nível 2 > Nível 3 > ...):\n")
		sb.WriteString(categoriesText)
		sb.WriteString("\n\n")
	}
	if len(similarPaths) > 0 {
		sb.WriteString("Categorias similares existentes (use como referência para nomes e estrutura):\n")
		for _, path := range similarPaths {
			sb.WriteString("- " + path + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Exemplos de padrões:\n")
	sb.WriteString("- TI > Requisição > Acesso > AD > Criação de Usuário / Conta\n")
	sb.WriteString("- TI > Incidente > Sistemas > Problema de Acesso > Anews\n")
	sb.WriteString("- TI > Incidente > Equipamentos > Hardware > Computadores > Não Liga / Travando\n\n")

	sb.WriteString("Título: " + title + "\n")
	sb.WriteString("Conteúdo: " + content + "\n\n")
	sb.WriteString("Sugira APENAS o caminho completo da categoria seguindo o padrão acima,\n")
	sb.WriteString("e informe sua confiança na sugestão: alta, média ou baixa.\n")
	sb.WriteString("Se não conseguir determinar, responda \"Nenhuma\".\n")
	sb.WriteString("Formato da resposta:\nSUGESTÃO: [caminho completo]\nCONFIANÇA: [alta/média/baixa]")

	return sb.String()
}

// ParseSuggestionResponse extracts the suggested path and the stated
// confidence from a model answer. Accepts the "SUGESTÃO: path" format or a
// bare path on the first non-empty line; the "CONFIANÇA:" line is optional
// and comes back empty when missing or unrecognizable. Anything not rooted
// at "TI" is rejected.
func ParseSuggestionResponse(responseText string) (string, string) {
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return "", ""
	}

	var suggestedPath string
	var confidence string
	lines := strings.Split(responseText, "\n")

	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "sugestão:") || strings.Contains(lower, "sugestao:"):
			if suggestedPath == "" {
				if idx := strings.Index(line, ":"); idx >= 0 {
					suggestedPath = strings.TrimSpace(line[idx+1:])
				}
			}
		case strings.Contains(lower, "confiança:") || strings.Contains(lower, "confianca:") || strings.Contains(lower, "confidence:"):
			if idx := strings.Index(line, ":"); idx >= 0 {
				confidence = normalizeConfidence(line[idx+1:])
			}
		}
	}

	if suggestedPath == "" {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			lower := strings.ToLower(line)
			if line != "" && !strings.HasPrefix(lower, "sugestão") && !strings.HasPrefix(lower, "sugestao") &&
				!strings.HasPrefix(lower, "confiança") && !strings.HasPrefix(lower, "confianca") {
				suggestedPath = line
				break
			}
		}
	}

	if strings.HasPrefix(suggestedPath, "TI") {
		return suggestedPath, confidence
	}
	return "", ""
}

// normalizeConfidence maps the model's Portuguese or English confidence
// wording onto the stored vocabulary.
func normalizeConfidence(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(raw, "alta") || strings.Contains(raw, "high"):
		return constants.ConfidenceHigh
	case strings.Contains(raw, "baixa") || strings.Contains(raw, "low"):
		return constants.ConfidenceLow
	case strings.Contains(raw, "média") || strings.Contains(raw, "media") || strings.Contains(raw, "medium"):
		return constants.ConfidenceMedium
	}
	return ""
}
