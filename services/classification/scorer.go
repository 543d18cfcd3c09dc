package classification

import (
	"strings"

	"helpdesk-backend/constants"
	"helpdesk-backend/models/category"
)

// Ticket types as the ITSM encodes them.
const (
	TicketTypeIncident = 1
	TicketTypeRequest  = 2
)

// Match is the outcome of scoring the ticket text against the mirrored
// category tree.
type Match struct {
	GlpiID          int
	CategoryID      uint
	FullPath        string
	Parts           []string
	Score           int
	Confidence      string
	TicketType      int
	TicketTypeLabel string
}

// MatchExisting scores every mirrored category against the ticket text and
// returns the best hit, or nil when nothing scores. Deeper paths win ties
// through a depth bonus so specific categories beat their ancestors.
func MatchExisting(title, content string, categories []category.Category) *Match {
	text := strings.ToLower(title + " " + content)
	words := strings.Fields(text)

	isIncident := containsAny(text, incidentWords)
	isRequest := containsAny(text, requestWords)
	hasSoftwareIndicator := containsAny(text, softwareIndicators)

	var best *Match
	for i := range categories {
		parts := categories[i].PathParts()
		if len(parts) == 0 {
			continue
		}
		fullPath := category.JoinPath(parts)
		fullPathLower := strings.ToLower(fullPath)

		score := 0
		typeMatch := false

		// The tree is rooted at "TI", the incident/request split sits below it
		firstLevel := strings.ToLower(parts[0])
		if firstLevel == "ti" && len(parts) > 1 {
			firstLevel = strings.ToLower(parts[1])
		}
		switch {
		case firstLevel == "incidente" && isIncident:
			score += 30
			typeMatch = true
		case firstLevel == "requisição" && isRequest:
			score += 30
			typeMatch = true
		case firstLevel == "incidente" && isRequest:
			score -= 20
		case firstLevel == "requisição" && isIncident:
			score -= 20
		}

		nameLower := strings.ToLower(categories[i].Name)
		if strings.Contains(text, nameLower) {
			score += 20
		}
		if containsWord(words, nameLower) {
			score += 15
		}

		for _, rule := range keywordRules {
			if !strings.Contains(fullPathLower, rule.Keyword) {
				continue
			}
			for _, synonym := range rule.Synonyms {
				if strings.Contains(text, synonym) {
					score += rule.Weight + len(parts)*3
					if hasSoftwareIndicator && strings.Contains(fullPathLower, "software") {
						score += 15
					}
					break
				}
			}
		}

		if hasSoftwareIndicator && strings.Contains(fullPathLower, "hardware") && !strings.Contains(fullPathLower, "software") {
			score -= 30
		}

		// Weak matches fall back to counting path fragments in the text.
		if score == 0 || (score < 10 && !typeMatch) {
			for _, part := range parts {
				partLower := strings.ToLower(part)
				if len(partLower) > 4 && strings.Contains(text, partLower) {
					if hasSoftwareIndicator && (partLower == "hardware" || partLower == "computadores" || partLower == "computador") {
						score -= 5
					} else {
						score++
					}
				}
			}
		}

		if score > 0 {
			score += len(parts) * 2
		}

		if best == nil || score > best.Score {
			ticketType, label := DetermineTicketType(parts)
			best = &Match{
				GlpiID:          categories[i].GlpiID,
				CategoryID:      categories[i].ID,
				FullPath:        fullPath,
				Parts:           parts,
				Score:           score,
				TicketType:      ticketType,
				TicketTypeLabel: label,
			}
		}
	}

	if best == nil || best.Score <= 0 {
		return nil
	}
	if best.Score >= 10 {
		best.Confidence = constants.ConfidenceHigh
	} else {
		best.Confidence = constants.ConfidenceMedium
	}
	return best
}

// DetermineTicketType tells incident from request by the path segments.
// Returns 0 with an empty label when neither appears.
func DetermineTicketType(parts []string) (int, string) {
	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if strings.Contains(name, "incidente") {
			return TicketTypeIncident, "incidente"
		}
		if strings.Contains(name, "requisição") || strings.Contains(name, "requisicao") {
			return TicketTypeRequest, "requisição"
		}
	}
	return 0, ""
}

func containsAny(text string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.Contains(text, candidate) {
			return true
		}
	}
	return false
}

func containsWord(words []string, target string) bool {
	for _, word := range words {
		if word == target {
			return true
		}
	}
	return false
}
