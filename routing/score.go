package routing

import (
	"strings"

	"github.com/civicseva/civicseva-api/models"
)

// maxScore caps the urgency score.
const maxScore = 10.0

// urgentKeywords boost the score by 1.5x when any appears in the report text.
var urgentKeywords = []string{"emergency", "urgent", "immediate", "danger", "hazard", "accident"}

var basePriorityScores = map[models.ReportPriority]float64{
	models.ReportPriorityLow:    1,
	models.ReportPriorityMedium: 2,
	models.ReportPriorityHigh:   3,
	models.ReportPriorityUrgent: 4,
}

// CalculatePriorityScore computes the urgency score for a report: base
// priority score times the category multiplier, boosted 1.5x when the title
// or description contains an urgency keyword, capped at 10. Pure function.
func CalculatePriorityScore(report *models.Report, rules Rules) float64 {
	base, ok := basePriorityScores[report.Priority]
	if !ok {
		base = 2
	}

	multiplier := 1.0
	if rule, ok := rules[report.Category]; ok {
		multiplier = rule.PriorityMultiplier
	}

	score := base * multiplier

	text := strings.ToLower(report.Title + " " + report.Description)
	for _, keyword := range urgentKeywords {
		if strings.Contains(text, keyword) {
			score *= 1.5
			break
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}
