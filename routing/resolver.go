package routing

import "github.com/civicseva/civicseva-api/models"

// Assignment is the routing decision for a report. Priority here is
// authoritative and overrides the citizen-supplied value.
type Assignment struct {
	Department string
	Assignee   string
	Priority   models.ReportPriority
}

// Resolve maps a report to its department, assignee and adjusted priority
// tier. Reports with no matching category rule fall back to the general
// queue with the citizen-supplied priority unchanged. Deterministic: the same
// category/priority/text always yields the same assignment.
func Resolve(report *models.Report, rules Rules) Assignment {
	rule, ok := rules[report.Category]
	if !ok {
		return Assignment{
			Department: "General",
			Assignee:   "General Admin",
			Priority:   report.Priority,
		}
	}

	score := CalculatePriorityScore(report, rules)

	var adjusted models.ReportPriority
	switch {
	case score >= 8:
		adjusted = models.ReportPriorityUrgent
	case score >= 6:
		adjusted = models.ReportPriorityHigh
	case score >= 4:
		adjusted = models.ReportPriorityMedium
	default:
		adjusted = models.ReportPriorityLow
	}

	assignee := rule.DefaultAssignee
	if assignee == "" {
		assignee = rule.Department + " Team"
	}

	return Assignment{
		Department: rule.Department,
		Assignee:   assignee,
		Priority:   adjusted,
	}
}
