package routing

import (
	"fmt"
	"os"

	"github.com/civicseva/civicseva-api/models"
	"gopkg.in/yaml.v2"
)

// Rule maps one report category to its target department, default assignee,
// priority multiplier and category keywords. One rule per category; the table
// is immutable once loaded.
type Rule struct {
	Category           models.ReportCategory `yaml:"category"`
	Department         string                `yaml:"department"`
	DefaultAssignee    string                `yaml:"default_assignee"`
	PriorityMultiplier float64               `yaml:"priority_multiplier"`
	Keywords           []string              `yaml:"keywords"`
}

// Rules indexes the rule table by category.
type Rules map[models.ReportCategory]Rule

// DefaultRules returns the built-in municipal rule table.
func DefaultRules() Rules {
	rules := []Rule{
		{
			Category:           models.ReportCategoryRoads,
			Department:         "Public Works",
			DefaultAssignee:    "John Smith - Public Works",
			PriorityMultiplier: 1.2,
			Keywords:           []string{"pothole", "road", "street", "pavement", "traffic", "signal"},
		},
		{
			Category:           models.ReportCategoryLighting,
			Department:         "Utilities",
			DefaultAssignee:    "Sarah Johnson - Utilities",
			PriorityMultiplier: 0.8,
			Keywords:           []string{"light", "lamp", "dark", "electricity", "power", "bulb"},
		},
		{
			Category:           models.ReportCategorySanitation,
			Department:         "Sanitation",
			DefaultAssignee:    "Mike Davis - Sanitation",
			PriorityMultiplier: 1.5,
			Keywords:           []string{"garbage", "trash", "waste", "dirty", "smell", "litter"},
		},
		{
			Category:           models.ReportCategoryWater,
			Department:         "Water Department",
			DefaultAssignee:    "Lisa Chen - Water Department",
			PriorityMultiplier: 2.0,
			Keywords:           []string{"water", "leak", "pipe", "drain", "flood", "sewer"},
		},
		{
			Category:           models.ReportCategoryParks,
			Department:         "Parks",
			DefaultAssignee:    "Tom Wilson - Parks",
			PriorityMultiplier: 0.6,
			Keywords:           []string{"park", "tree", "grass", "playground", "bench", "garden"},
		},
		{
			Category:           models.ReportCategorySafety,
			Department:         "Safety",
			DefaultAssignee:    "Anna Rodriguez - Safety",
			PriorityMultiplier: 3.0,
			Keywords:           []string{"danger", "unsafe", "hazard", "emergency", "accident", "injury"},
		},
		{
			Category:           models.ReportCategoryNoise,
			Department:         "Environmental",
			DefaultAssignee:    "David Kim - Environmental",
			PriorityMultiplier: 0.7,
			Keywords:           []string{"noise", "loud", "sound", "music", "construction", "disturb"},
		},
	}

	indexed := make(Rules, len(rules))
	for _, r := range rules {
		indexed[r.Category] = r
	}
	return indexed
}

// LoadRules reads a YAML rule table from path. An empty path returns the
// built-in defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routing rules: %w", err)
	}

	var list []Rule
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse routing rules: %w", err)
	}

	indexed := make(Rules, len(list))
	for _, r := range list {
		if !r.Category.Valid() {
			return nil, fmt.Errorf("routing rules: unknown category %q", r.Category)
		}
		if r.PriorityMultiplier <= 0 {
			return nil, fmt.Errorf("routing rules: category %q has non-positive multiplier", r.Category)
		}
		indexed[r.Category] = r
	}
	return indexed, nil
}
