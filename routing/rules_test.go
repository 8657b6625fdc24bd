package routing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/civicseva/civicseva-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultRules_CoversRoutedCategories(t *testing.T) {
	rules := DefaultRules()

	assert.Len(t, rules, 7)
	for _, category := range []models.ReportCategory{
		models.ReportCategoryRoads,
		models.ReportCategoryLighting,
		models.ReportCategorySanitation,
		models.ReportCategoryWater,
		models.ReportCategoryParks,
		models.ReportCategorySafety,
		models.ReportCategoryNoise,
	} {
		rule, ok := rules[category]
		assert.True(t, ok, "missing rule for %s", category)
		assert.NotEmpty(t, rule.Department)
		assert.Greater(t, rule.PriorityMultiplier, 0.0)
	}

	// "other" deliberately has no rule and falls back to the general queue.
	_, ok := rules[models.ReportCategoryOther]
	assert.False(t, ok)
}

func TestLoadRules_EmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRules_ParsesYAML(t *testing.T) {
	path := writeRulesFile(t, `
- category: water
  department: Hydro
  default_assignee: On-call Engineer
  priority_multiplier: 2.5
  keywords: [leak, burst]
- category: roads
  department: Street Crew
  priority_multiplier: 1.0
`)

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	water := rules[models.ReportCategoryWater]
	assert.Equal(t, "Hydro", water.Department)
	assert.Equal(t, "On-call Engineer", water.DefaultAssignee)
	assert.Equal(t, 2.5, water.PriorityMultiplier)
	assert.Equal(t, []string{"leak", "burst"}, water.Keywords)
}

func TestLoadRules_RejectsUnknownCategory(t *testing.T) {
	path := writeRulesFile(t, `
- category: potholes
  department: Street Crew
  priority_multiplier: 1.0
`)

	_, err := LoadRules(path)
	assert.ErrorContains(t, err, "unknown category")
}

func TestLoadRules_RejectsNonPositiveMultiplier(t *testing.T) {
	path := writeRulesFile(t, `
- category: water
  department: Hydro
  priority_multiplier: 0
`)

	_, err := LoadRules(path)
	assert.ErrorContains(t, err, "non-positive multiplier")
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
