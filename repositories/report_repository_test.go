package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithVersionBump_DoesNotMutateInput(t *testing.T) {
	fields := map[string]interface{}{
		"status":      "resolved",
		"assigned_to": "Lisa Chen - Water Department",
	}

	values := withVersionBump(fields)

	assert.Contains(t, values, "version")
	assert.Equal(t, "resolved", values["status"])
	assert.NotContains(t, fields, "version")
	assert.Len(t, fields, 2)
}
