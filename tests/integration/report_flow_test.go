package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportLifecycleFlow(t *testing.T) {
	// Staff role must be in place before login so the token carries it.
	registerAndLogin(t, "inspector", "123456")
	promoteTo(t, "inspector", "staff")
	staffToken := registerAndLoginExisting(t, "inspector", "123456")

	// Anonymous citizen submits a report; routing fires synchronously.
	w := doRequest(t, "POST", "/reports", "", map[string]interface{}{
		"title":       "Water main burst on Elm Street",
		"description": "Water flooding the intersection",
		"category":    "water",
		"priority":    "high",
	}, http.StatusCreated)

	report := dataField(t, w)
	assert.Equal(t, "acknowledged", report["status"])
	assert.Equal(t, "Water Department", report["department"])
	assert.Equal(t, "high", report["priority"])
	require.NotEmpty(t, report["tracking_id"])

	reportID := int(report["id"].(float64))
	trackingID := report["tracking_id"].(string)

	// The public tracking endpoint works without a token.
	w = doRequest(t, "GET", "/track/"+trackingID, "", nil, http.StatusOK)
	tracked := dataField(t, w)
	assert.Equal(t, "acknowledged", tracked["status"])

	// Malformed tracking ids are rejected, not treated as missing.
	doRequest(t, "GET", "/track/not-a-uuid", "", nil, http.StatusBadRequest)

	// Staff move the report through its lifecycle.
	path := fmt.Sprintf("/reports/%d/status", reportID)
	w = doRequest(t, "PATCH", path, staffToken, map[string]interface{}{
		"status":  "in_progress",
		"message": "Crew dispatched",
	}, http.StatusOK)
	assert.Equal(t, "in_progress", dataField(t, w)["status"])

	doRequest(t, "PATCH", path, staffToken, map[string]interface{}{
		"status": "resolved",
	}, http.StatusOK)

	// Citizens rate only after resolution.
	citizenToken := registerAndLogin(t, "resident1", "123456")
	w = doRequest(t, "POST", fmt.Sprintf("/reports/%d/rating", reportID), citizenToken, map[string]interface{}{
		"rating":   5,
		"feedback": "Fixed the same day",
	}, http.StatusOK)
	assert.Equal(t, float64(5), dataField(t, w)["citizen_rating"])

	doRequest(t, "PATCH", path, staffToken, map[string]interface{}{
		"status": "closed",
	}, http.StatusOK)

	// Closed is terminal.
	doRequest(t, "PATCH", path, staffToken, map[string]interface{}{
		"status": "in_progress",
	}, http.StatusUnprocessableEntity)

	// Status changes require the staff role.
	doRequest(t, "PATCH", path, citizenToken, map[string]interface{}{
		"status": "in_progress",
	}, http.StatusForbidden)

	// The update log is visible to everyone, newest first.
	w = doRequest(t, "GET", fmt.Sprintf("/reports/%d/updates", reportID), "", nil, http.StatusOK)
	assert.Contains(t, w.Body.String(), "Crew dispatched")
}

func TestVoteFlow(t *testing.T) {
	tokenA := registerAndLogin(t, "voter-a", "123456")
	tokenB := registerAndLogin(t, "voter-b", "123456")
	tokenC := registerAndLogin(t, "voter-c", "123456")

	w := doRequest(t, "POST", "/reports", tokenA, map[string]interface{}{
		"title":    "Streetlight out on 5th",
		"category": "lighting",
	}, http.StatusCreated)
	reportID := int(dataField(t, w)["id"].(float64))

	votePath := fmt.Sprintf("/reports/%d/votes", reportID)

	w = doRequest(t, "POST", votePath, tokenA, nil, http.StatusOK)
	assert.Equal(t, float64(1), dataField(t, w)["votes"])

	// A second vote from the same citizen is a no-op.
	w = doRequest(t, "POST", votePath, tokenA, nil, http.StatusOK)
	assert.Equal(t, float64(1), dataField(t, w)["votes"])

	doRequest(t, "POST", votePath, tokenB, nil, http.StatusOK)
	w = doRequest(t, "POST", votePath, tokenC, nil, http.StatusOK)

	summary := dataField(t, w)
	assert.Equal(t, float64(3), summary["votes"])
	assert.Equal(t, true, summary["community_verified"])

	// Anonymous readers see the count without a voted flag.
	w = doRequest(t, "GET", votePath, "", nil, http.StatusOK)
	summary = dataField(t, w)
	assert.Equal(t, float64(3), summary["votes"])
	assert.Equal(t, false, summary["has_voted"])

	// Removing a vote drops the badge below the threshold.
	w = doRequest(t, "DELETE", votePath, tokenC, nil, http.StatusOK)
	summary = dataField(t, w)
	assert.Equal(t, float64(2), summary["votes"])
	assert.Equal(t, false, summary["community_verified"])

	// Voting requires a login.
	doRequest(t, "POST", votePath, "", nil, http.StatusUnauthorized)
}

func TestAnalyticsRequiresAdmin(t *testing.T) {
	citizenToken := registerAndLogin(t, "curious", "123456")
	doRequest(t, "GET", "/analytics/overview", citizenToken, nil, http.StatusForbidden)

	registerAndLogin(t, "mayor", "123456")
	promoteTo(t, "mayor", "admin")
	adminToken := registerAndLoginExisting(t, "mayor", "123456")

	doRequest(t, "GET", "/analytics/overview", adminToken, nil, http.StatusOK)
	doRequest(t, "GET", "/analytics/trending?days=7", adminToken, nil, http.StatusOK)
	doRequest(t, "GET", "/audit/logs", adminToken, nil, http.StatusOK)
}
