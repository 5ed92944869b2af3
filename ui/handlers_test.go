package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"switchscope/adapters/memory"
	"switchscope/app"
	"switchscope/internal/config"
	"switchscope/internal/testkit"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	kit := testkit.NewKit()
	repo := memory.NewRepository()
	investigations := app.NewInvestigationService(kit, kit, kit, repo, nil)
	dashboards := app.NewDashboardService(kit)
	return NewServer(config.ServerConfig{Port: "0", GinMode: "test"}, dashboards, investigations, "Onco-Pro")
}

func do(t *testing.T, s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestOverviewEndpoint(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/hcps/HCP-1001/overview", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "HCP-1001", gjson.Get(body, "summary.id").String())
	assert.True(t, gjson.Get(body, "timeline.points").IsArray())
	assert.Greater(t, gjson.Get(body, "timeline.points.#").Int(), int64(0))

	// Every point's total equals the sum of its cohort survivor counts.
	for _, point := range gjson.Get(body, "timeline.points").Array() {
		var sum int64
		point.Get("survivors").ForEach(func(_, v gjson.Result) bool {
			sum += v.Int()
			return true
		})
		assert.Equal(t, sum, point.Get("total").Int())
	}
}

func TestStrategiesGatedBeforeConfirmation(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodGet, "/api/ai/nba-results/HCP-1001", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "INCOMPLETE_WORKFLOW", gjson.Get(body, "code").String())
	assert.Contains(t, gjson.Get(body, "guidance").String(), "start a causal investigation")
}

func TestInvestigateConfirmStrategiesFlow(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodPost, "/api/ai/investigate/HCP-1001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, gjson.Get(body, "hasInvestigation").Bool())
	assert.False(t, gjson.Get(body, "isConfirmed").Bool())
	require.Greater(t, gjson.Get(body, "provenHypotheses.#").Int(), int64(0))
	provenID := gjson.Get(body, "provenHypotheses.0.id").String()

	// Gate still closed after synthesis.
	rec = do(t, s, http.MethodGet, "/api/ai/nba-results/HCP-1001", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, gjson.Get(rec.Body.String(), "guidance").String(), "confirm root causes")

	confirm, _ := json.Marshal(map[string]interface{}{
		"confirmedHypotheses": []string{provenID},
		"smeNotes":            "matches **field reports**",
	})
	rec = do(t, s, http.MethodPost, "/api/ai/confirm-investigation/HCP-1001", confirm)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "confirmedCount").Int())

	rec = do(t, s, http.MethodGet, "/api/ai/nba-results/HCP-1001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Greater(t, gjson.Get(rec.Body.String(), "strategies.#").Int(), int64(0))
	assert.NotEmpty(t, gjson.Get(rec.Body.String(), "strategies.0.descriptionHtml").String())

	// Confirmed results carry notes rendered as markdown.
	rec = do(t, s, http.MethodGet, "/api/ai/investigation-results/HCP-1001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.True(t, gjson.Get(body, "isConfirmed").Bool())
	assert.True(t, gjson.Get(body, "strategiesUnlocked").Bool())
	assert.Contains(t, gjson.Get(body, "smeNotesHtml").String(), "<strong>field reports</strong>")
}

func TestBlankHCPIDRejected(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/hcps/%20/overview", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", gjson.Get(rec.Body.String(), "code").String())
}

func TestConfirmRejectsBadSelections(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodPost, "/api/ai/investigate/HCP-1001", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	empty, _ := json.Marshal(map[string]interface{}{"confirmedHypotheses": []string{}})
	rec = do(t, s, http.MethodPost, "/api/ai/confirm-investigation/HCP-1001", empty)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_SELECTION", gjson.Get(rec.Body.String(), "code").String())

	unknown, _ := json.Marshal(map[string]interface{}{"confirmedHypotheses": []string{"hyp-phantom"}})
	rec = do(t, s, http.MethodPost, "/api/ai/confirm-investigation/HCP-1001", unknown)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/ai/confirm-investigation/HCP-1001", []byte("{invalid"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", gjson.Get(rec.Body.String(), "code").String())
}

func TestResultsForUnknownHCPIsEmptyShape(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/ai/investigation-results/HCP-unseen", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.False(t, gjson.Get(body, "hasInvestigation").Bool())
	assert.False(t, gjson.Get(body, "isConfirmed").Bool())
	assert.False(t, gjson.Get(body, "strategiesUnlocked").Bool())
}

func TestReportEndpointStreamsWorkbook(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/hcps/HCP-1001/report.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}
