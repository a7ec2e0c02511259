package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"ghcost/core/catalog"
	"ghcost/core/engine"
)

func newTestServer(t *testing.T) *Server {
	return NewServer(engine.New(catalog.MustDefault()), Options{
		Version: "test",
		Logger:  zaptest.NewLogger(t),
	})
}

func do(t *testing.T, s *Server, method, path, contentType, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

type estimateBody struct {
	RequestID         string `json:"request_id"`
	Recommended       string `json:"recommended"`
	HasRecommendation bool   `json:"has_recommendation"`
	Recommendation    string `json:"recommendation"`
	Breakdowns        []struct {
		PlanKey    string          `json:"plan_key"`
		CanSupport bool            `json:"can_support"`
		TotalCost  decimal.Decimal `json:"total_cost"`
	} `json:"breakdowns"`
}

func TestEstimateJSON(t *testing.T) {
	s := newTestServer(t)

	resp, data := do(t, s, http.MethodPost, "/v1/estimate", "application/json",
		`{"team_size": 5, "security": {"code_security": true}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var body estimateBody
	require.NoError(t, json.Unmarshal(data, &body))
	assert.NotEmpty(t, body.RequestID)
	assert.Equal(t, resp.Header.Get("X-Request-ID"), body.RequestID)
	assert.Equal(t, "team", body.Recommended)
	assert.Equal(t, "Based on your usage, the Team plan is most cost-effective at $170.00/month.", body.Recommendation)
	require.Len(t, body.Breakdowns, 4)
	assert.True(t, body.Breakdowns[2].TotalCost.Equal(decimal.NewFromInt(170)))
}

func TestEstimateYAML(t *testing.T) {
	s := newTestServer(t)

	resp, data := do(t, s, http.MethodPost, "/v1/estimate", "application/yaml", `
team_size: 1
compute:
  - kind: linux
    jobs_per_day: 100
    duration_minutes: 5
`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var body estimateBody
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "enterprise", body.Recommended)
	assert.False(t, body.Breakdowns[0].CanSupport)
}

func TestEstimateAtDomainLimits(t *testing.T) {
	s := newTestServer(t)

	resp, data := do(t, s, http.MethodPost, "/v1/estimate", "application/json",
		`{"team_size": 3, "features": ["saml_sso", "ldap"], "security": {"code_security": true}, "compute": [{"kind": "macos", "jobs_per_day": 1000, "duration_minutes": 360}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var body estimateBody
	require.NoError(t, json.Unmarshal(data, &body))
	assert.True(t, body.HasRecommendation)
	assert.Equal(t, "enterprise", body.Recommended)
	for _, b := range body.Breakdowns[:3] {
		assert.False(t, b.CanSupport, b.PlanKey)
	}
}

func TestEstimateRejectsInvalidDocuments(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{name: "malformed", body: `{"team_size": `, wantCode: "PARSING_ERROR"},
		{name: "unknown field", body: `{"team_size": 1, "discount": 5}`, wantCode: "PARSING_ERROR"},
		{name: "limit", body: `{"team_size": 1, "compute": [{"kind": "linux", "jobs_per_day": 2000}]}`, wantCode: "INPUT_ERROR", wantField: "compute[0].jobs_per_day"},
		{name: "runner kind", body: `{"team_size": 1, "compute": [{"kind": "vax"}]}`, wantCode: "INPUT_ERROR", wantField: "compute[0].kind"},
		{name: "feature", body: `{"team_size": 1, "features": ["hover"]}`, wantCode: "INPUT_ERROR", wantField: "features[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, s, http.MethodPost, "/v1/estimate", "application/json", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(data))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.RequestID)
			if tt.wantField != "" {
				require.Len(t, body.Error.Violations, 1)
				assert.Equal(t, tt.wantField, body.Error.Violations[0].Field)
			}
		})
	}
}

func TestFormEstimate(t *testing.T) {
	s := newTestServer(t)

	resp, data := do(t, s, http.MethodPost, "/v1/form/estimate", "application/json",
		`{"team_size": "5", "sections": {"security": true}, "code_security": true, "committers": ""}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var body estimateBody
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "team", body.Recommended)
	assert.True(t, body.Breakdowns[2].TotalCost.Equal(decimal.NewFromInt(170)))

	// compute rows are ignored while the section is off
	resp, data = do(t, s, http.MethodPost, "/v1/form/estimate", "application/json",
		`{"team_size": "abc", "runners": [{"kind": "macos", "jobs_per_day": "500", "duration_minutes": "60"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "free", body.Recommended)

	resp, data = do(t, s, http.MethodPost, "/v1/form/estimate", "application/json", `{"teamsize": "1"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody ErrorResponse
	require.NoError(t, json.Unmarshal(data, &errBody))
	assert.Equal(t, "PARSING_ERROR", errBody.Error.Code)
}

func TestPlans(t *testing.T) {
	s := newTestServer(t)

	resp, data := do(t, s, http.MethodGet, "/v1/plans", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Currency string `json:"currency"`
		Plans    []struct {
			Key string `json:"key"`
		} `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "USD", body.Currency)
	require.Len(t, body.Plans, 4)
	assert.Equal(t, "free", body.Plans[0].Key)

	resp, data = do(t, s, http.MethodGet, "/v1/plans/team", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"security_addons":true`)

	resp, data = do(t, s, http.MethodGet, "/v1/plans/platinum", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody ErrorResponse
	require.NoError(t, json.Unmarshal(data, &errBody))
	assert.Equal(t, "NOT_FOUND", errBody.Error.Code)
	assert.Contains(t, errBody.Error.Message, "platinum")
}

func TestFeatures(t *testing.T) {
	resp, data := do(t, newTestServer(t), http.MethodGet, "/v1/features", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"team":"addon:code_security"`)
	assert.Contains(t, string(data), `"enterprise":"cloud_only"`)
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t)

	resp, data := do(t, s, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"status":"healthy"`)

	resp, data = do(t, s, http.MethodGet, "/version", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"version":"test"`)
	assert.Contains(t, string(data), `"plans":4`)
}

func TestMetricsAfterEstimate(t *testing.T) {
	s := newTestServer(t)

	resp, _ := do(t, s, http.MethodPost, "/v1/estimate", "application/json", `{"team_size": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := do(t, s, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `ghcost_estimations_total{outcome="recommended"}`)
	assert.Contains(t, string(data), `ghcost_recommendations_total{plan="free"}`)
	assert.Contains(t, string(data), "ghcost_estimate_duration_seconds_bucket")
}

func TestUnknownRoute(t *testing.T) {
	resp, data := do(t, newTestServer(t), http.MethodGet, "/v2/estimate", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "HTTP_ERROR", body.Error.Code)
}
