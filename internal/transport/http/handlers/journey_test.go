package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"pact/internal/app/server"
	"pact/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:                  dbURL,
		JWTSecret:                    "test-secret",
		DataEncryptionKey:            "",
		Environment:                  "test",
		SeedAdminEmail:               "admin@test.local",
		SeedAdminPassword:            "ChangeMe123!",
		EmailFrom:                    "no-reply@test.local",
		RunMigrations:                true,
		RunSeed:                      true,
		MigrationsDir:                "../../../../migrations",
		MaxBodyBytes:                 1048576,
		RateLimitPerMinute:           1000,
		MetricsEnabled:               true,
		CriticalEscalationCount:      2,
		ExitAfterConsecutiveCritical: 2,
		EvaluationConcurrency:        2,
	}
}

func startApp(t *testing.T) (*httptest.Server, *http.Client, string) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)

	token := login(t, ts.Client(), ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	return ts, ts.Client(), token
}

func TestGrowthJourneyProducesSalaryAdjustmentDraft(t *testing.T) {
	ts, client, token := startApp(t)

	roleID := createRoleConfig(t, client, ts.URL, token, fmt.Sprintf("Growth Role %d", time.Now().UnixNano()))
	employeeID := createEmployee(t, client, ts.URL, token, roleID)

	now := time.Now().UTC()
	appendEntry(t, client, ts.URL, token, employeeID, "on-time delivery rate", 97, now)
	appendEntry(t, client, ts.URL, token, employeeID, "output volume", 130, now)

	// Evaluate strictly after the entries were recorded so the as-of
	// cutoff includes them regardless of database clock skew.
	outcome := evaluate(t, client, ts.URL, token, employeeID, now.Add(5*time.Minute), http.StatusOK)
	if outcome["toState"] != "growth" {
		t.Fatalf("expected growth state, got %v", outcome["toState"])
	}
	if outcome["transitioned"] != true {
		t.Fatalf("expected a transition, got %+v", outcome)
	}

	reports := listReports(t, client, ts.URL, token, employeeID, "salary_adjustment")
	if len(reports) != 1 {
		t.Fatalf("expected one salary adjustment report, got %d", len(reports))
	}
	if reports[0]["status"] != "draft" {
		t.Fatalf("expected draft salary adjustment, got %v", reports[0]["status"])
	}

	transitions := listTransitions(t, client, ts.URL, token, employeeID)
	if len(transitions) != 1 {
		t.Fatalf("expected one transition, got %d", len(transitions))
	}
}

func TestSustainedCriticalJourneyEndsInExit(t *testing.T) {
	ts, client, token := startApp(t)

	roleID := createRoleConfig(t, client, ts.URL, token, fmt.Sprintf("Critical Role %d", time.Now().UnixNano()))
	employeeID := createEmployee(t, client, ts.URL, token, roleID)

	first := time.Now().UTC()
	appendEntry(t, client, ts.URL, token, employeeID, "on-time delivery rate", 40, first)
	appendEntry(t, client, ts.URL, token, employeeID, "output volume", 10, first)

	outcome := evaluate(t, client, ts.URL, token, employeeID, first.Add(5*time.Minute), http.StatusOK)
	if outcome["toState"] != "critical" {
		t.Fatalf("expected critical after first period, got %v", outcome["toState"])
	}

	pacts := listReports(t, client, ts.URL, token, employeeID, "pact_report")
	if len(pacts) != 1 || pacts[0]["status"] != "draft" {
		t.Fatalf("expected staged draft pact report, got %+v", pacts)
	}

	second := first.Add(24 * time.Hour)
	appendEntry(t, client, ts.URL, token, employeeID, "on-time delivery rate", 35, second)
	appendEntry(t, client, ts.URL, token, employeeID, "output volume", 8, second)

	outcome = evaluate(t, client, ts.URL, token, employeeID, second.Add(5*time.Minute), http.StatusOK)
	if outcome["toState"] != "exit" {
		t.Fatalf("expected exit after second critical period, got %v", outcome["toState"])
	}

	pacts = listReports(t, client, ts.URL, token, employeeID, "pact_report")
	if len(pacts) != 1 || pacts[0]["status"] != "finalized" {
		t.Fatalf("expected finalized pact report, got %+v", pacts)
	}

	// Exit is terminal.
	evaluate(t, client, ts.URL, token, employeeID, second.Add(24*time.Hour), http.StatusConflict)
}

func TestReportOverlapRejected(t *testing.T) {
	ts, client, token := startApp(t)

	roleID := createRoleConfig(t, client, ts.URL, token, fmt.Sprintf("Overlap Role %d", time.Now().UnixNano()))
	employeeID := createEmployee(t, client, ts.URL, token, roleID)

	payload := map[string]any{
		"employeeId":  employeeID,
		"type":        "role_continuation",
		"periodStart": "2025-01-01",
		"periodEnd":   "2025-01-31",
	}
	postJSON(t, client, ts.URL+"/api/v1/reports/generate", token, payload, http.StatusCreated)

	payload["periodStart"] = "2025-01-20"
	payload["periodEnd"] = "2025-02-20"
	postJSON(t, client, ts.URL+"/api/v1/reports/generate", token, payload, http.StatusConflict)
}

func TestReportFinalizeIsOneWay(t *testing.T) {
	ts, client, token := startApp(t)

	roleID := createRoleConfig(t, client, ts.URL, token, fmt.Sprintf("Finalize Role %d", time.Now().UnixNano()))
	employeeID := createEmployee(t, client, ts.URL, token, roleID)

	created := postJSON(t, client, ts.URL+"/api/v1/reports/generate", token, map[string]any{
		"employeeId":  employeeID,
		"type":        "salary_adjustment",
		"periodStart": "2025-03-01",
		"periodEnd":   "2025-03-31",
	}, http.StatusCreated)
	reportID, _ := created["id"].(string)
	if reportID == "" {
		t.Fatalf("expected report id, got %+v", created)
	}

	finalized := postJSON(t, client, ts.URL+"/api/v1/reports/"+reportID+"/finalize", token, nil, http.StatusOK)
	if finalized["status"] != "finalized" {
		t.Fatalf("expected finalized status, got %v", finalized["status"])
	}

	postJSON(t, client, ts.URL+"/api/v1/reports/"+reportID+"/finalize", token, nil, http.StatusConflict)
}

func TestInvalidRoleConfigRejected(t *testing.T) {
	ts, client, token := startApp(t)

	resp := doRequest(t, client, http.MethodPost, ts.URL+"/api/v1/contracts", token, map[string]any{
		"name":                 fmt.Sprintf("Broken Role %d", time.Now().UnixNano()),
		"evaluationPeriodDays": 30,
		"metrics": []map[string]any{
			{
				"name":      "on-time delivery rate",
				"weight":    100,
				"direction": "higher_is_better",
				"thresholds": map[string]float64{
					"growth": 80, "stable": 90, "warning": 85, "critical": 70,
				},
			},
		},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unordered thresholds, got %d", resp.StatusCode)
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	data := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusOK)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("expected token in login response, got %+v", data)
	}
	return token
}

func createRoleConfig(t *testing.T, client *http.Client, baseURL, token, name string) string {
	t.Helper()
	data := postJSON(t, client, baseURL+"/api/v1/contracts", token, map[string]any{
		"name":                 name,
		"department":           "Operations",
		"evaluationPeriodDays": 30,
		"metrics": []map[string]any{
			{
				"name":      "on-time delivery rate",
				"unit":      "%",
				"weight":    60,
				"direction": "higher_is_better",
				"thresholds": map[string]float64{
					"growth": 95, "stable": 90, "warning": 85, "critical": 80,
				},
			},
			{
				"name":      "output volume",
				"unit":      "deliveries",
				"weight":    40,
				"direction": "higher_is_better",
				"thresholds": map[string]float64{
					"growth": 120, "stable": 100, "warning": 80, "critical": 60,
				},
			},
		},
	}, http.StatusCreated)
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("expected role config id, got %+v", data)
	}
	return id
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, roleID string) string {
	t.Helper()
	data := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"firstName":    "Jordan",
		"lastName":     "Driver",
		"email":        fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano()),
		"roleConfigId": roleID,
	}, http.StatusCreated)
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("expected employee id, got %+v", data)
	}
	return id
}

func appendEntry(t *testing.T, client *http.Client, baseURL, token, employeeID, metricKey string, value float64, at time.Time) {
	t.Helper()
	postJSON(t, client, baseURL+"/api/v1/ledger", token, map[string]any{
		"employeeId":  employeeID,
		"metricKey":   metricKey,
		"value":       value,
		"periodStart": at.AddDate(0, 0, -7).Format(time.RFC3339),
		"periodEnd":   at.Format(time.RFC3339),
		"sourceType":  "manual_admin",
	}, http.StatusCreated)
}

func evaluate(t *testing.T, client *http.Client, baseURL, token, employeeID string, asOf time.Time, wantStatus int) map[string]any {
	t.Helper()
	url := fmt.Sprintf("%s/api/v1/employees/%s/evaluate?asOf=%s", baseURL, employeeID, asOf.Format(time.RFC3339))
	resp := doRequest(t, client, http.MethodPost, url, token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", wantStatus, resp.StatusCode, body)
	}
	if wantStatus != http.StatusOK {
		return nil
	}
	return decodeData(t, resp)
}

func listReports(t *testing.T, client *http.Client, baseURL, token, employeeID, reportType string) []map[string]any {
	t.Helper()
	url := fmt.Sprintf("%s/api/v1/reports?employeeId=%s&type=%s", baseURL, employeeID, reportType)
	resp := doRequest(t, client, http.MethodGet, url, token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list reports failed with %d", resp.StatusCode)
	}
	return decodeDataSlice(t, resp)
}

func listTransitions(t *testing.T, client *http.Client, baseURL, token, employeeID string) []map[string]any {
	t.Helper()
	url := fmt.Sprintf("%s/api/v1/employees/%s/transitions", baseURL, employeeID)
	resp := doRequest(t, client, http.MethodGet, url, token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list transitions failed with %d", resp.StatusCode)
	}
	return decodeDataSlice(t, resp)
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any, wantStatus int) map[string]any {
	t.Helper()
	resp := doRequest(t, client, http.MethodPost, url, token, payload)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d for %s, got %d: %s", wantStatus, url, resp.StatusCode, body)
	}
	if wantStatus >= 400 {
		return nil
	}
	return decodeData(t, resp)
}

func doRequest(t *testing.T, client *http.Client, method, url, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var data map[string]any
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return data
}

func decodeDataSlice(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var data []map[string]any
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return data
}
