package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logoped/internal/models"
)

func validApplication() map[string]any {
	return map[string]any{
		"parent_name":    "Анна",
		"phone":          "(900)-123-45-67",
		"problem":        "Заикание",
		"preferred_time": "13.03.2025 09:00–09:45",
	}
}

func TestCreateApplication(t *testing.T) {
	ts := setupTestServer(t)

	resp, body := ts.do(t, http.MethodPost, "/api/v1/applications", validApplication(), false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	app := decodeJSON[models.Application](t, body)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.StatusNew, app.Status)
	assert.Equal(t, "+79001234567", app.Phone, "phone normalized")
	assert.Equal(t, "13.03.2025 09:00–09:45", app.PreferredTime)
}

func TestCreateApplicationValidation(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   string
	}{
		{
			name:   "missing parent_name",
			mutate: func(m map[string]any) { m["parent_name"] = "" },
			want:   "parent_name, phone and problem are required",
		},
		{
			name:   "missing phone",
			mutate: func(m map[string]any) { m["phone"] = "" },
			want:   "parent_name, phone and problem are required",
		},
		{
			name:   "missing problem",
			mutate: func(m map[string]any) { delete(m, "problem") },
			want:   "parent_name, phone and problem are required",
		},
		{
			name:   "too few phone digits",
			mutate: func(m map[string]any) { m["phone"] = "12345" },
			want:   "invalid phone number",
		},
		{
			name:   "unknown field",
			mutate: func(m map[string]any) { m["surprise"] = true },
			want:   "invalid JSON body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validApplication()
			tt.mutate(payload)

			resp, body := ts.do(t, http.MethodPost, "/api/v1/applications", payload, false)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			errResp := decodeJSON[map[string]string](t, body)
			assert.Equal(t, tt.want, errResp["error"])
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"(900)-123-45-67", "+79001234567", true},
		{"9001234567", "+79001234567", true},
		{"+7 900 123-45-67", "+79001234567", true},
		{"8 (900) 123 45 67", "+79001234567", true},
		{"79001234567", "+79001234567", true},
		{"12345", "", false},
		{"", "", false},
		{"+1 202 555 0100 55", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizePhone(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestCreateApplicationRateLimited(t *testing.T) {
	ts := setupTestServer(t, func(o *Options) {
		o.RatePerSecond = 0.001
		o.RateBurst = 2
	})

	for i := 0; i < 2; i++ {
		resp, _ := ts.do(t, http.MethodPost, "/api/v1/applications", validApplication(), false)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "request %d within burst", i)
	}

	resp, body := ts.do(t, http.MethodPost, "/api/v1/applications", validApplication(), false)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	errResp := decodeJSON[map[string]string](t, body)
	assert.Contains(t, errResp["error"], "too many requests")
}

func TestAdminAuth(t *testing.T) {
	ts := setupTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/admin/applications", nil)
	require.NoError(t, err)

	// No key
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong key
	req.Header.Set("X-API-Key", "wrong")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid key
	resp2, _ := ts.do(t, http.MethodGet, "/api/v1/admin/applications", nil, true)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestApplicationAdminFlow(t *testing.T) {
	ts := setupTestServer(t)

	resp, body := ts.do(t, http.MethodPost, "/api/v1/applications", validApplication(), false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeJSON[models.Application](t, body)

	// List shows the new application.
	resp, body = ts.do(t, http.MethodGet, "/api/v1/admin/applications", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeJSON[struct {
		Applications []models.Application `json:"applications"`
		Total        int                  `json:"total"`
	}](t, body)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, created.ID, list.Applications[0].ID)

	// Status transition.
	resp, _ = ts.do(t, http.MethodPost, "/api/v1/admin/applications/"+created.ID+"/status",
		map[string]string{"status": "in_progress"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Invalid status rejected.
	resp, _ = ts.do(t, http.MethodPost, "/api/v1/admin/applications/"+created.ID+"/status",
		map[string]string{"status": "bogus"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown id.
	resp, _ = ts.do(t, http.MethodPost, "/api/v1/admin/applications/missing/status",
		map[string]string{"status": "completed"}, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Admin comment.
	resp, _ = ts.do(t, http.MethodPost, "/api/v1/admin/applications/"+created.ID+"/comment",
		map[string]string{"comment": "перезвонить вечером"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = ts.do(t, http.MethodGet, "/api/v1/admin/applications", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decodeJSON[struct {
		Applications []models.Application `json:"applications"`
		Total        int                  `json:"total"`
	}](t, body)
	assert.Equal(t, models.StatusInProgress, list.Applications[0].Status)
	assert.Equal(t, "перезвонить вечером", list.Applications[0].AdminComment)
}

func TestExportApplications(t *testing.T) {
	ts := setupTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/v1/applications", validApplication(), false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := ts.do(t, http.MethodGet, "/api/v1/admin/applications/export", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "applications_2025-03-12.xlsx")
	assert.NotZero(t, len(body))
}
