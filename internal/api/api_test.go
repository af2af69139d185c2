package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"logoped/internal/database"
)

const testAdminKey = "test-admin-key"

// testNow is a Wednesday at noon; date-sensitive handlers are pinned to it.
var testNow = time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)

type testServer struct {
	*httptest.Server
	api *HTTPServer
	db  *database.DB
}

func setupTestServer(t *testing.T, opts ...func(*Options)) *testServer {
	t.Helper()

	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	options := Options{
		AdminAPIKey:   testAdminKey,
		HorizonDays:   31,
		RatePerSecond: 1000,
		RateBurst:     1000,
	}
	for _, o := range opts {
		o(&options)
	}

	api := NewHTTPServer(db, &logger, options)
	api.now = func() time.Time { return testNow }

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, api: api, db: db}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, admin bool) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("X-API-Key", testAdminKey)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func decodeJSON[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}
