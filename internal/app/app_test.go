package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordpath/internal/adapter/sqlite"
	"github.com/heartmarshall/wordpath/internal/auth"
	"github.com/heartmarshall/wordpath/internal/config"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{ShutdownTimeout: time.Second},
		Storage: config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "wordpath.db")},
		Auth:    config.AuthConfig{JWTSecret: testSecret, JWTIssuer: "wordpath", AccessTokenTTL: time.Hour},
		Log:     config.LogConfig{Level: "info", Format: "json"},
		Session: config.SessionConfig{DuePullLimit: 20, SmartTopUpThreshold: 5, MaxQueueLength: 20, IdleTTL: time.Hour},
		CORS:    config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,DELETE", AllowedHeaders: "Authorization,Content-Type"},
	}
}

// prepareSQLite migrates the database file named by cfg and seeds n items in
// book 1, unit 1.
func prepareSQLite(t *testing.T, cfg *config.Config, n int) {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, sqlite.Migrate(ctx, db))
	for i := range n {
		_, err := db.ExecContext(ctx,
			`INSERT INTO items (id, ordinal, headword, definition, book, unit) VALUES (?, ?, ?, ?, 1, 1)`,
			uuid.NewString(), i+1, "word-"+string(rune('a'+i)), "definition",
		)
		require.NoError(t, err)
	}
}

type testServer struct {
	*httptest.Server
	store *Store
	jwt   *auth.JWTManager
}

func setupServer(t *testing.T, items int) *testServer {
	t.Helper()

	cfg := testConfig(t)
	prepareSQLite(t, cfg, items)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := OpenStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	handler, stop, err := NewHandler(cfg, logger, st)
	require.NoError(t, err)
	t.Cleanup(stop)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		Server: srv,
		store:  st,
		jwt:    auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
	}
}

func (ts *testServer) call(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestFlow_GuestSessionRunsToCompletion(t *testing.T) {
	t.Parallel()
	ts := setupServer(t, 2)

	status, sess := ts.call(t, http.MethodPost, "/sessions", "", map[string]any{"book": 1, "unit": 1, "mode": "learn"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, sess["guest"])
	assert.EqualValues(t, 4, sess["total"])
	id := sess["id"].(string)

	grades := []int{3, 2, 3, 0}
	var last map[string]any
	for _, g := range grades {
		status, last = ts.call(t, http.MethodPost, "/sessions/"+id+"/grades", "", map[string]any{"grade": g})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, last["persisted"], "guest grades are never persisted")
	}
	assert.Equal(t, "complete", last["outcome"])

	status, stats := ts.call(t, http.MethodGet, "/sessions/"+id+"/stats", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, stats["correct"])
	assert.EqualValues(t, 1, stats["incorrect"])
	assert.EqualValues(t, 1, stats["learned"])

	status, _ = ts.call(t, http.MethodPost, "/sessions/"+id+"/grades", "", map[string]any{"grade": 3})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = ts.call(t, http.MethodDelete, "/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = ts.call(t, http.MethodGet, "/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// guests always get the scope's new words
	status, sess = ts.call(t, http.MethodPost, "/sessions", "", map[string]any{"mode": "review"})
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 4, sess["total"])
}

func TestFlow_IdentifiedProgressIsStored(t *testing.T) {
	t.Parallel()
	ts := setupServer(t, 1)

	learner := uuid.New()
	token, err := ts.jwt.GenerateAccessToken(learner)
	require.NoError(t, err)

	status, sess := ts.call(t, http.MethodPost, "/sessions", token, map[string]any{"mode": "learn"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, false, sess["guest"])
	id := sess["id"].(string)

	// another learner cannot see the session
	other, err := ts.jwt.GenerateAccessToken(uuid.New())
	require.NoError(t, err)
	status, _ = ts.call(t, http.MethodGet, "/sessions/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.call(t, http.MethodPost, "/sessions/"+id+"/grades", token, map[string]any{"grade": 3})
	require.Equal(t, http.StatusOK, status)
	status, res := ts.call(t, http.MethodPost, "/sessions/"+id+"/grades", token, map[string]any{"grade": 3})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, res["persisted"])
	progress := res["progress"].(map[string]any)
	assert.EqualValues(t, 1, progress["familiarityLevel"])
	assert.Equal(t, "LEARNING", progress["phase"])

	due, err := ts.store.Progress.ListDue(context.Background(), learner, time.Now().Add(2*time.Hour), 20)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].Progress.FamiliarityLevel)
	assert.Equal(t, 1, due[0].Progress.CorrectCount)

	// the first learning step is about an hour out
	status, sess = ts.call(t, http.MethodPost, "/sessions", token, map[string]any{"mode": "review"})
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 0, sess["total"], "not due yet")
}

func TestFlow_RequestErrors(t *testing.T) {
	t.Parallel()
	ts := setupServer(t, 1)

	status, body := ts.call(t, http.MethodPost, "/sessions", "", map[string]any{"book": 0, "mode": "cram"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, body["fields"], 2)

	status, _ = ts.call(t, http.MethodPost, "/sessions", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.call(t, http.MethodGet, "/sessions/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.call(t, http.MethodGet, "/items/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, items := ts.call(t, http.MethodGet, "/items", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, items["items"], 1)
}

func TestFlow_HealthReportsDriver(t *testing.T) {
	t.Parallel()
	ts := setupServer(t, 0)

	status, body := ts.call(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	db := body["components"].(map[string]any)["database"].(map[string]any)
	assert.Equal(t, "sqlite", db["driver"])
}

func TestNewHandler_StartLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Server.StartsPerMinute = 1
	prepareSQLite(t, cfg, 1)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := OpenStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer st.Close()

	handler, stop, err := NewHandler(cfg, logger, st)
	require.NoError(t, err)
	defer stop()

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Storage.Driver = "mysql"

	_, err := OpenStore(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "mysql"))
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil))) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
