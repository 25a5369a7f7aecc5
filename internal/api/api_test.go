package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"roombook/internal/config"
	"roombook/internal/events"
	"roombook/internal/models"
	"roombook/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	logger := zerolog.New(io.Discard)
	st, err := store.New(t.TempDir(), &logger)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 0},
		Auth: config.AuthConfig{
			Secret:     "test-secret",
			BcryptCost: bcrypt.MinCost,
		},
	}

	server := NewServer(cfg, st, nil, events.NewEventBus(), &logger)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerUser(t *testing.T, ts *httptest.Server, name, email, password string) {
	t.Helper()
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func loginUser(t *testing.T, ts *httptest.Server, email, password string) (string, models.PublicUser) {
	t.Helper()
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token, body.User
}

func seedRooms(t *testing.T, st *store.Store, rooms []models.Room) {
	t.Helper()
	require.NoError(t, st.SaveRooms(context.Background(), rooms))
}
