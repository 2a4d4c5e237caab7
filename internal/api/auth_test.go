package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapedtime/wsindex/internal/config"
)

func TestRequireAuth(t *testing.T) {
	s, _ := newTestServer(t)
	s.SetAuth(config.AuthConfig{
		Enabled:      true,
		Username:     "admin",
		PasswordHash: "$apr1$12345678$9pHAGSBYtlmFtid2xxNog0",
	})

	tests := []struct {
		name       string
		username   string
		password   string
		setAuth    bool
		wantStatus int
	}{
		{"no credentials", "", "", false, http.StatusUnauthorized},
		{"wrong password", "admin", "letmein", true, http.StatusUnauthorized},
		{"wrong username", "root", "password", true, http.StatusUnauthorized},
		{"valid", "admin", "password", true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/classify",
				strings.NewReader(`{"file_name":"Show.S01E01.mkv"}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.setAuth {
				req.SetBasicAuth(tt.username, tt.password)
			}

			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusUnauthorized {
				require.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic realm=")
			}
		})
	}
}

func TestStatusSkipsAuth(t *testing.T) {
	s, _ := newTestServer(t)
	s.SetAuth(config.AuthConfig{
		Enabled:      true,
		Username:     "admin",
		PasswordHash: "$1$12345678$o2n/JiO/h5VviOInWJ4OQ/",
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSetAuthDisabled(t *testing.T) {
	s, _ := newTestServer(t)
	s.SetAuth(config.AuthConfig{Enabled: false, Username: "admin"})
	require.Nil(t, s.auth)
}
