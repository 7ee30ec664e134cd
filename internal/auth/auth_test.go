package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiagofoil/valuerank/internal/auth"
	"github.com/tiagofoil/valuerank/internal/config"
)

func request(t *testing.T, authorization string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/models", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func TestCheckAdmin(t *testing.T) {
	hash, err := auth.HashSecret("hunter2")
	require.NoError(t, err)

	verifier := auth.NewVerifier(&config.AuthConfig{AdminSecretHash: hash})

	tests := []struct {
		name          string
		authorization string
		expected      bool
	}{
		{"correct bearer token", "Bearer hunter2", true},
		{"wrong token", "Bearer hunter3", false},
		{"missing header", "", false},
		{"non-bearer scheme", "Basic hunter2", false},
		{"empty token", "Bearer ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, verifier.CheckAdmin(request(t, tt.authorization)))
		})
	}

	t.Run("closed when no hash configured", func(t *testing.T) {
		open := auth.NewVerifier(&config.AuthConfig{})
		require.False(t, open.CheckAdmin(request(t, "Bearer anything")))
	})
}

func TestCheckCron(t *testing.T) {
	verifier := auth.NewVerifier(&config.AuthConfig{CronSecret: "scrape-me"})

	require.True(t, verifier.CheckCron(request(t, "Bearer scrape-me")))
	require.False(t, verifier.CheckCron(request(t, "Bearer other")))
	require.False(t, verifier.CheckCron(request(t, "")))

	t.Run("closed when no secret configured", func(t *testing.T) {
		open := auth.NewVerifier(&config.AuthConfig{})
		require.False(t, open.CheckCron(request(t, "Bearer ")))
	})
}
