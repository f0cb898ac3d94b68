package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/aidosq/sozdyq/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"v1.4.0","html_url":"https://example.com/v1.4.0"}`))
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL))

	t.Run("update available", func(t *testing.T) {
		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.3.0"})
		require.NoError(t, err)
		assert.True(t, result.UpdateAvailable)
		assert.Equal(t, "v1.4.0", result.LatestVersion)
		assert.Equal(t, "https://example.com/v1.4.0", result.ReleaseURL)
	})

	t.Run("already latest", func(t *testing.T) {
		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.4.0"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable)
	})

	t.Run("newer local build", func(t *testing.T) {
		result, err := checker.Check(context.Background(), &CheckInput{Version: "v2.0.0"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable)
	})

	t.Run("dev build", func(t *testing.T) {
		result, err := checker.Check(context.Background(), &CheckInput{Version: "(devel)"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable)
	})
}

func TestCheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL))
	_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
