package titlegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func completionReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestGenerateTitle(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		require.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionReply(`"Title: Kubernetes deployment checklist for teams"`)))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, "test-key", "test-model")

	title, err := c.GenerateTitle(context.Background(), "write a k8s deployment checklist")
	require.NoError(t, err)
	require.Equal(t, "Kubernetes deployment checklist for teams", title)
}

func TestGenerateTitle_EmptyResult(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"blank content", completionReply("   ")},
		{"lead-in only", completionReply("Title:")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer upstream.Close()

			c := NewClient(upstream.URL, "", "test-model")
			_, err := c.GenerateTitle(context.Background(), "anything")
			require.ErrorIs(t, err, ErrEmptyResult)
		})
	}
}

func TestGenerateTitle_UpstreamErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer upstream.Close()

		c := NewClient(upstream.URL, "", "test-model")
		_, err := c.GenerateTitle(context.Background(), "anything")
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		upstream := httptest.NewServer(nil)
		upstream.Close() // nothing listening any more

		c := NewClient(upstream.URL, "", "test-model")
		_, err := c.GenerateTitle(context.Background(), "anything")
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		blocked := make(chan struct{})
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-blocked
		}))
		defer upstream.Close()
		defer close(blocked)

		c := NewClient(upstream.URL, "", "test-model")
		c.HTTPClient.Timeout = 50 * time.Millisecond

		start := time.Now()
		_, err := c.GenerateTitle(context.Background(), "anything")
		require.ErrorIs(t, err, ErrUnavailable)
		require.Less(t, time.Since(start), 5*time.Second, "call must not block past its timeout")
	})

	t.Run("malformed body", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer upstream.Close()

		c := NewClient(upstream.URL, "", "test-model")
		_, err := c.GenerateTitle(context.Background(), "anything")
		require.ErrorIs(t, err, ErrUnavailable)
	})
}
