package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lacroixthomas/spotify-app/internal/shared"
	tu "github.com/lacroixthomas/spotify-app/internal/testing"
)

func TestClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Defaults", func(t *testing.T) {
			c := NewClient("", nil, 0, nil)
			if c.baseURL != "http://127.0.0.1:8080" {
				t.Errorf("expected default base URL, got %s", c.baseURL)
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("With Custom BaseURL", func(t *testing.T) {
			c := NewClient("http://example.com", &http.Client{}, 10, nil)
			if c.baseURL != "http://example.com" {
				t.Errorf("expected custom base URL, got %s", c.baseURL)
			}
		})
	})

	t.Run("Call", func(t *testing.T) {
		t.Run("GET Attaches Bearer Header", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET, got %s", r.Method)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
					t.Errorf("expected 'Bearer tok-1', got %s", got)
				}
				json.NewEncoder(w).Encode(map[string]string{"id": "u1"})
			}))
			defer server.Close()

			c := NewClient(server.URL, nil, 100, nil)
			resp, err := c.Call(context.Background(), http.MethodGet, PathUser, "tok-1", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() {
				t.Errorf("expected 2xx, got %d", resp.StatusCode)
			}
		})

		t.Run("POST Sends JSON Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected JSON content type, got %s", ct)
				}

				var body map[string]string
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode body: %v", err)
				}
				if body["uri"] != "spotify:playlist:p1" {
					t.Errorf("unexpected body: %v", body)
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			c := NewClient(server.URL, nil, 100, nil)
			resp, err := c.Call(context.Background(), http.MethodPost, PathPlayerPlay, "tok", map[string]string{"uri": "spotify:playlist:p1"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() {
				t.Errorf("expected 2xx, got %d", resp.StatusCode)
			}
		})

		t.Run("Non-2xx JSON Response Is Not An Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "expired token"})
			}))
			defer server.Close()

			c := NewClient(server.URL, nil, 100, nil)
			resp, err := c.Call(context.Background(), http.MethodGet, PathPlayer, "stale", nil)
			if err != nil {
				t.Fatalf("classification belongs to the caller; got error %v", err)
			}
			if resp.OK() {
				t.Error("expected non-2xx response")
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", resp.StatusCode)
			}
		})

		t.Run("Empty Body Is Tolerated", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			c := NewClient(server.URL, nil, 100, nil)
			resp, err := c.Call(context.Background(), http.MethodPost, PathPlayerPause, "tok", map[string]string{})
			if err != nil {
				t.Fatalf("expected no error for empty body, got %v", err)
			}
			if !resp.OK() {
				t.Errorf("expected 2xx, got %d", resp.StatusCode)
			}
		})

		t.Run("Transport Failure Is A Network Error", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
			}

			c := NewClient("http://example.com", client, 100, nil)
			_, err := c.Call(context.Background(), http.MethodGet, PathUser, "tok", nil)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Unparseable Body Is A Network Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			}))
			defer server.Close()

			c := NewClient(server.URL, nil, 100, nil)
			_, err := c.Call(context.Background(), http.MethodGet, PathUser, "tok", nil)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Body Read Failure Is A Network Error", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			c := NewClient("http://example.com", client, 100, nil)
			_, err := c.Call(context.Background(), http.MethodGet, PathUser, "tok", nil)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Cancelled Context", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			c := NewClient("http://example.com", nil, 100, nil)
			if _, err := c.Call(ctx, http.MethodGet, PathUser, "tok", nil); err == nil {
				t.Error("expected error for cancelled context")
			}
		})
	})
}
