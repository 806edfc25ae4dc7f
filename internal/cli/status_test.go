package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "healthy",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("path = %q, want /health", r.URL.Path)
				}
				_, _ = w.Write([]byte(`{"status":"ok"}`))
			},
			want: "✓",
		},
		{
			name: "store down",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			},
			want: "unhealthy (503)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			t.Setenv("HOME", t.TempDir())
			t.Setenv("RSAPI_SERVER_URL", srv.URL)

			var buf bytes.Buffer
			if err := runStatus(&buf); err != nil {
				t.Fatalf("status: %v", err)
			}
			if !strings.Contains(buf.String(), srv.URL) {
				t.Errorf("expected server URL in output: %q", buf.String())
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestStatusUnreachable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RSAPI_SERVER_URL", "http://127.0.0.1:1")

	var buf bytes.Buffer
	if err := runStatus(&buf); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(buf.String(), "cannot reach server") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestConnectSavesServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()
	t.Setenv("HOME", t.TempDir())

	if _, err := executeCommand("connect", srv.URL+"/"); err != nil {
		t.Fatalf("connect: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != srv.URL {
		t.Errorf("server_url = %q, want %q", cfg.ServerURL, srv.URL)
	}
}

func TestConnectUnreachableDoesNotSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := executeCommand("connect", "http://127.0.0.1:1"); err == nil {
		t.Fatal("expected error")
	}
	cfg, _ := loadConfig()
	if cfg.ServerURL != "" {
		t.Errorf("server_url = %q, want empty", cfg.ServerURL)
	}
}
