package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	cases := []Config{
		{},
		{BaseURL: "https://proj.supabase.co"},
		{APIKey: "anon-key"},
		{BaseURL: "   ", APIKey: "anon-key"},
	}
	for _, cfg := range cases {
		if _, err := NewClient(cfg); !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("NewClient(%+v) error = %v, want ErrNotConfigured", cfg, err)
		}
	}
}

func TestSignInWithEmail(t *testing.T) {
	t.Parallel()

	var got struct {
		path   string
		apiKey string
		body   map[string]any
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.apiKey = r.Header.Get("apikey")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got.body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "anon-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if err := client.SignInWithEmail(context.Background(), "riley@example.com"); err != nil {
		t.Fatalf("SignInWithEmail() error = %v", err)
	}

	if got.path != "/auth/v1/otp" {
		t.Fatalf("path = %q, want /auth/v1/otp", got.path)
	}
	if got.apiKey != "anon-key" {
		t.Fatalf("apikey header = %q", got.apiKey)
	}
	if got.body["email"] != "riley@example.com" {
		t.Fatalf("email = %v", got.body["email"])
	}
	if got.body["create_user"] != true {
		t.Fatalf("create_user = %v, want true", got.body["create_user"])
	}
}

func TestSignInSurfacesAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"msg":"email rate limit exceeded"}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "anon-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	err = client.SignInWithEmail(context.Background(), "riley@example.com")
	if err == nil {
		t.Fatal("SignInWithEmail() error = nil, want failure")
	}
	if want := "email rate limit exceeded"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error = %q, want it to contain %q", err, want)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "anon-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
}

func TestManagerLifecycle(t *testing.T) {
	t.Parallel()

	mgr := NewManager(nil)
	if mgr.Configured() {
		t.Fatal("Configured() = true before Configure")
	}
	if err := mgr.SignIn(context.Background(), "riley@example.com"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("SignIn() error = %v, want ErrNotConfigured", err)
	}
	if err := mgr.Check(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Check() error = %v, want ErrNotConfigured", err)
	}

	// Partial credentials leave the manager unconfigured.
	mgr.Configure("https://proj.supabase.co", "")
	if mgr.Configured() {
		t.Fatal("Configured() = true after partial credentials")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	mgr.Configure(srv.URL, "anon-key")
	if !mgr.Configured() {
		t.Fatal("Configured() = false after full credentials")
	}
	if err := mgr.SignIn(context.Background(), "riley@example.com"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if err := mgr.Check(context.Background()); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
}
