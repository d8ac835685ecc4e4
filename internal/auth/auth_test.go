package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/timelex/timelex-cli/internal/api"
	"github.com/timelex/timelex-cli/internal/models"
)

func serviceFor(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	keyring.MockInit()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	port, _ := strconv.Atoi(u.Port())
	svc := &Service{}
	svc.api = api.New(u.Hostname(), port, svc.Token)
	return svc, srv
}

func TestLoginStoresTokenAndBuildsSession(t *testing.T) {
	svc, _ := serviceFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login/" {
			t.Errorf("login path = %q, want /api/login/", r.URL.Path)
		}
		w.Write([]byte(`{"token": "abc123", "role": "admin", "user_id": 1, "username": "Admin"}`))
	}))

	session, err := svc.Login(context.Background(), "admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Role != models.RoleAdmin {
		t.Errorf("session.Role = %q, want admin", session.Role)
	}
	if session.ClientID != "" {
		t.Errorf("session.ClientID = %q, want empty for admin", session.ClientID)
	}
	if !svc.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after login")
	}
	tok, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if tok != "abc123" {
		t.Errorf("persisted token = %q, want abc123", tok)
	}
}

func TestLoginClientRoleCarriesClientID(t *testing.T) {
	svc, _ := serviceFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "t", "role": "client", "user_id": 7, "username": "TechCorp", "client_id": 42}`))
	}))

	session, err := svc.Login(context.Background(), "tc@example.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Role != models.RoleClient {
		t.Errorf("session.Role = %q, want client", session.Role)
	}
	if session.ClientID != "42" {
		t.Errorf("session.ClientID = %q, want 42", session.ClientID)
	}
}

func TestLoginFailureLeavesNoToken(t *testing.T) {
	svc, _ := serviceFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid credentials"}`))
	}))

	if _, err := svc.Login(context.Background(), "x@y.z", "nope"); err == nil {
		t.Fatal("Login() error = nil, want error")
	}
	if svc.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after failed login")
	}
}

func TestLogoutClearsPersistedToken(t *testing.T) {
	svc, _ := serviceFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "abc", "role": "admin", "user_id": 1, "username": "Admin"}`))
	}))

	if _, err := svc.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	svc.Logout()
	if svc.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after logout")
	}
	if _, err := LoadToken(); err != ErrNoToken {
		t.Errorf("LoadToken() error = %v, want ErrNoToken", err)
	}
}

func TestRestoreSessionAssumesAdmin(t *testing.T) {
	keyring.MockInit()
	if err := StoreToken("persisted"); err != nil {
		t.Fatalf("StoreToken() error = %v", err)
	}
	svc := NewService(nil)
	session, ok := svc.RestoreSession()
	if !ok {
		t.Fatal("RestoreSession() ok = false, want true")
	}
	if session.Role != models.RoleAdmin {
		t.Errorf("restored session role = %q, want admin", session.Role)
	}
}

func TestChangePasswordSendsSnakeCaseFields(t *testing.T) {
	var gotBody map[string]string
	svc, _ := serviceFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = map[string]string{}
		if err := json.Unmarshal(buf, &gotBody); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.Write([]byte(`{}`))
	}))

	if err := svc.ChangePassword(context.Background(), "old", "new"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if gotBody["old_password"] != "old" || gotBody["new_password"] != "new" {
		t.Errorf("body = %v, want old_password/new_password fields", gotBody)
	}
}
