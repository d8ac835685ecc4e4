package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

// clientFor points a Client at a running httptest server.
func clientFor(t *testing.T, srv *httptest.Server, token string) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("failed to parse test server port: %v", err)
	}
	return New(u.Hostname(), port, func() string { return token })
}

func TestClientAttachesTokenHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := clientFor(t, srv, "secret-token")
	var out map[string]interface{}
	if err := c.Get(context.Background(), "/tasks/", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotAuth != "Token secret-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Token secret-token")
	}
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := clientFor(t, srv, "")
	var out map[string]interface{}
	if err := c.Get(context.Background(), "/tasks/", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization header = %q, want empty", gotAuth)
	}
}

func TestClientPrefixesPaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := clientFor(t, srv, "")
	var out map[string]interface{}
	if err := c.Get(context.Background(), "/projects/", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotPath != "/api/projects/" {
		t.Errorf("request path = %q, want %q", gotPath, "/api/projects/")
	}
}

func TestClient401MapsToErrUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := clientFor(t, srv, "stale")
	err := c.Get(context.Background(), "/tasks/", &struct{}{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Get() error = %v, want ErrUnauthorized", err)
	}
}

func TestClientStatusErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "client has assigned projects"}`))
	}))
	defer srv.Close()

	c := clientFor(t, srv, "tok")
	err := c.Delete(context.Background(), "/clients/3/")
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("Delete() error = %v, want *StatusError", err)
	}
	if serr.Code != http.StatusBadRequest {
		t.Errorf("StatusError.Code = %d, want %d", serr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(serr.Error(), "client has assigned projects") {
		t.Errorf("StatusError.Error() = %q, want backend message included", serr.Error())
	}
}

func TestClientPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := clientFor(t, srv, "tok")
	body := map[string]string{"email": "a@b.c"}
	if err := c.Post(context.Background(), "/reset-password/", body, nil); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if !strings.Contains(gotBody, `"email":"a@b.c"`) {
		t.Errorf("request body = %q, want JSON-encoded email field", gotBody)
	}
}
