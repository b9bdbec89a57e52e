package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestRouter_PublicPages(t *testing.T) {
	srv := newTestServer(t)
	c := srv.newClient(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "Get started"},
		{"/about", "About"},
		{"/login", `action="/login"`},
		{"/register", `action="/register"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := c.get(tt.path)
			if res.status != http.StatusOK || !strings.Contains(res.body, tt.want) {
				t.Errorf("GET %s: status %d, want 200 containing %q", tt.path, res.status, tt.want)
			}
			if res.header.Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID")
			}
		})
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)
	res := srv.newClient(t).get("/health")
	body := res.json(t)
	if res.status != http.StatusOK || body["status"] != "healthy" || body["service"] != "mentor-qa-service" {
		t.Errorf("status %d body %v", res.status, body)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	c := srv.newClient(t)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		res := c.do(method, "/student", "", nil)
		if res.status != http.StatusMethodNotAllowed || res.json(t)["error"] != "Invalid request method" {
			t.Errorf("%s /student: status %d body %s", method, res.status, res.body)
		}
	}
}

func TestRouter_TrailingSlashRedirects(t *testing.T) {
	srv := newTestServer(t)
	res := srv.newClient(t).get("/about/")
	if res.status != http.StatusMovedPermanently || res.location != "/about" {
		t.Errorf("status %d location %q", res.status, res.location)
	}
}
