// Package testsupport holds helpers shared by the package tests: fixture
// loading and an HTTP server that replays fixtures in place of the upstream
// codelist APIs.
package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t testing.TB, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// Route is a canned response served by FixtureServer.
type Route struct {
	Status int
	Body   []byte
}

// FixtureServer serves canned responses by request path and records every
// request it receives.
type FixtureServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Route
	requests []*url.URL
}

// NewFixtureServer starts a server that is closed when the test ends.
// Requests for unknown paths receive 404.
func NewFixtureServer(t testing.TB) *FixtureServer {
	t.Helper()

	fs := &FixtureServer{routes: make(map[string]Route)}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

// Handle registers a 200 response with body for path.
func (fs *FixtureServer) Handle(path string, body []byte) *FixtureServer {
	return fs.HandleStatus(path, http.StatusOK, body)
}

// HandleFixture registers a 200 response with the contents of testdata/filename.
func (fs *FixtureServer) HandleFixture(t testing.TB, path, filename string) *FixtureServer {
	t.Helper()
	return fs.Handle(path, LoadFixture(t, FixturePath(filename)))
}

// HandleStatus registers a response with an explicit status for path.
func (fs *FixtureServer) HandleStatus(path string, status int, body []byte) *FixtureServer {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.routes[path] = Route{Status: status, Body: body}
	return fs
}

// Requests returns a copy of the recorded request URLs.
func (fs *FixtureServer) Requests() []*url.URL {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]*url.URL(nil), fs.requests...)
}

// RequestCount returns how many requests reached the server.
func (fs *FixtureServer) RequestCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

// LastRequest returns the most recent request URL, or nil.
func (fs *FixtureServer) LastRequest() *url.URL {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.requests) == 0 {
		return nil
	}
	return fs.requests[len(fs.requests)-1]
}

// BaseURL returns the server URL with a trailing slash.
func (fs *FixtureServer) BaseURL() string {
	return fs.URL + "/"
}

func (fs *FixtureServer) serve(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	u := *r.URL
	fs.requests = append(fs.requests, &u)
	route, ok := fs.routes[r.URL.Path]
	fs.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(route.Status)
	w.Write(route.Body)
}
