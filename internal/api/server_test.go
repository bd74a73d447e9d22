package api

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hybrid/internal/errors"
	"hybrid/internal/protocol"
	"hybrid/internal/slogutil"
	"hybrid/internal/store"

	"github.com/spf13/afero"
)

// recordingDispatcher answers every request with a fixed body and keeps the URLs it saw
type recordingDispatcher struct {
	urls []string
	body string
	err  error
}

func (d *recordingDispatcher) Handle(ctx context.Context, req protocol.Request) (*protocol.Response, error) {
	d.urls = append(d.urls, req.URL)
	if d.err != nil {
		return nil, d.err
	}
	return &protocol.Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			protocol.HeaderAllowCSPFrom: "hybrid://welcome",
			protocol.HeaderContentType:  "text/html",
		},
		Body: protocol.BytesBody(d.body),
	}, nil
}

func newTestServer(d Dispatcher, compress bool) *Server {
	return NewServer("127.0.0.1:0", d, slogutil.NewDiscardLogger(), ServerConfig{Scheme: "hybrid", Compress: compress})
}

func TestVirtualURL(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "hybrid://welcome/"},
		{"/docs/", "hybrid://docs/"},
		{"/docs/guide/intro", "hybrid://docs/guide/intro"},
		{"/about", "hybrid://about"},
		{"/docs/a%20b.html", "hybrid://docs/a%20b.html"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if got := VirtualURL("hybrid", req); got != tt.want {
				t.Errorf("VirtualURL(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestServer_ForwardsResponse(t *testing.T) {
	d := &recordingDispatcher{body: "<p>hi</p>"}
	s := newTestServer(d, false)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/docs/page", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(d.urls) != 1 || d.urls[0] != "hybrid://docs/page" {
		t.Errorf("dispatched URLs = %v", d.urls)
	}
	// Header name must be kept exactly, not canonicalized
	if got := rec.Header()["Allow-CSP-From"]; len(got) != 1 || got[0] != "hybrid://welcome" {
		t.Errorf("Allow-CSP-From = %v (headers %v)", got, rec.Header())
	}
	if rec.Body.String() != "<p>hi</p>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServer_HeadersExactWithoutCompression(t *testing.T) {
	d := &recordingDispatcher{body: strings.Repeat("<p>compressible</p>", 200)}
	s := newTestServer(d, false)

	req := httptest.NewRequest("GET", "/docs/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	want := map[string]string{
		"Allow-CSP-From": "hybrid://welcome",
		"Content-Type":   "text/html",
	}
	if len(rec.Header()) != len(want) {
		t.Errorf("headers = %v, want exactly %v", rec.Header(), want)
	}
	for name, value := range want {
		if got := rec.Header()[name]; len(got) != 1 || got[0] != value {
			t.Errorf("%s = %v, want %q", name, got, value)
		}
	}
}

func TestServer_DispatchError(t *testing.T) {
	d := &recordingDispatcher{err: errors.New(errors.InvalidURL, "bad")}
	s := newTestServer(d, false)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServer_Health(t *testing.T) {
	d := &recordingDispatcher{}
	s := newTestServer(d, false)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/_health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if len(d.urls) != 0 {
		t.Errorf("health check reached dispatcher: %v", d.urls)
	}
}

func TestServer_Gzip(t *testing.T) {
	d := &recordingDispatcher{body: strings.Repeat("<p>compressible</p>", 200)}
	s := newTestServer(d, true)

	req := httptest.NewRequest("GET", "/docs/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
	// Only the transport encoding headers are added
	if got := rec.Header()["Allow-CSP-From"]; len(got) != 1 || got[0] != "hybrid://welcome" {
		t.Errorf("Allow-CSP-From = %v", got)
	}
	for name := range rec.Header() {
		switch name {
		case "Allow-CSP-From", "Content-Type", "Content-Encoding", "Content-Length", "Vary":
		default:
			t.Errorf("unexpected header %s added by compression", name)
		}
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != d.body {
		t.Error("decompressed body does not match")
	}
}

func TestServer_EndToEnd(t *testing.T) {
	mem := afero.NewMemMapFs()
	_ = afero.WriteFile(mem, "404.html", []byte("missing"), 0644)
	_ = afero.WriteFile(mem, "welcome/index.html", []byte("hello"), 0644)
	_ = afero.WriteFile(mem, "docs/guide.html", []byte("guide"), 0644)

	d, err := protocol.New(store.NewFS(mem), protocol.Options{
		CSPOrigin:    "hybrid://welcome",
		NotFoundPage: "404.html",
		Version:      "0.0.1",
	}, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(d, false)

	tests := []struct {
		path   string
		status int
		body   string
		ctype  string
	}{
		{"/", 200, "hello", "text/html"},
		{"/docs/guide", 200, "guide", "text/html"},
		{"/docs/nope", 404, "missing", "text/html"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
			if got := rec.Header()["Content-Type"]; len(got) != 1 || got[0] != tt.ctype {
				t.Errorf("Content-Type = %v, want %s", got, tt.ctype)
			}
		})
	}
}
