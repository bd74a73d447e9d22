package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hybrid/internal/protocol"
)

func newTestApp(t *testing.T, dir string) *app {
	t.Helper()
	a, err := newApp(dir, io.Discard)
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func fetch(t *testing.T, a *app, url string) string {
	t.Helper()
	resp, err := a.dispatcher.Handle(context.Background(), protocol.Request{URL: url})
	if err != nil {
		t.Fatalf("Handle(%q) failed: %v", url, err)
	}
	var buf bytes.Buffer
	if err := writeResponse(&buf, resp, false); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := initConfig(dir, false)
	if err != nil {
		t.Fatalf("initConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := initConfig(dir, false); err == nil {
		t.Error("expected error when config exists without --force")
	}
	if _, err := initConfig(dir, true); err != nil {
		t.Errorf("initConfig with force failed: %v", err)
	}

	// The written file must load back cleanly
	a := newTestApp(t, dir)
	if a.cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", a.cfg.Server.Port)
	}
}

func TestBuiltinPages(t *testing.T) {
	a := newTestApp(t, t.TempDir())

	out := fetch(t, a, "hybrid://welcome/")
	if !strings.HasPrefix(out, "200\n") {
		t.Errorf("welcome page status line: %q", out)
	}
	if !strings.Contains(out, "Allow-CSP-From: hybrid://welcome\n") {
		t.Errorf("missing CSP header: %q", out)
	}

	out = fetch(t, a, "hybrid://nowhere/at/all")
	if !strings.HasPrefix(out, "404\n") {
		t.Errorf("missing page status line: %q", out)
	}
}

func TestWriteResponse_HeadOnly(t *testing.T) {
	a := newTestApp(t, t.TempDir())

	resp, err := a.dispatcher.Handle(context.Background(), protocol.Request{URL: "hybrid://theme/vars.css"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeResponse(&buf, resp, true); err != nil {
		t.Fatal(err)
	}

	want := "200\n" +
		"Access-Control-Allow-Origin: *\n" +
		"Allow-CSP-From: *\n" +
		"Cache-Control: no-cache\n" +
		"Content-Type: text/css\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestContentRootAndManifest(t *testing.T) {
	dir := t.TempDir()
	content := filepath.Join(dir, "site")
	mustWrite(t, filepath.Join(content, "404.html"), "gone")
	mustWrite(t, filepath.Join(content, "docs", "index.html"), "docs home")
	mustWrite(t, filepath.Join(dir, "package.json"), `{"version":"2.1.0","dependencies":{"log-fetch":"^1.0.0"}}`)
	mustWrite(t, filepath.Join(dir, ".hybrid", "config.toml"), `
version = 1
[content]
root = "site"
[about]
manifest = "package.json"
packages = ["log-fetch", "onion-fetch"]
`)

	a := newTestApp(t, dir)

	if out := fetch(t, a, "hybrid://docs/"); !strings.HasSuffix(out, "\n\ndocs home") {
		t.Errorf("docs output = %q", out)
	}

	resp, err := a.dispatcher.Handle(context.Background(), protocol.Request{URL: "hybrid://about/"})
	if err != nil {
		t.Fatal(err)
	}
	var body bytes.Buffer
	if _, err := resp.WriteTo(&body); err != nil {
		t.Fatal(err)
	}
	var about struct {
		Version      string             `json:"version"`
		Dependencies map[string]*string `json:"dependencies"`
	}
	if err := json.Unmarshal(body.Bytes(), &about); err != nil {
		t.Fatalf("about is not JSON: %v", err)
	}
	if about.Version != "2.1.0" {
		t.Errorf("version = %q", about.Version)
	}
	if v := about.Dependencies["log-fetch"]; v == nil || *v != "^1.0.0" {
		t.Errorf("log-fetch = %v", v)
	}
	if v, ok := about.Dependencies["onion-fetch"]; !ok || v != nil {
		t.Errorf("onion-fetch should be present and null, got %v (present=%v)", v, ok)
	}
}

func TestPrintResolution(t *testing.T) {
	a := newTestApp(t, t.TempDir())

	var buf bytes.Buffer
	if err := printResolution(&buf, a.dispatcher, "welcome/"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "append-index welcome/index.html\n" {
		t.Errorf("output = %q", got)
	}

	buf.Reset()
	if err := printResolution(&buf, a.dispatcher, "welcome"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "separator-index welcome/index.html\n" {
		t.Errorf("output = %q", got)
	}

	if err := printResolution(&buf, a.dispatcher, "welcome/missing"); err == nil {
		t.Error("expected not-found error")
	}
}

func TestMissingContentRoot(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, ".hybrid", "config.toml"), "[content]\nroot = \"nope\"\n")

	if _, err := newApp(dir, io.Discard); err == nil {
		t.Error("expected error for missing content root")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
