package main

// Notes:
// - Shared test infrastructure: an injectable Environment with captured
//   output, a structured log capture and small filesystem helpers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pkt.systems/pslog"

	md2blog "github.com/alnah/go-md2blog"
)

var testNow = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// testEnv bundles an Environment with its captured streams.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	logs   *logCapture
}

// newTestEnv returns an Environment with a fixed clock, captured output, a
// debug-level structured logger and the given process environment.
func newTestEnv(t *testing.T, vars map[string]string) *testEnv {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	logs := &logCapture{}
	logger := pslog.NewWithOptions(logs, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
		MinLevel:      pslog.DebugLevel,
	})

	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return testNow },
			Stdout: stdout,
			Stderr: stderr,
			LookupEnv: func(name string) (string, bool) {
				v, ok := vars[name]
				return v, ok
			},
			Environ: func() []string {
				out := make([]string, 0, len(vars))
				for k, v := range vars {
					out = append(out, k+"="+v)
				}
				return out
			},
			Logger: logger,
		},
		stdout: stdout,
		stderr: stderr,
		logs:   logs,
	}
}

// ---------------------------------------------------------------------------
// Log capture
// ---------------------------------------------------------------------------

type logEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// logCapture collects structured log lines.
type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Entries parses every captured line. Lines that are not JSON are skipped.
func (c *logCapture) Entries() []logEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var entries []logEntry
	for _, line := range bytes.Split(c.buf.Bytes(), []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		payload := map[string]any{}
		if err := json.Unmarshal(line, &payload); err != nil {
			continue
		}
		entry := logEntry{Fields: payload}
		for _, k := range []string{"level", "lvl"} {
			if v, ok := payload[k].(string); ok {
				entry.Level = v
			}
		}
		for _, k := range []string{"message", "msg"} {
			if v, ok := payload[k].(string); ok {
				entry.Message = v
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// find returns the first entry with the given message.
func (c *logCapture) find(msg string) (logEntry, bool) {
	for _, e := range c.Entries() {
		if e.Message == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

// ---------------------------------------------------------------------------
// Filesystem helpers
// ---------------------------------------------------------------------------

// writeTestFile writes content to dir/name, creating parent directories.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// writeTestConfig writes a config file into dir and returns its path.
func writeTestConfig(t *testing.T, dir, content string) string {
	t.Helper()
	return writeTestFile(t, dir, "md2blog.yaml", content)
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

// post returns a post with front matter.
func post(title, date, slug, body string) string {
	s := "---\ntitle: " + title + "\n"
	if date != "" {
		s += "date: " + date + "\n"
	}
	if slug != "" {
		s += "slug: " + slug + "\n"
	}
	return s + "---\n" + body
}

// ---------------------------------------------------------------------------
// Mock converters
// ---------------------------------------------------------------------------

// mockConverter returns a result keyed on the input file name, or err.
type mockConverter struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error
}

func (m *mockConverter) Convert(_ context.Context, in md2blog.Input) (*md2blog.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, in.Filename)
	m.mu.Unlock()

	if err, ok := m.errs[filepath.Base(in.Filename)]; ok {
		return nil, err
	}
	slug := filepath.Base(in.Filename)
	slug = slug[:len(slug)-len(filepath.Ext(slug))]
	return &md2blog.Result{
		Slug:     slug,
		Metadata: md2blog.Metadata{Slug: slug, Title: slug, Date: testNow},
		Body:     in.Source,
		HTML:     []byte("<html>" + in.Source + "</html>"),
	}, nil
}
