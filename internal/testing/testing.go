// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
)

// FakeOpener is a test double for the system URL opener.
//
// URLs with a prefix listed in Fail are rejected; everything else is recorded as opened.
type FakeOpener struct {
	mu        sync.Mutex
	Fail      []string
	Handlers  map[string]bool
	ProbeErr  error
	Opened    []string
	Attempted []string
}

func (f *FakeOpener) Open(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Attempted = append(f.Attempted, url)
	for _, prefix := range f.Fail {
		if strings.HasPrefix(url, prefix) {
			return errors.New("no handler for " + url)
		}
	}
	f.Opened = append(f.Opened, url)
	return nil
}

func (f *FakeOpener) CanOpen(ctx context.Context, url string) (bool, error) {
	if f.ProbeErr != nil {
		return false, f.ProbeErr
	}
	scheme, _, _ := strings.Cut(url, ":")
	return f.Handlers[scheme], nil
}

// OpenedCount returns how many navigations succeeded.
func (f *FakeOpener) OpenedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Opened)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
