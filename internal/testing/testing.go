// package testing contains shared testing utilities
package testing

import (
	"errors"
	"net/http"
	"sync/atomic"
)

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

// CountingRoundTripper counts the requests that pass through it before
// delegating to the wrapped transport. Used to assert that no network call
// was issued.
type CountingRoundTripper struct {
	next  http.RoundTripper
	count atomic.Int64
}

func NewCountingRoundTripper(next http.RoundTripper) *CountingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &CountingRoundTripper{next: next}
}

func (c *CountingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c.count.Add(1)
	return c.next.RoundTrip(req)
}

// Count returns the number of requests seen so far.
func (c *CountingRoundTripper) Count() int {
	return int(c.count.Load())
}

// FWriter simulates a failure when writing output
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// FCloser simulates a failure when reading a response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}
