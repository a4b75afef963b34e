package state

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lacroixthomas/spotify-app/internal/api"
	"github.com/lacroixthomas/spotify-app/internal/shared"
)

// Slice owns the synchronized copy of one remote resource: its last-known
// value, its [Status], and the fetch/command orchestration that updates them.
//
// Each Fetch is tagged with a generation; a resolution applies only while its
// generation is still the latest, so overlapping fetches settle on the
// last-issued response and a resolution arriving after a reset is a no-op.
type Slice[T any] struct {
	name      string
	path      string
	client    *api.Client
	normalize func([]byte) (T, error)
	logger    *log.Logger

	mu     sync.Mutex
	value  T
	status Status
	gen    uint64
}

// NewSlice creates a slice for the resource served at path, using normalize
// to map the raw response body onto the local value.
func NewSlice[T any](name, path string, client *api.Client, normalize func([]byte) (T, error), logger *log.Logger) *Slice[T] {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Slice[T]{
		name:      name,
		path:      path,
		client:    client,
		normalize: normalize,
		status:    StatusIdle,
		logger:    logger.With("slice", name),
	}
}

// Fetch refreshes the slice from the backend.
//
// An empty credential resets the slice without issuing a network call. With a
// credential present the slice transitions to Loading, and the resolution
// moves it to Idle with the value replaced wholesale, or to Failed with the
// previous value untouched.
func (s *Slice[T]) Fetch(ctx context.Context, credential string) error {
	if credential == "" {
		s.Reset()
		return nil
	}

	gen := s.begin()

	resp, err := s.client.Call(ctx, http.MethodGet, s.path, credential, nil)
	if err != nil {
		s.fail(gen, err)
		return err
	}
	if !resp.OK() {
		err := fmt.Errorf("%w: GET %s returned status %d", shared.ErrAPIRequest, s.path, resp.StatusCode)
		s.fail(gen, err)
		return err
	}

	value, err := s.normalize(resp.Body)
	if err != nil {
		s.fail(gen, err)
		return err
	}

	s.fulfill(gen, value)
	return nil
}

// Command issues a side-effecting POST against path. Commands never touch the
// slice status; failures are logged and returned to the caller to surface (or
// ignore) as it sees fit.
func (s *Slice[T]) Command(ctx context.Context, credential, path string, payload any) error {
	if credential == "" {
		return shared.ErrNotAuthenticated
	}
	if payload == nil {
		payload = map[string]string{}
	}

	resp, err := s.client.Call(ctx, http.MethodPost, path, credential, payload)
	if err != nil {
		s.logger.Warn("command failed", "path", path, "err", err)
		return err
	}
	if !resp.OK() {
		err := fmt.Errorf("%w: POST %s returned status %d", shared.ErrAPIRequest, path, resp.StatusCode)
		s.logger.Warn("command rejected", "path", path, "status", resp.StatusCode)
		return err
	}

	return nil
}

// Mutate applies a local mutation to the value without changing status. Used
// for optimistic updates ahead of server confirmation.
func (s *Slice[T]) Mutate(fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.value)
}

// Reset restores the empty value and Idle status, and invalidates any
// in-flight fetch so its resolution is discarded.
func (s *Slice[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var empty T
	s.gen++
	s.value = empty
	s.status = StatusIdle
}

// Snapshot returns the current value and status.
func (s *Slice[T]) Snapshot() (T, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.status
}

// Status returns the current status.
func (s *Slice[T]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Slice[T]) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.status = StatusLoading
	return s.gen
}

func (s *Slice[T]) fulfill(gen uint64, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debug("discarding stale response", "gen", gen, "latest", s.gen)
		return
	}
	s.value = value
	s.status = StatusIdle
}

func (s *Slice[T]) fail(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debug("discarding stale failure", "gen", gen, "latest", s.gen)
		return
	}
	s.status = StatusFailed
	s.logger.Warn("fetch failed", "err", err)
}
