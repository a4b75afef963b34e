package state

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeResource records fetch/reset calls and signals each fetch on a channel.
type fakeResource struct {
	mu      sync.Mutex
	creds   []string
	resets  int
	fetched chan string
}

func newFakeResource() *fakeResource {
	return &fakeResource{fetched: make(chan string, 64)}
}

func (f *fakeResource) Fetch(ctx context.Context, credential string) error {
	f.mu.Lock()
	f.creds = append(f.creds, credential)
	f.mu.Unlock()
	f.fetched <- credential
	return nil
}

func (f *fakeResource) Reset() {
	f.mu.Lock()
	f.resets++
	f.mu.Unlock()
}

func (f *fakeResource) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func awaitFetch(t *testing.T, f *fakeResource) string {
	t.Helper()
	select {
	case credential := <-f.fetched:
		return credential
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a poll fetch")
		return ""
	}
}

func TestPoller(t *testing.T) {
	ctx := context.Background()

	t.Run("Fetches Immediately Then On Interval", func(t *testing.T) {
		resource := newFakeResource()
		poller := NewPoller(resource, 10*time.Millisecond, nil)

		handle := poller.Start(ctx, "tok")
		if handle == nil {
			t.Fatal("expected a handle for a non-empty credential")
		}
		defer poller.Stop(handle)

		for i := 0; i < 3; i++ {
			if credential := awaitFetch(t, resource); credential != "tok" {
				t.Errorf("expected credential 'tok', got %s", credential)
			}
		}
	})

	t.Run("Stop Cancels And Resets", func(t *testing.T) {
		resource := newFakeResource()
		poller := NewPoller(resource, 10*time.Millisecond, nil)

		handle := poller.Start(ctx, "tok")
		awaitFetch(t, resource)

		poller.Stop(handle)
		if poller.Active() {
			t.Error("expected poller to be inactive after stop")
		}
		if resource.resetCount() != 1 {
			t.Errorf("expected one reset, got %d", resource.resetCount())
		}

		// The loop has exited; nothing should arrive after draining.
		for {
			select {
			case <-resource.fetched:
				continue
			default:
			}
			break
		}
		select {
		case <-resource.fetched:
			t.Error("expected no fetches after stop")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("Empty Credential Stops And Resets", func(t *testing.T) {
		resource := newFakeResource()
		poller := NewPoller(resource, 10*time.Millisecond, nil)

		first := poller.Start(ctx, "tok")
		if first == nil {
			t.Fatal("expected a handle")
		}
		awaitFetch(t, resource)

		handle := poller.Start(ctx, "")
		if handle != nil {
			t.Error("expected nil handle for empty credential")
		}
		if poller.Active() {
			t.Error("expected poller to be inactive")
		}
		if resource.resetCount() == 0 {
			t.Error("expected resource reset on credential loss")
		}
	})

	t.Run("Credential Change Replaces The Handle", func(t *testing.T) {
		resource := newFakeResource()
		poller := NewPoller(resource, 10*time.Millisecond, nil)

		old := poller.Start(ctx, "old-tok")
		awaitFetch(t, resource)

		fresh := poller.Start(ctx, "new-tok")
		if fresh == old {
			t.Fatal("expected a new handle")
		}

		// Start waits for the old loop to exit, so every fetch from here on
		// carries the new credential.
		for {
			if awaitFetch(t, resource) == "new-tok" {
				break
			}
		}

		// Stopping the superseded handle must not reset the resource.
		before := resource.resetCount()
		poller.Stop(old)
		if resource.resetCount() != before {
			t.Error("stopping a replaced handle must not reset the resource")
		}
		if !poller.Active() {
			t.Error("expected the new handle to remain active")
		}

		poller.Stop(fresh)
	})

	t.Run("Stop Nil Handle", func(t *testing.T) {
		poller := NewPoller(newFakeResource(), 10*time.Millisecond, nil)
		poller.Stop(nil)
	})
}
