package state

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lacroixthomas/spotify-app/internal/shared"
)

// Resource is the subset of slice behavior a poller drives.
type Resource interface {
	Fetch(ctx context.Context, credential string) error
	Reset()
}

// Handle identifies one recurring refresh. It is returned by [Poller.Start]
// and owned by the consumer that started it.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (h *Handle) stop() {
	h.cancel()
	<-h.done
}

// Poller keeps a resource refreshed at a fixed interval while a credential is
// present. A poller holds at most one live handle: starting while one is
// active stops the previous one first.
type Poller struct {
	resource Resource
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	current *Handle
}

// NewPoller creates a poller refreshing resource every interval.
func NewPoller(resource Resource, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Poller{resource: resource, interval: interval, logger: logger}
}

// Start begins the recurring refresh and returns the owned handle, fetching
// once immediately and then on every tick. Any previously active handle is
// stopped first. An empty credential stops polling, resets the resource, and
// returns nil.
func (p *Poller) Start(ctx context.Context, credential string) *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.current.stop()
		p.current = nil
	}

	if credential == "" {
		p.resource.Reset()
		return nil
	}

	pctx, cancel := context.WithCancel(ctx)
	handle := &Handle{cancel: cancel, done: make(chan struct{})}
	p.current = handle

	go p.loop(pctx, credential, handle)
	return handle
}

// Stop cancels the refresh owned by handle and resets the resource. Stopping
// a nil handle, or one already replaced by a newer Start, only cancels it.
func (p *Poller) Stop(handle *Handle) {
	if handle == nil {
		return
	}
	handle.stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == handle {
		p.current = nil
		p.resource.Reset()
	}
}

// Active reports whether a refresh is currently running.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

func (p *Poller) loop(ctx context.Context, credential string, handle *Handle) {
	defer close(handle.done)

	if err := p.resource.Fetch(ctx, credential); err != nil {
		p.logger.Debug("poll fetch failed", "err", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.resource.Fetch(ctx, credential); err != nil {
				p.logger.Debug("poll fetch failed", "err", err)
			}
		}
	}
}
