package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBackgroundInterval is the count-only cadence while the
	// notification UI is closed, matching the bell badge refresh.
	DefaultBackgroundInterval = 5 * time.Second
	// DefaultForegroundInterval is the full-list cadence while the
	// notification UI is open.
	DefaultForegroundInterval = 5 * time.Second
)

// Poller drives periodic store refreshes. While the notification UI is
// closed it runs a light count-only poll; while open it polls the full list.
// Opening triggers an immediate full fetch instead of waiting for the next
// tick. Ticks never overlap: one lands while a fetch is still in flight, it
// is skipped.
type Poller struct {
	store      *Store
	background time.Duration
	foreground time.Duration

	// OnError sees every failed poll fetch. Defaults to logging; failures
	// are never retried within a tick.
	OnError func(error)

	mu       sync.Mutex
	open     bool
	running  bool
	fetching bool
	userID   uuid.UUID
	cancel   context.CancelFunc

	triggerCh chan struct{}
	cadenceCh chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func NewPoller(store *Store, background, foreground time.Duration) *Poller {
	if background <= 0 {
		background = DefaultBackgroundInterval
	}
	if foreground <= 0 {
		foreground = DefaultForegroundInterval
	}
	return &Poller{
		store:      store,
		background: background,
		foreground: foreground,
		OnError:    func(err error) { log.Printf("notification poll: %v", err) },
		triggerCh:  make(chan struct{}, 1),
		cadenceCh:  make(chan struct{}, 1),
		stopCh:     make(chan struct{}),
	}
}

// Start begins polling for userID with an immediate count fetch. The polling
// goroutine lives until Stop or until ctx is cancelled; both also cancel any
// fetch still in flight.
func (p *Poller) Start(ctx context.Context, userID uuid.UUID) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.userID = userID
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.store.SetUser(userID)
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	// Initial badge state, before the first tick.
	p.fetch(ctx)

	for {
		timer := time.NewTimer(p.interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-p.stopCh:
			timer.Stop()
			return
		case <-p.cadenceCh:
			// Cadence changed; restart the timer without fetching.
			timer.Stop()
		case <-p.triggerCh:
			timer.Stop()
			p.fetch(ctx)
		case <-timer.C:
			p.fetch(ctx)
		}
	}
}

func (p *Poller) interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return p.foreground
	}
	return p.background
}

// fetch runs one poll: full list while the UI is open, count only otherwise.
func (p *Poller) fetch(ctx context.Context) {
	p.mu.Lock()
	if p.fetching {
		p.mu.Unlock()
		return
	}
	p.fetching = true
	open := p.open
	userID := p.userID
	p.mu.Unlock()

	var err error
	if open {
		err = p.store.Refresh(ctx, userID)
	} else {
		err = p.store.RefreshCount(ctx, userID)
	}

	p.mu.Lock()
	p.fetching = false
	p.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		p.OnError(err)
	}
}

// Open switches to the foreground cadence and triggers an immediate full
// fetch.
func (p *Poller) Open() {
	p.mu.Lock()
	p.open = true
	p.mu.Unlock()

	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Close cancels the foreground cadence and resumes background count polling.
func (p *Poller) Close() {
	p.mu.Lock()
	p.open = false
	p.mu.Unlock()

	select {
	case p.cadenceCh <- struct{}{}:
	default:
	}
}

// SwitchUser repoints the poller (and the store) at a new user. In-flight
// fetches for the previous user are discarded by the store's sequence and
// user guards.
func (p *Poller) SwitchUser(userID uuid.UUID) {
	p.mu.Lock()
	p.userID = userID
	p.mu.Unlock()

	p.store.SetUser(userID)

	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Stop tears the poller down: the goroutine exits and any in-flight fetch is
// cancelled. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.running = false
	p.mu.Unlock()
}
