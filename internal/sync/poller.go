package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/alert"
	"github.com/nhle/web3hub/internal/metrics"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/notify"
)

// Feed produces the notification for one poller tick.
type Feed interface {
	Next(ctx context.Context) (model.Notification, error)
}

// FeedFunc adapts a function to the Feed interface.
type FeedFunc func(ctx context.Context) (model.Notification, error)

// Next calls f.
func (f FeedFunc) Next(ctx context.Context) (model.Notification, error) { return f(ctx) }

// TemplateFeed synthesizes the same governance notification on every tick.
type TemplateFeed struct{}

// Next returns the governance proposal template.
func (TemplateFeed) Next(context.Context) (model.Notification, error) {
	return model.Notification{
		Type:        model.CategoryGovernance,
		Title:       "New Governance Proposal",
		Description: "Vote on the latest protocol upgrade proposal",
		Priority:    model.PriorityHigh,
		ActionURL:   "https://example.com/proposal",
	}, nil
}

// PrefsReader returns the current notification preferences.
type PrefsReader interface {
	Read(ctx context.Context) model.Preferences
}

// TickResultMsg is a tea.Msg sent when a tick completes.
type TickResultMsg struct {
	Notification model.Notification
	Alerted      bool
	Error        error

	// Standby is set when another process held the lease and this tick
	// produced nothing.
	Standby bool
}

// tickTimeout is the maximum time allowed for a single tick.
const tickTimeout = 30 * time.Second

// DefaultInterval is used when no interval is configured.
const DefaultInterval = 5 * time.Minute

// Config holds the Poller dependencies. Repo is required.
type Config struct {
	Repo     *notify.Repository
	Feed     Feed
	Prefs    PrefsReader
	Alerter  alert.Alerter
	Opener   alert.Opener
	Logger   *zap.Logger
	Interval time.Duration

	// Lease, when set, limits scheduled ticks to one process among those
	// sharing the store.
	Lease *Lease
}

// Poller synthesizes a notification on a fixed interval, appends it to
// the repository and raises a system alert for it.
type Poller struct {
	repo     *notify.Repository
	feed     Feed
	prefs    PrefsReader
	alerter  alert.Alerter
	opener   alert.Opener
	logger   *zap.Logger
	interval time.Duration
	lease    *Lease

	resultCh chan TickResultMsg

	mu     gosync.Mutex
	stopCh chan struct{}
	wg     gosync.WaitGroup
}

// New creates a stopped Poller.
func New(cfg Config) *Poller {
	p := &Poller{
		repo:     cfg.Repo,
		feed:     cfg.Feed,
		prefs:    cfg.Prefs,
		alerter:  cfg.Alerter,
		opener:   cfg.Opener,
		logger:   cfg.Logger,
		interval: cfg.Interval,
		lease:    cfg.Lease,
		resultCh: make(chan TickResultMsg, 16),
	}
	if p.feed == nil {
		p.feed = TemplateFeed{}
	}
	if p.alerter == nil {
		p.alerter = alert.Discard
	}
	if p.opener == nil {
		p.opener = alert.BrowserOpener{}
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.interval <= 0 {
		p.interval = DefaultInterval
	}
	return p
}

// Start schedules a tick every interval, the first one interval from now.
// Calling Start while running replaces the existing schedule, so at most
// one timer is ever active. The returned command delivers the next
// TickResultMsg to the Bubble Tea runtime.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	stopCh := make(chan struct{})
	p.stopCh = stopCh
	p.wg.Add(1)
	go p.run(stopCh)

	p.logger.Info("poller started", zap.Duration("interval", p.interval))
	return p.waitForResult()
}

// Stop cancels the schedule, waits for an in-flight tick to finish and
// hands the lease to any other process.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	if p.lease != nil {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()
		if err := p.lease.Release(ctx); err != nil {
			p.logger.Warn("releasing poller lease failed", zap.Error(err))
		}
	}
}

// Running reports whether a schedule is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopCh != nil
}

func (p *Poller) stopLocked() {
	if p.stopCh == nil {
		return
	}
	close(p.stopCh)
	p.stopCh = nil
	p.wg.Wait()
}

func (p *Poller) run(stopCh <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
			p.sendResult(p.scheduledTick(ctx))
			cancel()
		}
	}
}

// scheduledTick runs Tick unless another process holds the lease.
func (p *Poller) scheduledTick(ctx context.Context) TickResultMsg {
	if p.lease != nil {
		held, err := p.lease.Acquire(ctx)
		if err != nil {
			p.logger.Warn("poller lease unavailable, ticking anyway", zap.Error(err))
		}
		if !held {
			metrics.IncrementPollerTick("standby")
			p.logger.Debug("another process holds the poller lease")
			return TickResultMsg{Standby: true}
		}
	}
	return p.Tick(ctx)
}

// Tick produces one notification, appends it and requests an alert for
// it. The alert is skipped when the user switched the notification's
// category off, and when the record could not be persisted.
func (p *Poller) Tick(ctx context.Context) TickResultMsg {
	partial, err := p.feed.Next(ctx)
	if err != nil {
		metrics.IncrementPollerTick("error")
		p.logger.Error("producing notification failed", zap.Error(err))
		return TickResultMsg{Error: fmt.Errorf("producing notification: %w", err)}
	}

	n, appendErr := p.repo.Append(ctx, partial)
	result := TickResultMsg{Notification: n, Error: appendErr}
	if appendErr != nil {
		metrics.IncrementPollerTick("error")
		metrics.IncrementAlert("skipped")
		p.logger.Warn("alert skipped, notification not persisted",
			zap.String("id", n.ID),
			zap.Error(appendErr),
		)
		return result
	}
	metrics.IncrementPollerTick("ok")

	if p.prefs != nil && !p.prefs.Read(ctx).Enabled(n.Type) {
		metrics.IncrementAlert("suppressed")
		p.logger.Debug("alert suppressed by preferences",
			zap.String("id", n.ID),
			zap.String("type", string(n.Type)),
		)
		return result
	}

	a := alert.Alert{
		ID:       n.ID,
		Title:    n.Title,
		Message:  n.Description,
		Priority: alert.PriorityHigh,
	}
	if err := p.alerter.Show(ctx, a); err != nil {
		metrics.IncrementAlert("failed")
		p.logger.Warn("showing alert failed", zap.String("id", n.ID), zap.Error(err))
		return result
	}
	metrics.IncrementAlert("shown")
	result.Alerted = true
	return result
}

// HandleAlertClick opens the action URL of the notification the alert
// was raised for. Unknown ids and notifications without a URL are
// ignored.
func (p *Poller) HandleAlertClick(ctx context.Context, id string) error {
	if err := p.repo.Reload(ctx); err != nil {
		p.logger.Warn("reloading notifications for alert click failed", zap.Error(err))
	}

	n, ok := p.repo.Get(id)
	if !ok || n.ActionURL == "" {
		p.logger.Debug("alert click ignored", zap.String("id", id), zap.Bool("found", ok))
		return nil
	}

	if err := p.opener.Open(n.ActionURL); err != nil {
		return fmt.Errorf("opening %s: %w", n.ActionURL, err)
	}
	return nil
}

// sendResult sends a TickResultMsg on the result channel without blocking.
func (p *Poller) sendResult(msg TickResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next tick result.
// Call it after processing a TickResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}

// Results exposes tick results to callers that do not run a Bubble Tea
// program.
func (p *Poller) Results() <-chan TickResultMsg {
	return p.resultCh
}
