package insights

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/runnerr0/browseiq/internal/logging"
)

const (
	NoInsightsMessage = "No insights available for this date."
	FailedMessage     = "Failed to fetch insights."
)

// Phase is the panel's display state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the panel. Token identifies the selection that
// produced it.
type State struct {
	Phase Phase
	Date  time.Time
	Text  string
	Token uint64
}

// Panel holds the insights for the most recently selected date. Only the
// response to the latest selection is ever applied; starting a new
// selection cancels the one in flight.
type Panel struct {
	querier Querier
	logger  *zap.Logger

	mu        sync.Mutex
	token     uint64
	cancel    context.CancelFunc
	state     State
	observers []func(State)

	// notifyMu serializes observer calls so they see states in order.
	notifyMu sync.Mutex
}

// NewPanel creates an idle panel backed by q.
func NewPanel(q Querier, logger *zap.Logger) *Panel {
	return &Panel{querier: q, logger: logging.OrNop(logger)}
}

// State returns the current panel state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// OnChange registers fn to be called after every applied state change.
// Observers are called one at a time and must not call Select.
func (p *Panel) OnChange(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// Select starts a query for date and blocks until it resolves. It returns
// the panel state afterwards, which belongs to a newer selection if this
// one was superseded.
func (p *Panel) Select(ctx context.Context, date time.Time) State {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.token++
	token := p.token
	p.cancel = cancel
	loading := State{Phase: PhaseLoading, Date: date, Token: token}
	p.state = loading
	p.mu.Unlock()
	p.publish(loading)

	text, err := p.querier.QueryByDate(ctx, date)

	next := State{Phase: PhaseReady, Date: date, Text: text, Token: token}
	switch {
	case err != nil:
		next.Phase = PhaseFailed
		next.Text = FailedMessage
	case text == "":
		next.Text = NoInsightsMessage
	}

	p.mu.Lock()
	if token != p.token {
		current := p.state
		p.mu.Unlock()
		p.logger.Debug("discarding stale insights response",
			zap.String("date", FormatDate(date)),
			zap.Uint64("token", token),
			zap.Uint64("latest", current.Token),
		)
		return current
	}
	p.state = next
	p.cancel = nil
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn("insights request failed", zap.String("date", FormatDate(date)), zap.Error(err))
	}
	p.publish(next)
	return next
}

// publish hands s to the observers unless a newer state replaced it while
// an earlier notification was still being delivered.
func (p *Panel) publish(s State) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.state != s {
		p.mu.Unlock()
		return
	}
	observers := append([]func(State){}, p.observers...)
	p.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}
