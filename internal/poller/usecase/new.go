package usecase

import (
	"sync"
	"sync/atomic"

	"builders-panel/internal/formatter"
	"builders-panel/internal/notification/repository"
	"builders-panel/internal/poller"
	"builders-panel/internal/tracker"
	"builders-panel/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "builders-panel/internal/poller"

type implUseCase struct {
	l        log.Logger
	repo     repository.Repository
	parser   formatter.Parser
	listener poller.Listener
	session  *tracker.Session
	opts     poller.Options
	metrics  *metrics
	tracer   trace.Tracer

	// emitMu serializes apply and emit so listeners see events in apply order.
	emitMu sync.Mutex
	primed bool

	running atomic.Bool
}

// New wires a polling session. A nil listener discards events, a nil registerer keeps
// metrics unregistered.
func New(
	l log.Logger,
	repo repository.Repository,
	parser formatter.Parser,
	listener poller.Listener,
	opts poller.Options,
	reg prometheus.Registerer,
) (poller.UseCase, error) {
	if opts.UserID <= 0 {
		return nil, poller.ErrInvalidUserID
	}
	if opts.Interval <= 0 {
		opts.Interval = poller.DefaultInterval
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = poller.DefaultToastDuration
	}
	if listener == nil {
		listener = poller.NopListener{}
	}

	return &implUseCase{
		l:        l,
		repo:     repo,
		parser:   parser,
		listener: listener,
		session:  tracker.NewSession(),
		opts:     opts,
		metrics:  newMetrics(reg, opts.UserID),
		tracer:   otel.Tracer(tracerName),
	}, nil
}
