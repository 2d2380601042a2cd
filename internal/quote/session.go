package quote

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"configureflow/internal/catalog"
)

// State describes where a session currently stands.
type State int

const (
	// StateIdle means no request has been issued yet.
	StateIdle State = iota
	// StateRequesting means the latest issued request has not settled.
	StateRequesting
	// StateSettled means the latest issued request published a quote.
	StateSettled
	// StateFailed means the latest issued request failed.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateSettled:
		return "settled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Update is pushed to the session's observer whenever the published price
// changes.
type Update struct {
	Seq     uint64
	Quote   *Quote
	Err     error
	Loading bool
}

// Session issues price requests for configuration snapshots and guarantees
// that the published quote always reflects the most recently issued request,
// never an earlier, slower one. Requests are never cancelled; a response
// arriving for anything but the latest sequence number is dropped without
// observable effect, whether it succeeded or failed. The sequence counter is
// owned by the session instance, so configurators running side by side
// cannot interfere with each other.
type Session struct {
	quoter   Quoter
	logger   *zap.Logger
	onUpdate func(Update)

	mu      sync.Mutex
	seq     uint64 // last issued sequence number
	latest  *Quote
	err     error
	loading bool
}

// NewSession creates a session over the given quoter. onUpdate may be nil;
// when set it is invoked, in settlement order, for every published change.
// The callback runs with the session lock held and must not call back into
// the session.
func NewSession(quoter Quoter, logger *zap.Logger, onUpdate func(Update)) *Session {
	return &Session{
		quoter:   quoter,
		logger:   logger,
		onUpdate: onUpdate,
	}
}

// Request issues a new price request for the given configuration snapshot
// and returns immediately with the request's sequence number. The snapshot
// must not be mutated after issuance; Configurator.Snapshot already hands
// out a deep copy.
func (s *Session) Request(ctx context.Context, cfg catalog.Configuration, product catalog.Product) uint64 {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	s.logger.Debug("price request issued",
		zap.Uint64("seq", token),
		zap.String("config_id", cfg.ID))

	go func() {
		result, err := s.quoter.Quote(ctx, cfg, product)
		s.settle(token, result, err)
	}()

	return token
}

// settle publishes a response if and only if it belongs to the latest issued
// request. Everything else is superseded and dropped.
func (s *Session) settle(token uint64, result Quote, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		s.logger.Debug("superseded price response dropped",
			zap.Uint64("seq", token),
			zap.Uint64("latest", s.seq),
			zap.Error(err))
		return
	}

	s.loading = false
	if err != nil {
		s.err = err
		s.latest = nil
		s.logger.Warn("price request failed", zap.Uint64("seq", token), zap.Error(err))
	} else {
		s.err = nil
		s.latest = &result
	}

	if s.onUpdate != nil {
		s.onUpdate(Update{Seq: token, Quote: s.latest, Err: s.err, Loading: s.loading})
	}
}

// Current returns the published quote, if any.
func (s *Session) Current() (Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return Quote{}, false
	}
	return *s.latest, true
}

// Err returns the published error state, set only when the latest request
// itself failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Loading reports whether the latest issued request is still in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// State reports the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.seq == 0:
		return StateIdle
	case s.loading:
		return StateRequesting
	case s.err != nil:
		return StateFailed
	default:
		return StateSettled
	}
}
