package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionReaper periodically purges expired sessions so the table does not
// grow with abandoned logins.
type SessionReaper struct {
	sessions SessionServiceInterface
	interval time.Duration
	log      *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewSessionReaper(sessions SessionServiceInterface, interval time.Duration, log *zap.Logger) *SessionReaper {
	return &SessionReaper{
		sessions: sessions,
		interval: interval,
		log:      log.Named("session-reaper"),
	}
}

func (r *SessionReaper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce performs a single sweep.
func (r *SessionReaper) RunOnce(ctx context.Context) {
	n, err := r.sessions.Reap(ctx)
	if err != nil {
		r.log.Error("session reap failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.log.Info("reaped expired sessions", zap.Int64("count", n))
	}
}

// Stop halts the loop and waits for an in-flight sweep, or until ctx ends.
func (r *SessionReaper) Stop(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.once.Do(r.cancel)
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
