package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JanitorInterval is how often expired states and refresh tokens are removed
const JanitorInterval = 10 * time.Minute

// Janitor periodically deletes expired OAuth states and dead refresh tokens
type Janitor struct {
	states   *OAuthStateStore
	refresh  *RefreshTokenStore
	logger   *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewJanitor(states *OAuthStateStore, refresh *RefreshTokenStore, logger *zap.Logger) *Janitor {
	return &Janitor{
		states:   states,
		refresh:  refresh,
		logger:   logger,
		interval: JanitorInterval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the cleanup loop until ctx ends or Stop is called
func (j *Janitor) Start(ctx context.Context) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-j.stopCh:
				return
			case <-ticker.C:
				j.Sweep(ctx)
			}
		}
	}()
}

func (j *Janitor) Stop() {
	close(j.stopCh)
	j.wg.Wait()
}

// Sweep runs one cleanup pass
func (j *Janitor) Sweep(ctx context.Context) {
	if err := j.states.Cleanup(ctx); err != nil {
		j.logger.Warn("failed to clean up oauth states", zap.Error(err))
	}
	if err := j.refresh.Cleanup(ctx); err != nil {
		j.logger.Warn("failed to clean up refresh tokens", zap.Error(err))
	}
}
