package sync

import (
	"bytes"
	"context"
	"time"

	"go.uber.org/zap"

	"go-hrm/internal/state"
)

// DefaultPollInterval matches the cadence remote edits are expected to
// surface at. Pull failures just wait for the next tick, no backoff.
const DefaultPollInterval = 10 * time.Second

// Poller periodically pulls the remote document and, when its bytes
// differ from the last version seen, replaces the local aggregate
// wholesale. The generation captured before the pull keeps a slow
// response from clobbering a local commit that landed in between.
type Poller struct {
	client   *Client
	engine   *state.Engine
	interval time.Duration
	logger   *zap.Logger

	lastSeen []byte
	stop     chan struct{}
	done     chan struct{}
	stopped  bool
}

func NewPoller(client *Client, engine *state.Engine, interval time.Duration, logger ...*zap.Logger) *Poller {
	l := zap.L().Named("sync.poller")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sync.poller")
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:   client,
		engine:   engine,
		interval: interval,
		logger:   l,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the poll loop until Stop is called.
func (p *Poller) Start() {
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.tick()
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight tick to finish.
// Safe to call more than once.
func (p *Poller) Stop() {
	if p.stopped {
		return
	}
	p.stopped = true
	close(p.stop)
	<-p.done
}

func (p *Poller) tick() {
	gen := p.engine.Generation()

	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	remote, err := p.client.Pull(ctx)
	if err != nil {
		p.logger.Warn("poll failed, keeping local state", zap.Error(err))
		return
	}
	if remote == nil {
		return
	}

	raw, err := remote.Encode()
	if err != nil {
		p.logger.Warn("poll decode round-trip failed", zap.Error(err))
		return
	}
	if bytes.Equal(raw, p.lastSeen) {
		return
	}

	if p.engine.Replace(remote, gen) {
		p.lastSeen = raw
		p.logger.Info("remote state adopted", zap.Uint64("since_generation", gen))
		return
	}
	// A local commit won the race. The next tick re-evaluates against
	// whatever the store holds by then.
	p.logger.Debug("remote state discarded, local generation moved on")
}
