// Package readiness tracks whether the backing store connection is usable.
// Requests read the flag without blocking; a Prober keeps it current.
package readiness

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"petspotter/internal/logging"
	"petspotter/internal/metrics"
)

type Gate struct {
	ready atomic.Bool
}

func NewGate(ready bool) *Gate {
	g := &Gate{}
	g.Set(ready)
	return g
}

func (g *Gate) Ready() bool {
	return g.ready.Load()
}

// Set updates the flag and reports whether it changed.
func (g *Gate) Set(ready bool) bool {
	if ready {
		metrics.StoreReady.Set(1)
	} else {
		metrics.StoreReady.Set(0)
	}
	return g.ready.Swap(ready) != ready
}

// PingFunc checks the store connection.
type PingFunc func(ctx context.Context) error

type Prober struct {
	gate     *Gate
	ping     PingFunc
	interval time.Duration
	timeout  time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewProber(gate *Gate, ping PingFunc, interval time.Duration) *Prober {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	timeout := 2 * time.Second
	if interval < timeout {
		timeout = interval
	}
	return &Prober{
		gate:     gate,
		ping:     ping,
		interval: interval,
		timeout:  timeout,
	}
}

// Probe runs one check and updates the gate.
func (p *Prober) Probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.ping(pingCtx)
	if changed := p.gate.Set(err == nil); changed {
		if err != nil {
			logging.With("readiness").Warn().Err(err).Msg("store not ready")
		} else {
			logging.With("readiness").Info().Msg("store ready")
		}
	}
}

func (p *Prober) Start(ctx context.Context) {
	if p.cancel != nil {
		return
	}
	probeCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-probeCtx.Done():
				return
			case <-ticker.C:
				p.Probe(probeCtx)
			}
		}
	}()
}

func (p *Prober) Close() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}
