package readiness

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_Set(t *testing.T) {
	g := NewGate(false)
	assert.False(t, g.Ready())

	assert.True(t, g.Set(true))
	assert.True(t, g.Ready())
	assert.False(t, g.Set(true))
}

func TestProber_Probe(t *testing.T) {
	g := NewGate(true)
	var fail atomic.Bool
	p := NewProber(g, func(context.Context) error {
		if fail.Load() {
			return errors.New("connection refused")
		}
		return nil
	}, time.Second)

	fail.Store(true)
	p.Probe(context.Background())
	assert.False(t, g.Ready())

	fail.Store(false)
	p.Probe(context.Background())
	assert.True(t, g.Ready())
}

func TestProber_StartClose(t *testing.T) {
	g := NewGate(false)
	var calls atomic.Int32
	p := NewProber(g, func(context.Context) error {
		calls.Add(1)
		return nil
	}, 10*time.Millisecond)

	p.Start(context.Background())
	assert.Eventually(t, g.Ready, time.Second, 5*time.Millisecond)
	p.Close()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}
