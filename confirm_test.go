package tokenmart_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenmart "github.com/tokenmart/tokenmart.go"
)

// confirmAsync runs gate.Confirm in a goroutine and returns a channel
// carrying its result.
func confirmAsync(g *tokenmart.Gate, opts tokenmart.ConfirmOptions) <-chan bool {
	out := make(chan bool, 1)
	go func() {
		out <- g.Confirm(context.Background(), opts)
	}()
	return out
}

func waitPending(t *testing.T, g *tokenmart.Gate) tokenmart.ConfirmOptions {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if opts, ok := g.Pending(); ok {
			return opts
		}
		select {
		case <-deadline:
			t.Fatal("no confirmation became pending")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestGateConfirmResolvesTrue(t *testing.T) {
	g := tokenmart.NewGate(nil)
	result := confirmAsync(g, tokenmart.ConfirmOptions{Title: "Delete request"})
	waitPending(t, g)

	g.Close(true)

	assert.True(t, <-result)
	_, ok := g.Pending()
	assert.False(t, ok)
}

func TestGateResolvesExactlyOnce(t *testing.T) {
	g := tokenmart.NewGate(nil)
	result := confirmAsync(g, tokenmart.ConfirmOptions{})
	waitPending(t, g)

	g.Close(true)
	require.True(t, <-result)

	// Closing an already-closed gate has no effect.
	g.Close(false)
	g.Dismiss()

	select {
	case v, open := <-result:
		if open {
			t.Fatalf("confirmation resolved a second time: %v", v)
		}
	default:
	}
}

func TestGateDismissResolvesFalse(t *testing.T) {
	g := tokenmart.NewGate(nil)
	result := confirmAsync(g, tokenmart.ConfirmOptions{})
	waitPending(t, g)

	g.Dismiss()

	assert.False(t, <-result)
}

func TestGateSecondConfirmDisplacesFirst(t *testing.T) {
	g := tokenmart.NewGate(nil)
	first := confirmAsync(g, tokenmart.ConfirmOptions{Title: "first"})
	waitPending(t, g)

	second := confirmAsync(g, tokenmart.ConfirmOptions{Title: "second"})

	// The displaced request resolves as cancelled.
	assert.False(t, <-first)

	waitPending(t, g)
	g.Close(true)
	assert.True(t, <-second)
}

func TestGateContextCancellationResolvesFalse(t *testing.T) {
	g := tokenmart.NewGate(nil)
	ctx, cancel := context.WithCancel(context.Background())

	result := make(chan bool, 1)
	go func() {
		result <- g.Confirm(ctx, tokenmart.ConfirmOptions{})
	}()
	waitPending(t, g)

	cancel()
	assert.False(t, <-result)
}

func TestGateDefaultsAndOnOpen(t *testing.T) {
	var mu sync.Mutex
	var seen tokenmart.ConfirmOptions
	var g *tokenmart.Gate
	g = tokenmart.NewGate(func(opts tokenmart.ConfirmOptions) {
		mu.Lock()
		seen = opts
		mu.Unlock()
		g.Close(false)
	})

	ok := g.Confirm(context.Background(), tokenmart.ConfirmOptions{Title: "Delete product"})

	assert.False(t, ok)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "Confirm", seen.ConfirmText)
	assert.Equal(t, "Cancel", seen.CancelText)
	assert.Equal(t, tokenmart.DialogInfo, seen.Kind)
}
