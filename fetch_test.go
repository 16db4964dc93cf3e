package tokenmart_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenmart "github.com/tokenmart/tokenmart.go"
)

type captureNotifier struct {
	mu  sync.Mutex
	got []tokenmart.Notification
}

func (c *captureNotifier) Notify(n tokenmart.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, n)
}

func (c *captureNotifier) all() []tokenmart.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]tokenmart.Notification(nil), c.got...)
}

func TestFetchSuccessReplacesStore(t *testing.T) {
	store := tokenmart.NewStore[testRecord]()
	f := tokenmart.NewListFetcher(store, func(ctx context.Context) ([]testRecord, error) {
		return []testRecord{{ID: "1"}, {ID: "2"}}, nil
	})

	require.NoError(t, f.Refresh(context.Background(), tokenmart.FetchVisible))

	assert.Equal(t, 2, store.Len())
	assert.False(t, f.Loading())
}

func TestFetchVisibleFailureNotifiesWithRetry(t *testing.T) {
	notifier := &captureNotifier{}
	store := tokenmart.NewStore[testRecord]()

	var calls int
	var failing = true
	f := tokenmart.NewListFetcher(store,
		func(ctx context.Context) ([]testRecord, error) {
			calls++
			if failing {
				return nil, errors.New("boom")
			}
			return []testRecord{{ID: "1"}}, nil
		},
		tokenmart.WithNotifier[testRecord](notifier),
		tokenmart.WithFailMessage[testRecord]("Failed to load requests."),
	)

	err := f.Refresh(context.Background(), tokenmart.FetchVisible)
	require.Error(t, err)
	assert.False(t, f.Loading(), "failure must clear the loading flag")

	got := notifier.all()
	require.Len(t, got, 1, "every failed user-initiated action produces exactly one notification")
	assert.Equal(t, tokenmart.SeverityError, got[0].Severity)
	assert.Equal(t, "Failed to load requests.", got[0].Message)
	assert.Equal(t, "Retry", got[0].ActionLabel)
	require.NotNil(t, got[0].Action)

	// The retry callback re-invokes the same fetch.
	failing = false
	got[0].Action()
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, store.Len())
}

func TestFetchRetryOutlivesTriggeringContext(t *testing.T) {
	notifier := &captureNotifier{}
	store := tokenmart.NewStore[testRecord]()

	f := tokenmart.NewListFetcher(store,
		func(ctx context.Context) ([]testRecord, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return []testRecord{{ID: "1"}}, nil
		},
		tokenmart.WithNotifier[testRecord](notifier),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, f.Refresh(ctx, tokenmart.FetchVisible))

	got := notifier.all()
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Action)

	// By the time the user clicks retry the triggering call's context is
	// long cancelled; the retry must still be able to succeed.
	got[0].Action()
	assert.Equal(t, 1, store.Len())
}

func TestFetchSilentFailureStaysQuiet(t *testing.T) {
	notifier := &captureNotifier{}
	store := tokenmart.NewStore[testRecord]()
	store.ReplaceAll([]testRecord{{ID: "stale"}})

	f := tokenmart.NewListFetcher(store,
		func(ctx context.Context) ([]testRecord, error) {
			return nil, errors.New("boom")
		},
		tokenmart.WithNotifier[testRecord](notifier),
	)

	err := f.Refresh(context.Background(), tokenmart.FetchSilent)
	require.Error(t, err)

	assert.Empty(t, notifier.all(), "background refresh failures must not notify")
	assert.Equal(t, 1, store.Len(), "stale-but-not-wrong data stays visible")
}

func TestFetchStaleCompletionDiscarded(t *testing.T) {
	store := tokenmart.NewStore[testRecord]()

	release := make(chan struct{})
	var slowStarted sync.WaitGroup
	slowStarted.Add(1)
	first := true

	f := tokenmart.NewListFetcher(store, func(ctx context.Context) ([]testRecord, error) {
		if first {
			first = false
			slowStarted.Done()
			<-release
			return []testRecord{{ID: "old"}}, nil
		}
		return []testRecord{{ID: "new"}}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = f.Refresh(context.Background(), tokenmart.FetchSilent)
	}()
	slowStarted.Wait()

	// A newer fetch is issued and completes while the first is in flight.
	require.NoError(t, f.Refresh(context.Background(), tokenmart.FetchVisible))
	assert.False(t, f.Loading())

	close(release)
	wg.Wait()

	got, ok := store.Get("new")
	require.True(t, ok, "the newer result must win")
	assert.Equal(t, "new", got.ID)
	_, stale := store.Get("old")
	assert.False(t, stale, "a superseded completion must not overwrite newer data")
	assert.False(t, f.Loading())
}

func TestFetchLoadingFlagDuringFetch(t *testing.T) {
	store := tokenmart.NewStore[testRecord]()
	started := make(chan struct{})
	release := make(chan struct{})

	f := tokenmart.NewListFetcher(store, func(ctx context.Context) ([]testRecord, error) {
		close(started)
		<-release
		return nil, nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = f.Refresh(context.Background(), tokenmart.FetchVisible)
	}()

	<-started
	assert.True(t, f.Loading())
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh did not complete")
	}
	assert.False(t, f.Loading())
}
