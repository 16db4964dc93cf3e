package tokenmart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// FetchMode selects how a failed fetch is surfaced.
type FetchMode int

const (
	// FetchVisible notifies the user on failure, offering a retry action.
	FetchVisible FetchMode = iota
	// FetchSilent fails quietly, leaving the store's stale contents in
	// place. Used for background refreshes.
	FetchSilent
)

// ListFetcher retrieves one entity list and reconciles it into a [Store].
// Responses that complete after a newer fetch was issued are discarded, so
// the last request wins regardless of completion order.
type ListFetcher[T Record] struct {
	store    *Store[T]
	fetch    func(context.Context) ([]T, error)
	notifier Notifier
	log      zerolog.Logger
	failMsg  string

	mu      sync.Mutex
	gen     uint64
	loading bool
}

// FetcherOption configures a [ListFetcher].
type FetcherOption[T Record] func(*ListFetcher[T])

// WithNotifier sets the notification surface used for visible failures.
func WithNotifier[T Record](n Notifier) FetcherOption[T] {
	return func(f *ListFetcher[T]) { f.notifier = n }
}

// WithLogger sets the fetcher's logger.
func WithLogger[T Record](log zerolog.Logger) FetcherOption[T] {
	return func(f *ListFetcher[T]) { f.log = log }
}

// WithFailMessage sets the entity-specific message shown when a visible
// fetch fails.
func WithFailMessage[T Record](msg string) FetcherOption[T] {
	return func(f *ListFetcher[T]) { f.failMsg = msg }
}

// NewListFetcher returns a fetcher that fills store from fetch.
func NewListFetcher[T Record](store *Store[T], fetch func(context.Context) ([]T, error), opts ...FetcherOption[T]) *ListFetcher[T] {
	f := &ListFetcher[T]{
		store:   store,
		fetch:   fetch,
		log:     zerolog.Nop(),
		failMsg: "Failed to load data.",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Loading reports whether a fetch is in flight.
func (f *ListFetcher[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Refresh performs the fetch and, on success, replaces the store's
// contents. A completion superseded by a newer Refresh is discarded without
// touching the store or the loading flag. On failure the loading flag is
// cleared and, in [FetchVisible] mode, the user is notified with a retry
// action that re-invokes the same refresh.
func (f *ListFetcher[T]) Refresh(ctx context.Context, mode FetchMode) error {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.loading = true
	f.mu.Unlock()

	records, err := f.fetch(ctx)

	f.mu.Lock()
	stale := gen != f.gen
	if !stale {
		f.loading = false
	}
	f.mu.Unlock()

	if stale {
		f.log.Debug().Uint64("generation", gen).Msg("discarding superseded fetch result")
		return nil
	}
	if err != nil {
		f.log.Error().Err(err).Msg("list fetch failed")
		if mode == FetchVisible && f.notifier != nil {
			// The user may trigger the retry long after the failing call's
			// context is done; keep its values but not its cancellation.
			retryCtx := context.WithoutCancel(ctx)
			f.notifier.Notify(Notification{
				Severity:    SeverityError,
				Message:     f.failMsg,
				ActionLabel: "Retry",
				Action:      func() { _ = f.Refresh(retryCtx, FetchVisible) },
			})
		}
		return err
	}

	f.store.ReplaceAll(records)
	return nil
}
