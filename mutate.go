package tokenmart

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// serverMessenger is implemented by errors that carry a human-readable
// message supplied by the server, e.g. [pkg/api.Error].
type serverMessenger interface {
	ServerMessage() string
}

// staleTokener is implemented by errors that indicate the mutation was
// rejected because its concurrency token was stale.
type staleTokener interface {
	StaleToken() bool
}

// FailureMessage returns the server's message verbatim when err carries
// one, otherwise fallback.
func FailureMessage(err error, fallback string) string {
	var sm serverMessenger
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}

// IsStaleToken reports whether err indicates a rejected concurrency token.
func IsStaleToken(err error) bool {
	var st staleTokener
	return errors.As(err, &st) && st.StaleToken()
}

// Mutator executes create/update/delete/state-transition calls for one
// store and reconciles their outcome.
//
// Reconciliation policy: when the server returns the updated canonical
// record it is upserted directly with no re-fetch; when the response is
// empty, nil, or missing its id, the local copy cannot be trusted (the new
// row version is unknown) and a silent list re-fetch is issued instead.
// A rejected stale token also triggers the re-fetch, so the user's next
// retry carries a fresh token rather than the same stale one.
type Mutator[T Record] struct {
	store    *Store[T]
	refresh  func(context.Context)
	notifier Notifier
	log      zerolog.Logger
}

// NewMutator returns a mutator reconciling into store. refresh is the
// silent list re-fetch used as the default-safe reconciliation path; it
// must not be nil.
func NewMutator[T Record](store *Store[T], refresh func(context.Context), notifier Notifier, log zerolog.Logger) *Mutator[T] {
	return &Mutator[T]{store: store, refresh: refresh, notifier: notifier, log: log}
}

// Apply executes a create, update or state-transition call. op performs
// the HTTP request, constructed with the row version currently held in the
// store, and returns the canonical record when the server supplies one.
// failMessage is the entity-specific fallback shown when the server's
// response carries no message of its own.
func (m *Mutator[T]) Apply(ctx context.Context, failMessage string, op func(context.Context) (*T, error)) error {
	record, err := op(ctx)
	if err != nil {
		m.fail(ctx, failMessage, err)
		return err
	}
	if record == nil || (*record).Key() == "" {
		m.refresh(ctx)
		return nil
	}
	m.store.Upsert(*record)
	return nil
}

// Delete executes a destructive call and, on success, removes the record
// from the store immediately without waiting for a re-fetch.
func (m *Mutator[T]) Delete(ctx context.Context, id, failMessage string, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		m.fail(ctx, failMessage, err)
		return err
	}
	m.store.Remove(id)
	return nil
}

func (m *Mutator[T]) fail(ctx context.Context, fallback string, err error) {
	msg := FailureMessage(err, fallback)
	m.log.Error().Err(err).Msg("mutation failed")
	if m.notifier != nil {
		m.notifier.Notify(Notification{Severity: SeverityError, Message: msg})
	}
	if IsStaleToken(err) {
		m.refresh(ctx)
	}
}
