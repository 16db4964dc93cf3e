// Package dashboard implements the per-role view-controllers of the
// TokenMart client. Each controller owns one resource store per list it
// shows, fills it through a fetch coordinator, derives its visible rows
// through pure filters, and routes every mutation through a mutation
// coordinator that enforces the optimistic-concurrency contract.
// Destructive actions pass a confirmation gate first.
package dashboard

import "errors"

// ErrNotLoggedIn is returned by a controller constructor when the session
// holds no identity for its role. Callers redirect to the role's login.
var ErrNotLoggedIn = errors.New("no identity logged in for this role")

// ErrUnknownRecord is returned when an action targets an id that is not in
// the screen's store, e.g. after a concurrent refresh removed it.
var ErrUnknownRecord = errors.New("record not present on this screen")
