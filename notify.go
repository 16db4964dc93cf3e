package tokenmart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification and drives its auto-dismiss duration.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// TTL returns the severity's default auto-dismiss duration.
func (s Severity) TTL() time.Duration {
	switch s {
	case SeverityWarning:
		return 3500 * time.Millisecond
	case SeverityError:
		return 4 * time.Second
	default:
		return 3 * time.Second
	}
}

// Notification is a fire-and-forget user-visible message, optionally
// carrying a single action such as a retry callback.
type Notification struct {
	ID          string
	Severity    Severity
	Message     string
	ActionLabel string
	Action      func()
	At          time.Time
	TTL         time.Duration
}

// Expired reports whether the notification's auto-dismiss deadline has
// passed at the given instant.
func (n Notification) Expired(now time.Time) bool {
	return now.After(n.At.Add(n.TTL))
}

// Notifier is the notification surface the coordinators depend on. A UI
// layer supplies its own implementation or uses [Center].
type Notifier interface {
	Notify(n Notification)
}

// DefaultCapacity is the number of notifications a [Center] keeps visible
// at once.
const DefaultCapacity = 3

// Center is a bounded notification queue: at most capacity notifications
// are retained, the oldest evicted first, and each expires after its
// severity-dependent duration.
type Center struct {
	mu       sync.Mutex
	capacity int
	items    []Notification
	now      func() time.Time
}

// NewCenter returns a Center keeping at most capacity notifications.
// A non-positive capacity falls back to [DefaultCapacity].
func NewCenter(capacity int) *Center {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Center{capacity: capacity, now: time.Now}
}

// Notify enqueues n, filling in id, timestamp and default duration, and
// evicts from the oldest end on overflow.
func (c *Center) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.At.IsZero() {
		n.At = c.now()
	}
	if n.TTL == 0 {
		n.TTL = n.Severity.TTL()
	}

	c.prune()
	if len(c.items) >= c.capacity {
		c.items = c.items[len(c.items)-c.capacity+1:]
	}
	c.items = append(c.items, n)
}

// Info enqueues an informational notification.
func (c *Center) Info(message string) { c.Notify(Notification{Severity: SeverityInfo, Message: message}) }

// Success enqueues a success notification.
func (c *Center) Success(message string) {
	c.Notify(Notification{Severity: SeveritySuccess, Message: message})
}

// Warning enqueues a warning notification.
func (c *Center) Warning(message string) {
	c.Notify(Notification{Severity: SeverityWarning, Message: message})
}

// Error enqueues an error notification.
func (c *Center) Error(message string) {
	c.Notify(Notification{Severity: SeverityError, Message: message})
}

// Active returns the currently visible notifications, oldest first,
// dropping any whose auto-dismiss deadline has passed.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Dismiss removes the notification with the given id, if still visible.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear removes all notifications.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Center) prune() {
	now := c.now()
	kept := c.items[:0]
	for _, n := range c.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	c.items = kept
}
