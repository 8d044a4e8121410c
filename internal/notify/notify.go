// Package notify provides the transient toast and persistent alert surface.
// A Notifier is an explicit dependency handed to callers; there is no
// package-level state.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Level classifies a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

var levelStyles = map[Level]lipgloss.Style{
	LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// Toast is a transient notification that expires after the notifier's TTL.
type Toast struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Alert is the persistent inline message. At most one is active; a new alert
// replaces the previous one.
type Alert struct {
	Level   Level
	Message string
}

// Notifier manages toasts and the inline alert.
type Notifier struct {
	out   io.Writer
	ttl   time.Duration
	clock func() time.Time

	mu     sync.Mutex
	toasts []Toast
	alert  *Alert
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(n *Notifier) { n.clock = clock }
}

// NewNotifier creates a notifier writing to out. Toasts expire after ttl;
// a non-positive ttl defaults to five seconds.
func NewNotifier(out io.Writer, ttl time.Duration, opts ...Option) *Notifier {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	n := &Notifier{out: out, ttl: ttl, clock: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Toast emits a transient notification and returns it.
func (n *Notifier) Toast(level Level, message string) Toast {
	toast := Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: n.clock(),
	}

	n.mu.Lock()
	n.pruneLocked()
	n.toasts = append(n.toasts, toast)
	n.mu.Unlock()

	if n.out != nil {
		fmt.Fprintln(n.out, levelStyles[level].Render(message))
	}
	return toast
}

// ActiveToasts returns toasts that have not yet expired.
func (n *Notifier) ActiveToasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pruneLocked()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

func (n *Notifier) pruneLocked() {
	cutoff := n.clock().Add(-n.ttl)
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if t.CreatedAt.After(cutoff) {
			kept = append(kept, t)
		}
	}
	n.toasts = kept
}

// ShowAlert sets the inline alert, replacing any previous one.
func (n *Notifier) ShowAlert(level Level, message string) {
	n.mu.Lock()
	n.alert = &Alert{Level: level, Message: message}
	n.mu.Unlock()

	if n.out != nil {
		fmt.Fprintln(n.out, levelStyles[level].Render("! "+message))
	}
}

// ClearAlert removes the inline alert.
func (n *Notifier) ClearAlert() {
	n.mu.Lock()
	n.alert = nil
	n.mu.Unlock()
}

// Alert returns the active inline alert, or nil.
func (n *Notifier) Alert() *Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.alert == nil {
		return nil
	}
	a := *n.alert
	return &a
}
