// Package timing measures the phases of a firecomp command.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Timer records elapsed time at labelled checkpoints
type Timer struct {
	start time.Time
	marks map[string]time.Duration
	order []string // marks in the order they were taken
}

// NewTimer creates a timer started now
func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
		marks: make(map[string]time.Duration),
	}
}

// Mark records a checkpoint with a label. Marking a label again moves it.
func (t *Timer) Mark(label string) time.Duration {
	elapsed := time.Since(t.start)
	if _, ok := t.marks[label]; !ok {
		t.order = append(t.order, label)
	}
	t.marks[label] = elapsed
	return elapsed
}

// Elapsed returns total elapsed time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration for a specific mark
func (t *Timer) Get(label string) (time.Duration, bool) {
	d, ok := t.marks[label]
	return d, ok
}

// Labels returns the marks in the order they were first taken
func (t *Timer) Labels() []string {
	return append([]string(nil), t.order...)
}

// Summary formats the total and every mark in milliseconds
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %s", millis(t.Elapsed()))

	if len(t.order) > 0 {
		parts := make([]string, len(t.order))
		for i, label := range t.order {
			parts[i] = fmt.Sprintf("%s: %s", label, millis(t.marks[label]))
		}
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}

	return b.String()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
