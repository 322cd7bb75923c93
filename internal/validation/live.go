package validation

import (
	"context"
	"sync"
	"time"
)

// FieldStatus is the explicit state of one field's live validation.
type FieldStatus int

const (
	StatusIdle FieldStatus = iota
	StatusChecking
	StatusValid
	StatusInvalid
)

// String returns the wire name of the status.
func (s FieldStatus) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "idle"
	}
}

// FieldState is what the UI renders next to a field: the current status, a
// localized error when invalid, and whether any check has completed yet.
type FieldState struct {
	Status  FieldStatus
	Err     string
	Checked bool
}

// DefaultDebounce is how long input must pause before a check fires.
const DefaultDebounce = 500 * time.Millisecond

// CheckFunc runs the actual per-field check (format then uniqueness).
type CheckFunc func(ctx context.Context, field, value string) FieldState

// LiveValidator provides debounced as-you-type validation. Each keystroke
// restarts the field's timer; only the last pending value is checked. Every
// input advances a per-field sequence number that is captured when a check
// starts: a completion whose sequence is no longer current is discarded, so
// a slow response can never overwrite the state of newer input.
type LiveValidator struct {
	check    CheckFunc
	debounce time.Duration

	mu     sync.Mutex
	fields map[string]*fieldSlot
}

type fieldSlot struct {
	seq   uint64
	timer *time.Timer
	state FieldState
}

// NewLiveValidator builds a validator around check. A non-positive debounce
// falls back to DefaultDebounce.
func NewLiveValidator(check CheckFunc, debounce time.Duration) *LiveValidator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &LiveValidator{
		check:    check,
		debounce: debounce,
		fields:   make(map[string]*fieldSlot),
	}
}

// Input records a new value for field. An empty value cancels any pending
// check and resets the field to neutral. Otherwise the debounce timer is
// restarted and, once it fires, the check runs with the sequence captured
// here.
func (lv *LiveValidator) Input(field, value string) {
	lv.mu.Lock()
	defer lv.mu.Unlock()

	slot := lv.fields[field]
	if slot == nil {
		slot = &fieldSlot{}
		lv.fields[field] = slot
	}
	slot.seq++
	if slot.timer != nil {
		slot.timer.Stop()
		slot.timer = nil
	}

	if value == "" {
		slot.state = FieldState{Status: StatusIdle}
		return
	}

	seq := slot.seq
	slot.timer = time.AfterFunc(lv.debounce, func() {
		lv.fire(field, value, seq)
	})
}

// State returns the current validation state of field.
func (lv *LiveValidator) State(field string) FieldState {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if slot := lv.fields[field]; slot != nil {
		return slot.state
	}
	return FieldState{Status: StatusIdle}
}

// Stop cancels all pending timers. In-flight checks finish but their results
// are discarded because Stop advances every sequence.
func (lv *LiveValidator) Stop() {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	for _, slot := range lv.fields {
		slot.seq++
		if slot.timer != nil {
			slot.timer.Stop()
			slot.timer = nil
		}
	}
}

// fire marks the field checking and runs the check outside the lock. The
// result is applied only if seq is still current.
func (lv *LiveValidator) fire(field, value string, seq uint64) {
	lv.mu.Lock()
	slot := lv.fields[field]
	if slot == nil || slot.seq != seq {
		lv.mu.Unlock()
		return
	}
	slot.state = FieldState{Status: StatusChecking}
	lv.mu.Unlock()

	state := lv.check(context.Background(), field, value)

	lv.mu.Lock()
	defer lv.mu.Unlock()
	if slot.seq != seq {
		return // newer input superseded this check
	}
	slot.state = state
}
