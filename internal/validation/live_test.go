package validation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const liveDebounce = 10 * time.Millisecond

// waitState polls until the field leaves the wanted-away statuses or the
// deadline passes. Timer-driven code needs a little patience.
func waitState(t *testing.T, lv *LiveValidator, field string, want FieldStatus) FieldState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := lv.State(field)
		if st.Status == want {
			return st
		}
		time.Sleep(2 * time.Millisecond)
	}
	st := lv.State(field)
	t.Fatalf("field %s never reached status %d, stuck at %+v", field, want, st)
	return st
}

func TestLiveValidatorValidFlow(t *testing.T) {
	check := func(ctx context.Context, field, value string) FieldState {
		return FieldState{Status: StatusValid, Checked: true}
	}
	lv := NewLiveValidator(check, liveDebounce)
	defer lv.Stop()

	lv.Input(FieldEmail, "a@b.co")
	st := waitState(t, lv, FieldEmail, StatusValid)
	assert.True(t, st.Checked)
}

func TestLiveValidatorDebounceCoalesces(t *testing.T) {
	var fired int64
	check := func(ctx context.Context, field, value string) FieldState {
		atomic.AddInt64(&fired, 1)
		return FieldState{Status: StatusValid, Checked: true}
	}
	lv := NewLiveValidator(check, 50*time.Millisecond)
	defer lv.Stop()

	// Rapid keystrokes within the debounce window: only the last fires.
	lv.Input(FieldUsername, "j")
	lv.Input(FieldUsername, "jo")
	lv.Input(FieldUsername, "john")
	waitState(t, lv, FieldUsername, StatusValid)
	assert.Equal(t, int64(1), atomic.LoadInt64(&fired))
}

func TestLiveValidatorClearResetsToIdle(t *testing.T) {
	check := func(ctx context.Context, field, value string) FieldState {
		return FieldState{Status: StatusValid, Checked: true}
	}
	lv := NewLiveValidator(check, liveDebounce)
	defer lv.Stop()

	lv.Input(FieldPhone, "+90 555 000 1122")
	waitState(t, lv, FieldPhone, StatusValid)

	lv.Input(FieldPhone, "")
	st := lv.State(FieldPhone)
	assert.Equal(t, StatusIdle, st.Status)
	assert.False(t, st.Checked)
}

// A check that completes after newer input arrived must be discarded: the
// sequence number captured at fire time is no longer current.
func TestLiveValidatorStaleResponseDiscarded(t *testing.T) {
	started := make(chan string, 2)
	release := make(chan struct{})
	check := func(ctx context.Context, field, value string) FieldState {
		started <- value
		if value == "old@b.co" {
			<-release // hold the first check until told otherwise
			return FieldState{Status: StatusInvalid, Err: "stale result", Checked: true}
		}
		return FieldState{Status: StatusValid, Checked: true}
	}
	lv := NewLiveValidator(check, liveDebounce)
	defer lv.Stop()

	lv.Input(FieldEmail, "old@b.co")
	require.Equal(t, "old@b.co", <-started)

	// New keystroke while the old check is still in flight.
	lv.Input(FieldEmail, "new@b.co")
	require.Equal(t, "new@b.co", <-started)
	st := waitState(t, lv, FieldEmail, StatusValid)
	require.Empty(t, st.Err)

	// Now let the stale check finish; the state must not regress.
	close(release)
	time.Sleep(20 * time.Millisecond)
	st = lv.State(FieldEmail)
	assert.Equal(t, StatusValid, st.Status)
	assert.Empty(t, st.Err)
}

func TestLiveValidatorStopDiscardsInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	check := func(ctx context.Context, field, value string) FieldState {
		close(started)
		<-release
		return FieldState{Status: StatusValid, Checked: true}
	}
	lv := NewLiveValidator(check, liveDebounce)

	lv.Input(FieldUsername, "john")
	<-started
	lv.Stop()
	close(release)
	time.Sleep(20 * time.Millisecond)

	st := lv.State(FieldUsername)
	assert.NotEqual(t, StatusValid, st.Status, "stopped validator must not apply results")
}

func TestLiveValidatorIndependentFields(t *testing.T) {
	check := func(ctx context.Context, field, value string) FieldState {
		if field == FieldEmail {
			return FieldState{Status: StatusInvalid, Err: "taken", Checked: true}
		}
		return FieldState{Status: StatusValid, Checked: true}
	}
	lv := NewLiveValidator(check, liveDebounce)
	defer lv.Stop()

	lv.Input(FieldEmail, "a@b.co")
	lv.Input(FieldUsername, "john")

	emailSt := waitState(t, lv, FieldEmail, StatusInvalid)
	userSt := waitState(t, lv, FieldUsername, StatusValid)
	assert.Equal(t, "taken", emailSt.Err)
	assert.Empty(t, userSt.Err)
}
