package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_ValidTransitions(t *testing.T) {
	cases := []struct {
		from State
		ev   Event
		want State
	}{
		{Uninitialized, EventInitialize, Initialized},
		{Initialized, EventContentLoaded, ContentLoaded},
		{ContentLoaded, EventContentFlushed, Initialized},
		{Initialized, EventActivate, Active},
		{ContentLoaded, EventActivate, Active},
		{Finished, EventActivate, Active},
		{Active, EventFinish, Finished},
		{Initialized, EventFinish, Finished},
		{Uninitialized, EventDeinitialize, Deinitialized},
		{Active, EventDeinitialize, Deinitialized},
		{Finished, EventDeinitialize, Deinitialized},
	}
	for _, tc := range cases {
		t.Run(tc.from.String()+"_"+tc.ev.String(), func(t *testing.T) {
			got, err := Next(tc.from, tc.ev)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNext_OrderViolations(t *testing.T) {
	cases := []struct {
		from State
		ev   Event
	}{
		{Initialized, EventInitialize},
		{Deinitialized, EventInitialize},
		{Uninitialized, EventActivate},
		{Active, EventActivate},
		{Deinitialized, EventActivate},
		{Finished, EventFinish},
		{Uninitialized, EventFinish},
		{Deinitialized, EventDeinitialize},
		{Active, EventContentLoaded},
	}
	for _, tc := range cases {
		t.Run(tc.from.String()+"_"+tc.ev.String(), func(t *testing.T) {
			got, err := Next(tc.from, tc.ev)
			require.Error(t, err)
			assert.Equal(t, tc.from, got, "state must not change on violation")
			assert.True(t, errors.Is(err, ErrOrder))

			var orderErr *OrderError
			require.True(t, errors.As(err, &orderErr))
			assert.Equal(t, tc.ev.String(), orderErr.Op)
			assert.Equal(t, tc.from, orderErr.State)
		})
	}
}

func TestOrderError_Message(t *testing.T) {
	err := &OrderError{Op: "Initialize", State: Active, Node: "gate"}
	assert.Equal(t, `lifecycle: Initialize not allowed in state Active (node "gate")`, err.Error())
}

func TestState_Helpers(t *testing.T) {
	assert.False(t, Uninitialized.IsLive())
	assert.True(t, Active.IsLive())
	assert.True(t, Finished.IsLive())
	assert.False(t, Deinitialized.IsLive())
	assert.Equal(t, "State(42)", State(42).String())
}
