// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type state string
type event string

const (
	sIdle    state = "idle"
	sRunning state = "running"
	sDone    state = "done"
	sFailed  state = "failed"

	eStart  event = "start"
	eFinish event = "finish"
	eFail   event = "fail"
)

func transitions() []Transition[state, event] {
	return []Transition[state, event]{
		{From: sIdle, Event: eStart, To: sRunning},
		{From: sRunning, Event: eFinish, To: sDone},
		{From: sRunning, Event: eFail, To: sFailed},
	}
}

func TestMachine_HappyPath(t *testing.T) {
	var seen []string
	m, err := New(sIdle, transitions(), WithObserver(func(from, to state, ev event) {
		seen = append(seen, string(from)+">"+string(to))
	}))
	require.NoError(t, err)
	assert.False(t, m.Terminal())

	to, err := m.Fire(eStart)
	require.NoError(t, err)
	assert.Equal(t, sRunning, to)

	to, err = m.Fire(eFinish)
	require.NoError(t, err)
	assert.Equal(t, sDone, to)
	assert.True(t, m.Terminal())
	assert.Equal(t, []string{"idle>running", "running>done"}, seen)
}

func TestMachine_InvalidTransition(t *testing.T) {
	m, err := New(sIdle, transitions())
	require.NoError(t, err)

	cur, err := m.Fire(eFinish)
	require.Error(t, err)
	assert.Equal(t, sIdle, cur)
	assert.Contains(t, err.Error(), "invalid transition")
}

func TestMachine_DuplicateTransition(t *testing.T) {
	ts := append(transitions(), Transition[state, event]{From: sIdle, Event: eStart, To: sDone})
	_, err := New(sIdle, ts)
	require.Error(t, err)
}

func TestMachine_TerminalStopsFurtherEvents(t *testing.T) {
	m, err := New(sIdle, transitions())
	require.NoError(t, err)

	_, err = m.Fire(eStart)
	require.NoError(t, err)
	_, err = m.Fire(eFail)
	require.NoError(t, err)
	assert.True(t, m.Terminal())

	cur, err := m.Fire(eFinish)
	require.Error(t, err)
	assert.Equal(t, sFailed, cur)
	assert.Equal(t, sFailed, m.State())
}
