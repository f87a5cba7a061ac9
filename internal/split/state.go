package split

import (
	"github.com/ManuGH/halve/internal/fsm"
)

// State is a step of a halve run.
type State string

// Event moves a run from one State to the next.
type Event string

const (
	StateStart               State = "start"
	StateDurationKnown       State = "duration_known"
	StateFirstHalfEmitted    State = "first_half_emitted"
	StateDone                State = "done"
	StateInputNotFound       State = "input_not_found"
	StateDurationUnavailable State = "duration_unavailable"
	StateTrimFailed          State = "trim_failed"
)

const (
	EventInputMissing   Event = "input_missing"
	EventDurationProbed Event = "duration_probed"
	EventProbeFailed    Event = "probe_failed"
	EventFirstHalfDone  Event = "first_half_done"
	EventSecondHalfDone Event = "second_half_done"
	EventTrimFailed     Event = "trim_failed"
)

var transitions = []fsm.Transition[State, Event]{
	{From: StateStart, Event: EventInputMissing, To: StateInputNotFound},
	{From: StateStart, Event: EventProbeFailed, To: StateDurationUnavailable},
	{From: StateStart, Event: EventDurationProbed, To: StateDurationKnown},
	{From: StateDurationKnown, Event: EventFirstHalfDone, To: StateFirstHalfEmitted},
	{From: StateDurationKnown, Event: EventTrimFailed, To: StateTrimFailed},
	{From: StateFirstHalfEmitted, Event: EventSecondHalfDone, To: StateDone},
	{From: StateFirstHalfEmitted, Event: EventTrimFailed, To: StateTrimFailed},
}

func newMachine(observe func(from, to State, ev Event)) *fsm.Machine[State, Event] {
	m, err := fsm.New(StateStart, transitions, fsm.WithObserver(observe))
	if err != nil {
		// transitions is a package constant; a duplicate is a programming error.
		panic(err)
	}
	return m
}
