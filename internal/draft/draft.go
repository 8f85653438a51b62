package draft

import (
	"errors"
)

var ErrAlreadyRunning = errors.New("draft already running")
var ErrAlreadyPaused = errors.New("draft already paused")
var ErrDraftCompleted = errors.New("draft already completed")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Status string

const (
	StatusPaused   Status = "paused"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
)

// State is the container-owned lifecycle of a single draft.
type State struct {
	Status Status
}

// Snapshot is the read-only view handed to the controls panel.
type Snapshot struct {
	IsComplete bool `json:"is_complete"`
	IsPaused   bool `json:"is_paused"`
}

type CommandType string

const (
	CmdStart    CommandType = "Start"
	CmdPause    CommandType = "Pause"
	CmdComplete CommandType = "Complete"
)

/*
	CmdStart    -> EvtStarted   (paused -> running)
	CmdPause    -> EvtPaused    (running -> paused)
	CmdComplete -> EvtCompleted (paused|running -> complete)
*/

type Command struct {
	Type CommandType
}

type EventType string

const (
	EvtStarted   EventType = "Started"
	EvtPaused    EventType = "Paused"
	EvtCompleted EventType = "Completed"
)

type Event struct {
	Type EventType
}

func NewState() State {
	return State{Status: StatusPaused}
}

func (s State) Snapshot() Snapshot {
	switch s.Status {
	case StatusComplete:
		return Snapshot{IsComplete: true, IsPaused: true}
	case StatusRunning:
		return Snapshot{IsComplete: false, IsPaused: false}
	default:
		return Snapshot{IsComplete: false, IsPaused: true}
	}
}

func Apply(s State, cmd Command) ([]Event, State, error) {
	if s.Status == StatusComplete {
		return nil, s, ErrDraftCompleted
	}

	newState := s

	switch cmd.Type {
	case CmdStart:
		if s.Status == StatusRunning {
			return nil, s, ErrAlreadyRunning
		}
		newState.Status = StatusRunning
		return []Event{{Type: EvtStarted}}, newState, nil

	case CmdPause:
		if s.Status != StatusRunning {
			return nil, s, ErrAlreadyPaused
		}
		newState.Status = StatusPaused
		return []Event{{Type: EvtPaused}}, newState, nil

	case CmdComplete:
		newState.Status = StatusComplete
		return []Event{{Type: EvtCompleted}}, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func Reduce(events []Event) State {
	s := NewState()
	for _, event := range events {
		switch event.Type {
		case EvtStarted:
			s.Status = StatusRunning
		case EvtPaused:
			s.Status = StatusPaused
		case EvtCompleted:
			s.Status = StatusComplete
		}
	}
	return s
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
