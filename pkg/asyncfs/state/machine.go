// Package state holds the finite state machine that maps task outcomes
// and user flows onto the states a frontend renders.
package state

import (
	"fmt"
)

// State is one application state. Error states carry a message in the
// machine alongside the state value.
type State string

const (
	Initializing      State = "initializing"
	Running           State = "running"
	Loading           State = "loading"
	Settings          State = "settings"
	AddingEntry       State = "adding_entry"
	EditingEntry      State = "editing_entry"
	TagManager        State = "tag_manager"
	CollectionManager State = "collection_manager"
	ImportExport      State = "import_export"
	ErrorState        State = "error"
	Exiting           State = "exiting"
)

// Event drives state transitions.
type Event string

const (
	InitializationComplete Event = "initialization_complete"
	EnterSettings          Event = "enter_settings"
	ExitSettings           Event = "exit_settings"
	StartAddingEntry       Event = "start_adding_entry"
	FinishAddingEntry      Event = "finish_adding_entry"
	CancelAddingEntry      Event = "cancel_adding_entry"
	StartEditingEntry      Event = "start_editing_entry"
	FinishEditingEntry     Event = "finish_editing_entry"
	CancelEditingEntry     Event = "cancel_editing_entry"
	EnterTagManager        Event = "enter_tag_manager"
	ExitTagManager         Event = "exit_tag_manager"
	EnterCollectionManager Event = "enter_collection_manager"
	ExitCollectionManager  Event = "exit_collection_manager"
	EnterImportExport      Event = "enter_import_export"
	ExitImportExport       Event = "exit_import_export"
	StartLoading           Event = "start_loading"
	FinishLoading          Event = "finish_loading"
	ErrorOccurred          Event = "error"
	RecoverFromError       Event = "recover_from_error"
	Exit                   Event = "exit"
)

// transition is one allowed from-state/event/to-state rule.
type transition struct {
	from  State
	event Event
	to    State
}

// Listener observes completed transitions.
type Listener func(current State, previous State)

// Machine is the application state machine. The zero value is not
// usable; construct with New.
type Machine struct {
	current   State
	previous  State
	hasPrev   bool
	errMsg    string
	rules     []transition
	history   []State
	maxHist   int
	listeners []Listener
}

// New creates a machine in the Initializing state with the standard
// transition table.
func New() *Machine {
	m := &Machine{
		current: Initializing,
		maxHist: 50,
	}
	m.rules = []transition{
		{Initializing, InitializationComplete, Running},

		{Running, EnterSettings, Settings},
		{Running, StartAddingEntry, AddingEntry},
		{Running, StartEditingEntry, EditingEntry},
		{Running, EnterTagManager, TagManager},
		{Running, EnterCollectionManager, CollectionManager},
		{Running, EnterImportExport, ImportExport},
		{Running, StartLoading, Loading},
		{Running, Exit, Exiting},

		{Settings, ExitSettings, Running},
		{AddingEntry, FinishAddingEntry, Running},
		{AddingEntry, CancelAddingEntry, Running},
		{EditingEntry, FinishEditingEntry, Running},
		{EditingEntry, CancelEditingEntry, Running},
		{TagManager, ExitTagManager, Running},
		{CollectionManager, ExitCollectionManager, Running},
		{ImportExport, ExitImportExport, Running},
		{Loading, FinishLoading, Running},

		{ErrorState, RecoverFromError, Running},
		{ErrorState, Exit, Exiting},
	}
	return m
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Previous returns the state before the last transition, and whether
// one exists.
func (m *Machine) Previous() (State, bool) {
	return m.previous, m.hasPrev
}

// ErrorMessage returns the message of the current error state, empty
// otherwise.
func (m *Machine) ErrorMessage() string {
	if m.current != ErrorState {
		return ""
	}
	return m.errMsg
}

// History returns past states, oldest first, bounded in length.
func (m *Machine) History() []State {
	out := make([]State, len(m.history))
	copy(out, m.history)
	return out
}

// AddListener registers a listener for completed transitions.
func (m *Machine) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Handle applies an event. Unknown or disallowed transitions return an
// error and leave the state unchanged.
func (m *Machine) Handle(event Event) error {
	// Any state may fail; Fail carries the message.
	if event == ErrorOccurred {
		m.transitionTo(ErrorState)
		return nil
	}

	for _, rule := range m.rules {
		if rule.from == m.current && rule.event == event {
			m.transitionTo(rule.to)
			return nil
		}
	}
	return fmt.Errorf("invalid state transition: %s on event %s", m.current, event)
}

// CanHandle reports whether Handle would accept event in the current
// state.
func (m *Machine) CanHandle(event Event) bool {
	if event == ErrorOccurred {
		return true
	}
	for _, rule := range m.rules {
		if rule.from == m.current && rule.event == event {
			return true
		}
	}
	return false
}

// Fail moves the machine into the error state with a message. Allowed
// from every state.
func (m *Machine) Fail(message string) {
	m.errMsg = message
	m.transitionTo(ErrorState)
}

// GoBack returns to the state before the last transition, bypassing
// the transition table. It fails when no transition has happened yet.
func (m *Machine) GoBack() error {
	if !m.hasPrev {
		return fmt.Errorf("no previous state to go back to")
	}
	m.transitionTo(m.previous)
	return nil
}

// ForceState moves directly to next, bypassing the transition table.
// Listeners and history observe it like any transition.
func (m *Machine) ForceState(next State) {
	m.transitionTo(next)
}

func (m *Machine) transitionTo(next State) {
	m.previous = m.current
	m.hasPrev = true
	m.history = append(m.history, m.current)
	if len(m.history) > m.maxHist {
		m.history = m.history[len(m.history)-m.maxHist:]
	}
	if next != ErrorState {
		m.errMsg = ""
	}
	m.current = next

	for _, l := range m.listeners {
		l(m.current, m.previous)
	}
}
