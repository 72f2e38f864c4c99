package domain

import "maps"

// FlashKind tells the renderer how to style a flash message.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-time notification attached to the session.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Todo is a single completable item of a list.
type Todo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// List is a named, ordered collection of todos.
type List struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Todos []Todo `json:"todos"`

	// NextTodoID is the lowest todo id not yet handed out in this list.
	NextTodoID int `json:"next_todo_id,omitempty"`
}

// State represents everything a session holds.
type State struct {
	// Lists are kept in insertion order.
	Lists []List `json:"lists"`

	// Flash is the single read-once message slot. Nil when empty.
	Flash *Flash `json:"flash,omitempty"`

	// NextListID is the lowest list id not yet handed out in this session.
	NextListID int `json:"next_list_id,omitempty"`

	// Meta is opaque to the domain. Store middleware keeps its own records here.
	Meta map[string]string `json:"meta,omitempty"`
}

// NewState creates an empty session state.
func NewState() *State {
	return &State{Lists: []List{}}
}

// SetFlash replaces whatever message occupies the flash slot.
func (s *State) SetFlash(kind FlashKind, message string) {
	s.Flash = &Flash{Kind: kind, Message: message}
}

// PopFlash returns the pending flash message and clears the slot.
func (s *State) PopFlash() *Flash {
	f := s.Flash
	s.Flash = nil
	return f
}

// Snapshot returns a deep copy of the state so callers can't mutate shared slices.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	c := &State{
		Lists:      make([]List, len(s.Lists)),
		NextListID: s.NextListID,
		Meta:       maps.Clone(s.Meta),
	}
	if s.Flash != nil {
		f := *s.Flash
		c.Flash = &f
	}
	for i, l := range s.Lists {
		l.Todos = append([]Todo{}, l.Todos...)
		c.Lists[i] = l
	}
	return c
}
