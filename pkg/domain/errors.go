package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

var (
	// ErrInvalidLength is returned when a trimmed name is empty or longer than MaxNameLength.
	ErrInvalidLength = errors.New("invalid name length")

	// ErrDuplicateName is returned when a list name is already taken by another list.
	ErrDuplicateName = errors.New("duplicate list name")

	// ErrNotFound is returned when a list or todo id does not resolve.
	ErrNotFound = errors.New("not found")
)

// User facing messages shown through the flash slot.
const (
	MsgInvalidLength = "Please enter a name between 1 and 100 characters."
	MsgDuplicateName = "Please enter a unique list name."
	MsgListNotFound  = "The specified list was not found."
	MsgTodoNotFound  = "The specified todo was not found."
)

// Message maps a validation error to the text shown to the user.
// Errors outside the domain map to an empty string.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateName):
		return MsgDuplicateName
	case errors.Is(err, ErrInvalidLength):
		return MsgInvalidLength
	default:
		return ""
	}
}
