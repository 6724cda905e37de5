package application

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrAmbiguous        = errors.New("ambiguous")
	ErrNavigation       = errors.New("navigation error")
	ErrInvalidRange     = errors.New("invalid range")
	ErrInvalidOperation = errors.New("invalid operation")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NavigationError reports a path step that has nowhere to go, such as ".."
// above a date or the permanent root
type NavigationError struct {
	From   string
	Token  string
	Reason string
}

func (e *NavigationError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("cannot resolve %q: %s", e.Token, e.Reason)
	}
	return fmt.Sprintf("cannot resolve %q from %s: %s", e.Token, e.From, e.Reason)
}

func (e *NavigationError) Is(target error) bool {
	return target == ErrNavigation
}

// RangeError reports range endpoints that do not form a valid range
type RangeError struct {
	From   string
	To     string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %s..%s: %s", e.From, e.To, e.Reason)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// NotFoundError reports a missing item or alias. Suggestions holds close
// alias keys when there are any.
type NotFoundError struct {
	Kind        string
	Key         string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Key)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AmbiguousError reports an alias prefix matching several keys. It is not a
// defect: callers offer Candidates for the user to choose from.
type AmbiguousError struct {
	Input      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q is ambiguous: %s", e.Input, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// MoveError represents a move-related failure
type MoveError struct {
	SourceID string
	DestID   string
	Reason   string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %s", e.SourceID, e.DestID, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidOperation
}
