package widgets

import "errors"

var (
	// ErrUnknownKind is returned when no factory is registered for a kind.
	ErrUnknownKind = errors.New("widgets: unknown widget kind")
	// ErrConstruction is returned when a registered factory fails to produce a
	// widget.
	ErrConstruction = errors.New("widgets: widget construction failed")
	// ErrUnknownOption is returned when selecting a label that was never added.
	ErrUnknownOption = errors.New("widgets: unknown option")
	// ErrSingleSelect is returned when selecting several labels on a
	// single-select widget.
	ErrSingleSelect = errors.New("widgets: widget accepts a single selection")
)
