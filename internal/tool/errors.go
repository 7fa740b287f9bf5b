package tool

import "errors"

// Sentinel errors for registry operations.
var (
	// ErrToolNotFound indicates no tool with the requested name is registered.
	ErrToolNotFound = errors.New("tool: not found")

	// ErrDuplicateTool indicates a tool with the same name is already registered.
	ErrDuplicateTool = errors.New("tool: duplicate name")

	// ErrEmptyToolName indicates a tool was registered with a blank name.
	ErrEmptyToolName = errors.New("tool: empty name")
)
