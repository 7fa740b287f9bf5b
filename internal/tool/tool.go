// Package tool defines the tool interface and registry behind which the
// agent loop dispatches trading operations by name.
package tool

import (
	"context"
	"encoding/json"
	"fmt"
)

// Tool is one named operation the reasoning engine may invoke.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what the tool does.
	Description() string

	// Schema returns a JSON Schema describing the tool's parameters.
	Schema() json.RawMessage

	// Execute runs the tool with the given arguments. Failures the user can
	// act on come back as error-flagged Output; only malformed arguments
	// or programming errors return a non-nil error.
	Execute(ctx context.Context, args json.RawMessage) (Output, error)
}

// Output is the result of a tool execution.
type Output struct {
	// Content is the output text from the tool.
	Content string

	// IsError indicates whether the output represents an error condition.
	IsError bool
}

// Errorf builds an error-flagged output from a formatted message.
func Errorf(format string, args ...any) Output {
	return Output{Content: fmt.Sprintf(format, args...), IsError: true}
}
