// Package agent implements the reasoning loop that turns chat messages
// into trading actions through iterative provider calls and tool
// executions, plus the per-agent conversation handling around it.
package agent

import (
	"encoding/json"
	"time"

	"github.com/jondoescoding/kryptt/internal/tool"
)

// StopReason describes why the reasoning loop terminated.
type StopReason string

// StopReason constants for loop termination.
const (
	StopReasonComplete      StopReason = "complete"
	StopReasonMaxIterations StopReason = "max_iterations"
	StopReasonLoopDetected  StopReason = "loop_detected"
	StopReasonTimeout       StopReason = "timeout"
	StopReasonError         StopReason = "error"
)

// ToolCallRecord tracks one tool invocation during the reasoning loop.
type ToolCallRecord struct {
	ID        string
	Name      string
	Arguments json.RawMessage
	Output    tool.Output
	Duration  time.Duration
	Panicked  bool
}

// Response is the output of one full loop run.
type Response struct {
	Content    string
	ToolCalls  []ToolCallRecord
	Iterations int
	StopReason StopReason
}
