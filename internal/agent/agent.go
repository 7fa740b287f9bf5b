package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jondoescoding/kryptt/internal/memory"
	"github.com/jondoescoding/kryptt/internal/provider"
	"github.com/jondoescoding/kryptt/internal/tool"
)

// ChatResponse is the message an agent sends back to the user.
type ChatResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config assembles one agent's identity and dependencies.
type Config struct {
	// Name keys the agent's conversation memory and appears in logs.
	Name string

	// SystemPrompt frames every model call. It is never stored in memory.
	SystemPrompt string

	// Registry holds the tools this agent may dispatch.
	Registry *tool.Registry

	// Memory is the shared conversation store, keyed by Name.
	Memory memory.ConversationStore

	// ProviderFactory builds the model client lazily, so credentials
	// saved after startup take effect on the next message.
	ProviderFactory provider.Factory

	// Loop tunes the reasoning cycle. Zero fields use defaults.
	Loop LoopConfig

	Logger *slog.Logger
}

// Agent is one named assistant: a system prompt, a tool set, and a slice
// of the shared conversation memory.
type Agent struct {
	name            string
	systemPrompt    string
	registry        *tool.Registry
	memory          memory.ConversationStore
	providerFactory provider.Factory
	loopConfig      LoopConfig
	logger          *slog.Logger
}

// New creates an Agent from cfg.
func New(cfg Config) *Agent {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		name:            cfg.Name,
		systemPrompt:    cfg.SystemPrompt,
		registry:        cfg.Registry,
		memory:          cfg.Memory,
		providerFactory: cfg.ProviderFactory,
		loopConfig:      cfg.Loop.withDefaults(),
		logger:          logger.With("agent", cfg.Name),
	}
}

// Name returns the agent's identifier.
func (a *Agent) Name() string { return a.name }

// Chat processes one user message and returns the assistant's reply.
//
// The user message is recorded in memory before the loop runs, and the
// reply is recorded after, so both survive for the next turn within the
// store's bound. Failures never escape as errors: whatever goes wrong is
// rendered as assistant content so the conversation can continue.
func (a *Agent) Chat(ctx context.Context, message string) ChatResponse {
	a.memory.Append(a.name, provider.Message{
		Role:    provider.MessageRoleUser,
		Content: message,
	})

	reply := a.run(ctx)

	a.memory.Append(a.name, provider.Message{
		Role:    provider.MessageRoleAssistant,
		Content: reply,
	})
	return ChatResponse{Role: string(provider.MessageRoleAssistant), Content: reply}
}

func (a *Agent) run(ctx context.Context) string {
	p, err := a.providerFactory()
	if err != nil {
		a.logger.Warn("provider unavailable", "error", err)
		return fmt.Sprintf("I can't reach the language model right now: %v", err)
	}

	history, summary := a.memory.Context(a.name)
	messages := make([]provider.Message, 0, len(history)+2)
	if a.systemPrompt != "" {
		messages = append(messages, provider.Message{
			Role:    provider.MessageRoleSystem,
			Content: a.systemPrompt,
		})
	}
	if summary != "" {
		messages = append(messages, provider.Message{
			Role:    provider.MessageRoleSystem,
			Content: "Summary of the conversation so far: " + summary,
		})
	}
	messages = append(messages, history...)

	loop := NewLoop(p, NewToolExecutor(a.registry), a.loopConfig)
	resp, err := loop.Run(ctx, messages, a.registry.Definitions())
	if err != nil {
		a.logger.Error("reasoning loop failed",
			"error", err,
			"iterations", resp.Iterations,
			"stop_reason", resp.StopReason,
		)
		return fmt.Sprintf("I ran into a problem while processing your request: %v", err)
	}

	a.logger.Info("chat turn complete",
		"iterations", resp.Iterations,
		"tool_calls", len(resp.ToolCalls),
	)
	return resp.Content
}
