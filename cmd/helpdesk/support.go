package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/umfat/helpdesk/pkg/agent"
	"github.com/umfat/helpdesk/pkg/config"
	"github.com/umfat/helpdesk/pkg/llms"
	"github.com/umfat/helpdesk/pkg/support"
)

// SupportCmd is the full chat variant: keyword issue classification before
// every request, a premium-gated refund tool, a product catalog lookup, a
// technical-routing guardrail, and streamed output.
type SupportCmd struct {
	// Stream stays nil when neither --stream nor --no-stream is given, so
	// the config file can decide.
	Stream *bool `negatable:"" help:"Stream responses incrementally (default on; --no-stream to disable). Overrides the config file."`
}

// resolveStreaming decides streaming mode: the flag when given, the config
// value otherwise, on by default.
func resolveStreaming(flag *bool, cfg *config.Config) bool {
	if flag != nil {
		return *flag
	}
	return config.BoolValue(cfg.Streaming, true)
}

func (c *SupportCmd) Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("missing API key for provider %s: set %s or api_key in the config file",
			cfg.LLM.Provider, config.APIKeyEnvVar(cfg.LLM.Provider))
	}

	streaming := resolveStreaming(c.Stream, cfg)

	provider, err := llms.New(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	defer provider.Close()

	user := support.NewUserContext(cfg.User)
	team := support.NewSupportTeam(user)
	runner := agent.NewRunner(provider)

	fmt.Printf("Helpdesk support (%s). Ask a question, or \"quit\" to exit.\n", provider.ModelName())
	fmt.Printf("Customer: %s (premium: %t)\n", user.Name, user.Premium)

	return runREPL(ctx, os.Stdin, os.Stdout, func(ctx context.Context, prompt string) error {
		requestID := uuid.NewString()

		user.IssueType = support.DetectIssueType(prompt)
		fmt.Printf("[issue type: %s]\n", user.IssueType)

		slog.Info("Request started", "request_id", requestID, "issue_type", user.IssueType)
		start := time.Now()

		var result *agent.RunResult
		var runErr error
		if streaming {
			result, runErr = c.runStreaming(ctx, runner, team.Triage, prompt)
		} else {
			result, runErr = runner.Run(ctx, team.Triage, prompt)
		}
		if runErr != nil {
			slog.Info("Request failed", "request_id", requestID, "duration", time.Since(start))
			return runErr
		}

		fmt.Printf("\n\n%s: %s\n", result.LastAgent, result.FinalOutput)
		slog.Info("Request completed", "request_id", requestID,
			"agent", result.LastAgent, "turns", result.Turns,
			"tokens", result.TokensUsed, "duration", time.Since(start))
		return nil
	})
}

// runStreaming prints text chunks as they arrive and returns the final
// result from the terminal event.
func (c *SupportCmd) runStreaming(ctx context.Context, runner *agent.Runner, start *agent.Agent, prompt string) (*agent.RunResult, error) {
	events, err := runner.RunStreaming(ctx, start, prompt)
	if err != nil {
		return nil, err
	}

	for event := range events {
		switch event.Type {
		case agent.EventTypeText:
			fmt.Print(event.Text)
		case agent.EventTypeHandoff:
			fmt.Printf("\n[handoff -> %s]\n", event.ToolName)
		case agent.EventTypeToolCall:
			fmt.Printf("\n[tool: %s]\n", event.ToolName)
		case agent.EventTypeDone:
			return event.Result, nil
		case agent.EventTypeError:
			return nil, event.Err
		}
	}

	return nil, fmt.Errorf("stream ended without a result")
}
