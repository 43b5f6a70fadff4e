package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/umfat/helpdesk/pkg/agent"
	"github.com/umfat/helpdesk/pkg/config"
	"github.com/umfat/helpdesk/pkg/llms"
	"github.com/umfat/helpdesk/pkg/support"
)

// TriageCmd is the minimal chat variant: a triage agent hands questions off
// to billing, technical, or general specialists, each with one lookup tool.
type TriageCmd struct{}

func (c *TriageCmd) Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing API key is not checked here; the request simply fails at
	// call time.
	provider, err := llms.New(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	defer provider.Close()

	user := support.NewUserContext(cfg.User)
	team := support.NewTriageTeam(user)
	runner := agent.NewRunner(provider)

	fmt.Printf("Helpdesk triage (%s). Ask a question, or \"quit\" to exit.\n", provider.ModelName())

	return runREPL(ctx, os.Stdin, os.Stdout, func(ctx context.Context, prompt string) error {
		result, err := runner.Run(ctx, team.Triage, prompt)
		if err != nil {
			return err
		}

		fmt.Printf("\n%s: %s\n", result.LastAgent, result.FinalOutput)
		return nil
	})
}
