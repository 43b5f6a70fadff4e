package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/umfat/helpdesk/pkg/agent"
)

// isQuit reports whether input is the case-insensitive quit sentinel.
func isQuit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "quit")
}

// runREPL drives the interactive loop: one prompt, one handled request, in
// sequence until the quit sentinel or EOF. Guardrail rejections and other
// request errors are reported and the loop continues; only read failures
// abort.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, handle func(ctx context.Context, prompt string) error) error {
	reader := bufio.NewReader(in)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(out, "\nEnter your question: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if isQuit(input) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		if err := handle(ctx, input); err != nil {
			if agent.IsGuardrailError(err) {
				fmt.Fprintf(out, "\nResponse blocked: %v. Please rephrase your question.\n", err)
				continue
			}
			fmt.Fprintf(out, "\nError: %v\n", err)
		}
	}
}
