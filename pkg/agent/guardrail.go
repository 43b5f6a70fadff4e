package agent

import (
	"context"
	"errors"
	"fmt"
)

// OutputGuardrail is a post-hoc validation check on a finished run. A non-nil
// error from Check rejects the run; wrap the reason in a GuardrailError so
// callers can recover from policy rejections specifically.
type OutputGuardrail interface {
	Name() string

	Check(ctx context.Context, result *RunResult) error
}

// GuardrailError reports a run rejected by an output guardrail.
type GuardrailError struct {
	Guardrail string
	Reason    string
}

func (e *GuardrailError) Error() string {
	return fmt.Sprintf("guardrail %s tripped: %s", e.Guardrail, e.Reason)
}

// IsGuardrailError reports whether err is (or wraps) a guardrail rejection.
func IsGuardrailError(err error) bool {
	var ge *GuardrailError
	return errors.As(err, &ge)
}

// checkGuardrails evaluates the starting agent's guardrails followed by the
// final agent's (when a handoff moved the run elsewhere), wrapping plain
// check errors into GuardrailError.
func checkGuardrails(ctx context.Context, start, final *Agent, result *RunResult) error {
	guardrails := start.OutputGuardrails
	if final != start {
		guardrails = append(append([]OutputGuardrail{}, guardrails...), final.OutputGuardrails...)
	}

	for _, guardrail := range guardrails {
		if err := guardrail.Check(ctx, result); err != nil {
			var ge *GuardrailError
			if errors.As(err, &ge) {
				return err
			}
			return &GuardrailError{
				Guardrail: guardrail.Name(),
				Reason:    err.Error(),
			}
		}
	}
	return nil
}
