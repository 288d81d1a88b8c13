package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/wotscan/pkg/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalidData = 2   // rejected input, graph, config or file format
	ExitInterrupted = 130 // SIGINT convention
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidIndex, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return ExitInvalidData
	}
	return ExitFailure
}

// ReportError logs a failed command. Interruptions are not reported.
func (c *CLI) ReportError(err error) {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return
	}
	if code := errors.GetCode(err); code != "" {
		c.Logger.Error(errors.UserMessage(err), "code", code)
		return
	}
	c.Logger.Error(err.Error())
}
