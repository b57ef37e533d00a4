package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/PolarWolf314/envseal/internal/audit"
)

// RunOptions configures the run workflow.
type RunOptions struct {
	// Retrieve locates and opens the artifact. Its Operation is set to "run".
	Retrieve RetrieveOptions

	// Command is the program and its arguments.
	Command []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult contains the outcome of a run operation.
type RunResult struct {
	// ExitCode is the child's exit status.
	ExitCode int

	// Injected is the number of variables added to the child's environment.
	Injected int

	// Skipped lists keys that are not valid variable names.
	Skipped []string

	// AuditErr is set when the audit entry could not be written.
	AuditErr error
}

// Run opens an artifact and executes Command with the recovered variables
// added to the current environment. Variables from the artifact override
// inherited ones with the same name.
//
// A child that starts and exits non-zero is not an error: its status is
// returned in ExitCode. Retrieve errors are returned unchanged.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if len(opts.Command) == 0 {
		return nil, fmt.Errorf("no command given")
	}

	retrieveOpts := opts.Retrieve
	retrieveOpts.Operation = audit.OpRun
	retrieved, err := Retrieve(ctx, retrieveOpts)
	if err != nil {
		return nil, err
	}

	env, skipped := retrieved.Mapping.Environ()
	result := &RunResult{
		Injected: len(env),
		Skipped:  skipped,
		AuditErr: retrieved.AuditErr,
	}

	// #nosec G204 -- Running the user's command is the point of this workflow.
	cmd := exec.CommandContext(ctx, opts.Command[0], opts.Command[1:]...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("running %s: %w", opts.Command[0], err)
	}

	return result, nil
}
