// Package process implements the external-process collaborator.
package process

import (
	"context"
	"os/exec"

	shellquote "github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/origadmin/scaffold/internal/errors"
)

// Runner invokes an external command in a working directory. Only the exit
// status is reported; output is not captured.
type Runner interface {
	Run(ctx context.Context, command, dir string) (int, error)
}

// ExecRunner runs commands with os/exec after splitting them with shell
// quoting rules. The command is never passed to a shell.
type ExecRunner struct {
	log *zap.SugaredLogger
}

// NewExecRunner creates a Runner for the host.
func NewExecRunner(log *zap.SugaredLogger) *ExecRunner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ExecRunner{log: log}
}

// Run executes command in dir. A non-zero exit returns the status together
// with an error marked ErrProcessFailed.
func (r *ExecRunner) Run(ctx context.Context, command, dir string) (int, error) {
	args, err := Split(command)
	if err != nil {
		return -1, err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	r.log.Debugw("running command", "command", command, "dir", dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return code, errors.Markf(errors.ErrProcessFailed, "%q in %s exited with status %d", command, dir, code)
		}
		return -1, errors.Wrapf(err, "run %q", command)
	}
	return 0, nil
}

// Split parses a command line into argv using POSIX shell quoting.
func Split(command string) ([]string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "parse command %q", command)
	}
	if len(args) == 0 {
		return nil, errors.Newf("empty command")
	}
	return args, nil
}

// DryRunner records commands instead of running them and reports success.
type DryRunner struct {
	Commands []string
	log      *zap.SugaredLogger
}

// NewDryRunner creates a DryRunner.
func NewDryRunner(log *zap.SugaredLogger) *DryRunner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DryRunner{log: log}
}

func (r *DryRunner) Run(_ context.Context, command, dir string) (int, error) {
	if _, err := Split(command); err != nil {
		return -1, err
	}
	r.log.Infow("skipping command in dry run", "command", command, "dir", dir)
	r.Commands = append(r.Commands, command)
	return 0, nil
}
