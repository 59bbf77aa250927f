package dnf

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rs/zerolog"
)

// Result carries the captured output of one engine command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes engine commands. The production implementation shells out;
// tests substitute scripted output.
type Runner interface {
	Run(ctx context.Context, command string, args ...string) (Result, error)
}

type execRunner struct {
	log zerolog.Logger
}

func (r execRunner) Run(ctx context.Context, command string, args ...string) (Result, error) {
	r.log.Debug().Str("command", command).Strs("args", args).Msg("running engine command")

	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	return res, err
}
