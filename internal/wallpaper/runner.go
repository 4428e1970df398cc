package wallpaper

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Output is what an external command printed and how it exited.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports a zero exit status.
func (o Output) Success() bool { return o.ExitCode == 0 }

// Message returns stderr when the tool wrote any, stdout otherwise.
// hyprctl reports its errors on stdout.
func (o Output) Message() string {
	if s := strings.TrimSpace(string(o.Stderr)); s != "" {
		return s
	}
	return strings.TrimSpace(string(o.Stdout))
}

// Runner starts external programs. Run returns an error only when the
// program could not be run at all; a non-zero exit is reported in Output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if exitErr, ok := err.(*exec.ExitError); ok {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}
