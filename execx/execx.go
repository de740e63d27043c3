// Package execx runs the external toolchain commands (npm, npx, the
// bridge CLI). Every invocation is sequential and waits for the child to
// exit; output is streamed to webcap's own stdout/stderr.
package execx

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"github.com/xhd2015/xgo/support/cmd"
	"golang.org/x/term"

	"github.com/xhd2015/webcap/toolresolve"
)

// Run executes name with args in dir, streaming output.
//
// The binary is resolved through toolresolve, so tools living only in
// the extra install paths (nvm dirs, ~/.local/bin) run even though the
// process's own PATH never sees them.
//
// In verbose mode the command line is echoed before running. When stdout
// is a terminal the child runs under a pty sized to it, so toolkit CLIs
// keep their progress rendering; otherwise plain pipes are used.
func Run(ctx context.Context, dir string, verbose bool, name string, args ...string) error {
	path, err := toolresolve.LookPath(name)
	if err != nil {
		return err
	}
	if verbose {
		return cmd.Debug().Dir(dir).Run(path, args...)
	}
	if isTerminal() {
		return runPty(ctx, dir, name, path, args...)
	}
	c := exec.CommandContext(ctx, path, args...)
	c.Dir = dir
	c.Env = toolresolve.AppendExtraPaths(os.Environ())
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// Output executes name with args in dir and captures stdout.
func Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	path, err := toolresolve.LookPath(name)
	if err != nil {
		return "", err
	}
	c := exec.CommandContext(ctx, path, args...)
	c.Dir = dir
	c.Env = toolresolve.AppendExtraPaths(os.Environ())
	out, err := c.Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runPty runs the command attached to a pseudo-terminal sized to match
// the current terminal, copying its output through to stdout. path is
// the resolved binary, name is kept for error reporting.
func runPty(ctx context.Context, dir string, name string, path string, args ...string) error {
	c := exec.CommandContext(ctx, path, args...)
	c.Dir = dir
	c.Env = append(toolresolve.AppendExtraPaths(os.Environ()), "TERM=xterm-256color")

	ptmx, err := pty.Start(c)
	if err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	defer ptmx.Close()

	rows, cols := 24, 80
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cols, rows = w, h
	}
	pty.Setsize(ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})

	// the child owns the pty slave; EOF on the master means it exited
	_, _ = io.Copy(os.Stdout, ptmx)

	if err := c.Wait(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
