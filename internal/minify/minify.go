// SPDX-License-Identifier: MPL-2.0

// Package minify runs an external minifier over a built library.
//
// The command line is a single shell-style string such as
//
//	java -jar yui.jar --type {ext} --line-break 500 {in} -o {out}
//
// It is split into words with shell quoting rules and $VAR expansion, then
// {in}, {out} and {ext} are substituted inside each word. The command runs
// directly, without a shell, so pipes and redirections are rejected.
package minify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultCommand is the YUI Compressor invocation used when no minifier
// command is configured.
const DefaultCommand = "java -jar yui.jar --type {ext} --line-break 500 {in} -o {out}"

const (
	placeholderIn  = "{in}"
	placeholderOut = "{out}"
	placeholderExt = "{ext}"

	maxStderr = 64 << 10
)

var (
	// ErrMinifierFailed is the sentinel error wrapped by Error.
	ErrMinifierFailed = errors.New("minifier failed")
	// ErrInvalidCommand is returned when a command line cannot be parsed
	// into a single simple command.
	ErrInvalidCommand = errors.New("invalid minifier command")
)

type (
	// Options configures a Minifier.
	Options struct {
		// Command is the command line template. Empty means DefaultCommand.
		Command string
		// Dir is the working directory of the process. Empty means the
		// current directory.
		Dir string
		// Env is appended to the process environment of the minifier.
		Env []string
		// Logger receives the resolved command line. nil discards it.
		Logger *slog.Logger
	}

	// Minifier runs a configured external command.
	Minifier struct {
		words  []string
		dir    string
		env    []string
		logger *slog.Logger
	}

	// Error describes a failed minifier run.
	Error struct {
		// Args is the resolved command line.
		Args []string
		// ExitCode is the process exit code, or -1 when the process did not
		// run to completion.
		ExitCode int
		// Stderr holds the (possibly truncated) standard error output.
		Stderr string
		// Err is the underlying cause, if any.
		Err error
	}
)

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(ErrMinifierFailed.Error())
	if len(e.Args) > 0 {
		fmt.Fprintf(&b, " (%s)", e.Args[0])
	}
	switch {
	case e.Err != nil:
		fmt.Fprintf(&b, ": %v", e.Err)
	case e.ExitCode >= 0:
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&b, ": %s", stderr)
	}
	return b.String()
}

// Unwrap returns ErrMinifierFailed and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMinifierFailed}
	}
	return []error{ErrMinifierFailed, e.Err}
}

// New parses opts.Command and returns a Minifier.
func New(opts Options) (*Minifier, error) {
	cmdline := opts.Command
	if strings.TrimSpace(cmdline) == "" {
		cmdline = DefaultCommand
	}

	words, err := splitCommand(cmdline)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Minifier{
		words:  words,
		dir:    opts.Dir,
		env:    append([]string(nil), opts.Env...),
		logger: logger,
	}, nil
}

// Args returns the command line that Run would execute for in and out.
// {ext} is the extension of in without the leading dot.
func (m *Minifier) Args(in, out string) []string {
	ext := strings.TrimPrefix(filepath.Ext(in), ".")
	replacer := strings.NewReplacer(placeholderIn, in, placeholderOut, out, placeholderExt, ext)

	args := make([]string, len(m.words))
	for i, w := range m.words {
		args[i] = replacer.Replace(w)
	}
	return args
}

// Run minifies in into out and blocks until the process exits. A non-zero
// exit, a missing executable and a zero exit without an output file are all
// reported as *Error.
func (m *Minifier) Run(ctx context.Context, in, out string) error {
	args := m.Args(in, out)
	m.logger.Debug("running minifier", "command", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = m.dir
	if len(m.env) > 0 {
		cmd.Env = append(os.Environ(), m.env...)
	}

	var stdout bytes.Buffer
	stderr := &limitedBuffer{limit: maxStderr}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &Error{Args: args, ExitCode: -1, Stderr: stderr.String(), Err: ctxErr}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Error{Args: args, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return &Error{Args: args, ExitCode: -1, Stderr: stderr.String(), Err: err}
	}

	if stdout.Len() > 0 {
		m.logger.Debug("minifier output", "stdout", strings.TrimSpace(stdout.String()))
	}

	if _, err := os.Stat(out); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Args: args, ExitCode: 0, Stderr: stderr.String(),
				Err: fmt.Errorf("no output written to %s: %w", out, fs.ErrNotExist)}
		}
		return &Error{Args: args, ExitCode: 0, Err: err}
	}
	return nil
}

// splitCommand parses cmdline as one simple shell command and expands its
// words. Command substitution and globbing are not performed.
func splitCommand(cmdline string) ([]string, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(cmdline), "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	if len(file.Stmts) != 1 {
		return nil, fmt.Errorf("%w: want exactly one command, got %d", ErrInvalidCommand, len(file.Stmts))
	}

	stmt := file.Stmts[0]
	call, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok || stmt.Background || stmt.Negated || len(stmt.Redirs) > 0 || len(call.Assigns) > 0 {
		return nil, fmt.Errorf("%w: only a plain command with arguments is supported", ErrInvalidCommand)
	}

	cfg := &expand.Config{Env: expand.FuncEnviron(os.Getenv)}
	words, err := expand.Fields(cfg, call.Args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	if len(words) == 0 || words[0] == "" {
		return nil, fmt.Errorf("%w: empty command", ErrInvalidCommand)
	}
	return words, nil
}

// limitedBuffer keeps the first limit bytes written to it and drops the rest.
type limitedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
			b.truncated = true
		} else {
			b.buf.Write(p)
		}
	} else if len(p) > 0 {
		b.truncated = true
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + "\n[stderr truncated]"
	}
	return b.buf.String()
}
