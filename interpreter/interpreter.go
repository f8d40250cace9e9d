// Package interpreter runs the external TosLang interpreter against one sample program and
// captures what it writes. The interpreter is treated as a black box: only its standard streams
// and exit status are observed.
package interpreter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/tostitos/toslang-test-harness/framework"
	"github.com/tostitos/toslang-test-harness/framework/opt"
)

const (
	// DefaultName is the executable looked up in the interpreter directory.
	DefaultName = "TosLang"

	// DefaultArg is passed before the sample path to select interpretation mode.
	DefaultArg = "-interpret"

	// waitDelay bounds how long Run waits for the output pipes after the interpreter has exited
	// or been killed, in case it left a child process holding them open.
	waitDelay = 5 * time.Second
)

// ErrTimedOut is returned by Run when the interpreter was killed for exceeding its timeout.
var ErrTimedOut = errors.New("interpreter timed out")

// Interpreter describes how to invoke the interpreter executable.
type Interpreter struct {
	// Path is the executable to run.
	Path string

	// Args are passed before the sample path.
	Args []string

	// Timeout, if non-zero, kills the interpreter if it has not exited in time.
	Timeout time.Duration

	Logger framework.Logger
}

// Outcome is the captured result of one interpreter invocation.
type Outcome struct {
	Stdout []byte
	Stderr []byte

	// ExitStatus is undefined if the process did not exit normally, for instance if it was
	// killed by a signal.
	ExitStatus opt.Maybe[int]

	Duration time.Duration
}

// Succeeded returns true if the interpreter exited normally with status zero.
func (o Outcome) Succeeded() bool {
	return o.ExitStatus.IsDefined() && o.ExitStatus.Value() == 0
}

// New returns the default invocation: <execDir>/<name> -interpret <sample>. An empty name means
// DefaultName, and nil args mean DefaultArg.
//
// The path always names a file in execDir, even when execDir is "." or empty; it is never
// looked up in $PATH.
func New(execDir, name string, args []string) Interpreter {
	if name == "" {
		name = DefaultName
	}
	if args == nil {
		args = []string{DefaultArg}
	}
	path := filepath.Join(execDir, name)
	if !strings.ContainsRune(path, filepath.Separator) {
		path = "." + string(filepath.Separator) + path
	}
	return Interpreter{
		Path: path,
		Args: args,
	}
}

// Command returns the full argument list used to run the interpreter on samplePath.
func (i Interpreter) Command(samplePath string) []string {
	return append(append([]string{i.Path}, i.Args...), samplePath)
}

// Run invokes the interpreter on samplePath with an empty standard input, waits for it to exit,
// and returns everything it wrote. A non-zero exit status is reported in the Outcome, not as an
// error; an error means the interpreter could not be run or did not finish.
//
// The child process has always been reaped when Run returns.
func (i Interpreter) Run(ctx context.Context, samplePath string) (Outcome, error) {
	logger := i.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	if i.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, i.Path, append(slices.Clone(i.Args), samplePath)...) //nolint:gosec
	cmd.Stdin = nil // reads from the null device, so the interpreter sees end of input at once
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	logger.Printf("running %q", i.Command(samplePath))
	start := time.Now()
	err := cmd.Run()
	outcome := Outcome{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}
	if ps := cmd.ProcessState; ps != nil && ps.Exited() {
		outcome.ExitStatus = opt.Some(ps.ExitCode())
	}
	logger.Printf("interpreter finished in %s with exit status %s", outcome.Duration, outcome.ExitStatus)

	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return outcome, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return outcome, fmt.Errorf("%w after %s", ErrTimedOut, outcome.Duration.Round(time.Millisecond))
		}
		return outcome, fmt.Errorf("interpreter was stopped: %w", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return outcome, nil
	}
	return outcome, fmt.Errorf("cannot run interpreter %q: %w", i.Path, err)
}
