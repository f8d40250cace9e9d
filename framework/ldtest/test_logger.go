package ldtest

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/tostitos/toslang-test-harness/framework"
	"github.com/tostitos/toslang-test-harness/framework/helpers"
)

var consoleTestErrorColor = color.New(color.FgYellow)              //nolint:gochecknoglobals
var consoleTestPassedColor = color.New(color.FgGreen)              //nolint:gochecknoglobals
var consoleTestFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consoleTestSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleDebugOutputColor = color.New(color.Faint)               //nolint:gochecknoglobals

const (
	VerdictPassed = "PASSED"
	VerdictFailed = "FAILED"
)

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput framework.CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                  {}
func (n nullTestLogger) TestError(TestID, error)                             {}
func (n nullTestLogger) TestFinished(TestID, bool, framework.CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                          {}

// ConsoleTestLogger writes one report line per finished test to Out, in the form
// "TEST: <id>: PASSED" or "TEST: <id>: FAILED". Everything else it can show (failure messages,
// captured debug output) goes to Diagnostics so the report stays one line per test.
type ConsoleTestLogger struct {
	Out                  io.Writer // defaults to os.Stdout
	Diagnostics          io.Writer // defaults to os.Stderr
	ShowErrors           bool
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c ConsoleTestLogger) diagnostics() io.Writer {
	if c.Diagnostics == nil {
		return os.Stderr
	}
	return c.Diagnostics
}

func (c ConsoleTestLogger) TestStarted(id TestID) {}

func (c ConsoleTestLogger) TestError(id TestID, err error) {
	if !c.ShowErrors {
		return
	}
	message := err.Error()
	var withStack ErrorWithStacktrace
	if errors.As(err, &withStack) {
		message = withStack.Detail()
	}
	w := c.diagnostics()
	helpers.MustFprintf(w, "[%s]\n", id)
	for _, line := range strings.Split(message, "\n") {
		_, _ = consoleTestErrorColor.Fprintf(w, "  %s\n", line)
	}
}

func (c ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput framework.CapturedOutput) {
	verdict := helpers.IfElse(failed, consoleTestFailedColor, consoleTestPassedColor).
		Sprint(helpers.IfElse(failed, VerdictFailed, VerdictPassed))
	helpers.MustFprintf(c.out(), "TEST: %s: %s\n", id, verdict)

	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		_, _ = consoleDebugOutputColor.Fprintln(c.diagnostics(), debugOutput.ToString("    DEBUG "))
	}
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		helpers.MustFprintf(c.out(), "TEST: %s: %s\n", id, consoleTestSkippedColor.Sprint("SKIPPED"))
	} else {
		helpers.MustFprintf(c.out(), "TEST: %s: %s\n", id, consoleTestSkippedColor.Sprintf("SKIPPED (%s)", reason))
	}
}

// PrintResults writes a human-readable summary of the run.
func PrintResults(w io.Writer, results Results) {
	switch {
	case results.Aborted != nil:
		_, _ = consoleTestFailedColor.Fprintf(w, "Run aborted after %d tests\n", countNamed(results.Tests))
	case len(results.Failures) == 0:
		_, _ = consoleTestPassedColor.Fprintf(w, "All %d tests passed\n", countNamed(results.Tests))
	default:
		_, _ = consoleTestFailedColor.Fprintf(w, "FAILED TESTS (%d of %d):\n",
			len(results.Failures), countNamed(results.Tests))
		for _, f := range results.Failures {
			_, _ = consoleTestFailedColor.Fprintf(w, "  * %s\n", f.TestID)
		}
	}
}

// countNamed ignores the unnamed root scope created by Run.
func countNamed(tests []TestResult) int {
	n := 0
	for _, t := range tests {
		if len(t.TestID) != 0 {
			n++
		}
	}
	return n
}
