package ldtest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/tostitos/toslang-test-harness/framework"
)

func withoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestConsoleTestLoggerReportLines(t *testing.T) {
	withoutColor(t)
	var out, diag strings.Builder
	c := ConsoleTestLogger{Out: &out, Diagnostics: &diag}

	c.TestStarted(TestID{"add.tos"})
	c.TestFinished(TestID{"add.tos"}, false, nil)
	c.TestError(TestID{"sub.tos"}, errors.New("not shown"))
	c.TestFinished(TestID{"sub.tos"}, true, nil)
	c.TestSkipped(TestID{"slow.tos"}, "excluded by filter parameters")
	c.TestSkipped(TestID{"other.tos"}, "")

	assert.Equal(t, "TEST: add.tos: PASSED\n"+
		"TEST: sub.tos: FAILED\n"+
		"TEST: slow.tos: SKIPPED (excluded by filter parameters)\n"+
		"TEST: other.tos: SKIPPED\n", out.String())
	assert.Equal(t, "", diag.String())
}

func TestConsoleTestLoggerDiagnostics(t *testing.T) {
	withoutColor(t)
	when := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	debug := framework.CapturedOutput{{Time: when, Message: "exit status 1"}}

	t.Run("errors and debug output on failure", func(t *testing.T) {
		var out, diag strings.Builder
		c := ConsoleTestLogger{Out: &out, Diagnostics: &diag, ShowErrors: true, DebugOutputOnFailure: true}
		c.TestError(TestID{"sub.tos"}, errors.New("line one\nline two"))
		c.TestFinished(TestID{"sub.tos"}, true, debug)
		c.TestFinished(TestID{"add.tos"}, false, debug)

		assert.Equal(t, "TEST: sub.tos: FAILED\nTEST: add.tos: PASSED\n", out.String())
		assert.Equal(t, "[sub.tos]\n  line one\n  line two\n"+
			"    DEBUG [2024-05-06 07:08:09.000] exit status 1\n", diag.String())
	})

	t.Run("debug output on success", func(t *testing.T) {
		var out, diag strings.Builder
		c := ConsoleTestLogger{Out: &out, Diagnostics: &diag, DebugOutputOnSuccess: true}
		c.TestFinished(TestID{"add.tos"}, false, debug)
		assert.Equal(t, "    DEBUG [2024-05-06 07:08:09.000] exit status 1\n", diag.String())
	})
}

func TestPrintResults(t *testing.T) {
	withoutColor(t)
	root := TestResult{}
	passed := TestResult{TestID: TestID{"add.tos"}}
	failed := TestResult{TestID: TestID{"sub.tos"}, Errors: []error{errors.New("x")}}

	var b strings.Builder
	PrintResults(&b, Results{Tests: []TestResult{passed, root}})
	assert.Equal(t, "All 1 tests passed\n", b.String())

	b.Reset()
	PrintResults(&b, Results{Tests: []TestResult{passed, failed, root}, Failures: []TestResult{failed}})
	assert.Equal(t, "FAILED TESTS (1 of 2):\n  * sub.tos\n", b.String())

	b.Reset()
	PrintResults(&b, Results{Tests: []TestResult{passed}, Aborted: errors.New("x")})
	assert.Equal(t, "Run aborted after 1 tests\n", b.String())
}
