package ldtest

import (
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult

	// Aborted is the error passed to T.Abort, if any test aborted the run. Tests that had not
	// started at that point are not included in Tests.
	Aborted error
}

type TestResult struct {
	TestID TestID
	Errors []error
}

// OK returns true if no test failed and the run was not aborted.
func (r Results) OK() bool {
	return len(r.Failures) == 0 && r.Aborted == nil
}

// Failed returns true if this result represents a failed test.
func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

func (f TestFailure) Unwrap() error {
	return f.Err
}
