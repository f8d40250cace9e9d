package suite

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/tostitos/toslang-test-harness/config"
	"github.com/tostitos/toslang-test-harness/framework"
	"github.com/tostitos/toslang-test-harness/framework/helpers"
	"github.com/tostitos/toslang-test-harness/sample"
)

// Comparison decides what the captured standard output is compared against the expected results
// as. The comparison itself is always exact equality.
type Comparison interface {
	Name() string
	Actual(stdout []byte) interface{}
}

// StrictComparison compares the captured output as one opaque text value against the sequence of
// expected results. A text value is never equal to a sequence, so every sample fails under this
// comparison; it is the default because it is how the harness has always compared, and the
// intended rule has not been settled.
type StrictComparison struct{}

func (StrictComparison) Name() string { return config.CompareStrict }

func (StrictComparison) Actual(stdout []byte) interface{} { return string(stdout) }

// LineComparison splits the captured output into lines and compares them one for one with the
// expected results. Only '\n' separates lines and a single final newline does not start a new
// line; nothing else is normalised.
type LineComparison struct{}

func (LineComparison) Name() string { return config.CompareLines }

func (LineComparison) Actual(stdout []byte) interface{} { return splitLines(string(stdout)) }

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ComparisonByName returns the comparison for a config.Compare* name.
func ComparisonByName(name string) (Comparison, error) {
	switch name {
	case config.CompareStrict, "":
		return StrictComparison{}, nil
	case config.CompareLines:
		return LineComparison{}, nil
	default:
		return nil, fmt.Errorf("unknown comparison %q", name)
	}
}

// Matches returns true if the actual value produced by a Comparison equals the expected results.
func Matches(expected sample.Expectations, actual interface{}) bool {
	return assert.ObjectsAreEqual(expectedValue(expected), actual)
}

func expectedValue(expected sample.Expectations) []string {
	if expected == nil {
		return []string{}
	}
	return []string(expected)
}

// checkOutput reports a failure to t unless stdout matches the expected results under c. The
// difference is written to debug.
func checkOutput(
	t helpers.TestContext,
	debug framework.Logger,
	c Comparison,
	expected sample.Expectations,
	stdout []byte,
) bool {
	actual := c.Actual(stdout)
	if Matches(expected, actual) {
		return true
	}
	assert.Equal(t, expectedValue(expected), actual, "interpreter output does not match (%s comparison)", c.Name())
	debug.Printf("difference (-expected +actual):\n%s", cmp.Diff(expectedValue(expected), actual))
	return false
}
