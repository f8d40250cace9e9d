package suite

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/tostitos/toslang-test-harness/framework"
	"github.com/tostitos/toslang-test-harness/framework/ldtest"
	"github.com/tostitos/toslang-test-harness/interpreter"
	"github.com/tostitos/toslang-test-harness/sample"
)

// Config describes one run over a sample directory.
type Config struct {
	SampleDir   string
	Interpreter interpreter.Interpreter
	Comparison  Comparison

	// Isolate makes a fault while handling one sample (unreadable file, interpreter that cannot
	// be started or times out) fail only that sample. Without it such a fault aborts the run.
	Isolate bool

	// Filter optionally selects samples by name.
	Filter ldtest.Filter

	// Logger receives harness-level debug messages.
	Logger framework.Logger
}

// Run handles every sample in cfg.SampleDir in name order, one at a time, reporting each verdict
// to testLogger as soon as it is known. The returned error is non-nil if the sample directory
// could not be listed or if a fault aborted the run; the results gathered up to that point are
// still returned.
func Run(ctx context.Context, cfg Config, testLogger ldtest.TestLogger) (ldtest.Results, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	if cfg.Comparison == nil {
		cfg.Comparison = StrictComparison{}
	}

	paths, err := sample.List(cfg.SampleDir)
	if err != nil {
		return ldtest.Results{}, err
	}
	logger.Printf("found %d samples in %s", len(paths), cfg.SampleDir)

	results := ldtest.Run(ldtest.TestConfiguration{Filter: cfg.Filter, TestLogger: testLogger}, func(t *ldtest.T) {
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				t.Abort(err)
			}
			t.Run(filepath.Base(path), func(t *ldtest.T) {
				runSample(ctx, t, cfg, path)
			})
		}
	})
	return results, results.Aborted
}

func runSample(ctx context.Context, t *ldtest.T, cfg Config, path string) {
	start := time.Now()
	t.Defer(func() { t.Debug("sample handled in %s", time.Since(start).Round(time.Millisecond)) })

	program, err := sample.Load(path)
	if err != nil {
		fault(t, cfg, err)
	}
	t.Debug("expected results: %q", []string(program.Expected))

	interp := cfg.Interpreter
	interp.Logger = t.DebugLogger()
	outcome, err := interp.Run(ctx, program.Path)
	if err != nil {
		fault(t, cfg, err)
	}
	if !outcome.Succeeded() {
		t.Debug("interpreter exit status %s does not affect the verdict", outcome.ExitStatus)
	}
	if len(outcome.Stderr) != 0 {
		t.Debug("interpreter stderr:\n%s", outcome.Stderr)
	}

	checkOutput(t, t.DebugLogger(), cfg.Comparison, program.Expected, outcome.Stdout)
}

// fault ends the current sample: as a failure when samples are isolated from each other,
// otherwise by aborting the whole run. Cancellation of the run always aborts.
func fault(t *ldtest.T, cfg Config, err error) {
	if cfg.Isolate && !errors.Is(err, context.Canceled) {
		t.Errorf("%s", err)
		t.FailNow()
	}
	t.Abort(err)
}
