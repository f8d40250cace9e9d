package main

import (
	"bufio"
	"context"
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/tostitos/toslang-test-harness/config"
	"github.com/tostitos/toslang-test-harness/framework"
	"github.com/tostitos/toslang-test-harness/framework/helpers"
	"github.com/tostitos/toslang-test-harness/framework/ldtest"
	"github.com/tostitos/toslang-test-harness/interpreter"
	"github.com/tostitos/toslang-test-harness/suite"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	fmt.Fprintf(os.Stderr, "toslang-test-harness v%s\n", strings.TrimSpace(versionString))

	var params commandParams
	if !params.Read(os.Args, os.Stderr) {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	results, settings, err := run(ctx, params, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitStatus(settings, results))
}

// exitStatus is 0 for a run that completed. Failed samples only make it 1 with StrictExit.
func exitStatus(settings config.Harness, results ldtest.Results) int {
	if settings.StrictExit && !results.OK() {
		return 1
	}
	return 0
}

func run(ctx context.Context, params commandParams, out, errOut io.Writer) (ldtest.Results, config.Harness, error) {
	settings, err := params.settings()
	if err != nil {
		return ldtest.Results{}, settings, err
	}
	applyColorMode(params.color, out)

	filters := params.filters
	for _, name := range settings.Skip {
		if err := filters.MustNotMatch.SetLiteral(name); err != nil {
			return ldtest.Results{}, settings, err
		}
	}
	if params.skipFile != "" {
		if err := loadSuppressions(params.skipFile, &filters); err != nil {
			return ldtest.Results{}, settings, err
		}
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = framework.LoggerWithPrefix(log.New(errOut, "", log.LstdFlags), "[harness] ")
	}

	args, err := settings.Args()
	if err != nil {
		return ldtest.Results{}, settings, err
	}
	comparison, err := suite.ComparisonByName(settings.Compare)
	if err != nil {
		return ldtest.Results{}, settings, err
	}
	interp := interpreter.New(params.execDir, settings.Interpreter, args)
	interp.Timeout = time.Duration(settings.Timeout)
	mainDebugLogger.Printf("interpreter command: %q, comparison: %s, timeout: %s",
		interp.Command("<sample>"), comparison.Name(), settings.Timeout)

	ldtest.PrintFilterDescription(errOut, filters)

	testLogger := ldtest.ConsoleTestLogger{
		Out:                  out,
		Diagnostics:          errOut,
		ShowErrors:           true,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results, err := suite.Run(ctx, suite.Config{
		SampleDir:   params.sampleDir,
		Interpreter: interp,
		Comparison:  comparison,
		Isolate:     settings.Isolate,
		Filter:      filters,
		Logger:      mainDebugLogger,
	}, testLogger)

	if len(results.Tests) != 0 {
		helpers.MustFprintln(errOut)
		ldtest.PrintResults(errOut, results)
	}
	if err != nil {
		return results, settings, err
	}

	if params.recordFailures != "" {
		if err := recordFailures(params.recordFailures, results); err != nil {
			return results, settings, err
		}
	}
	return results, settings, nil
}

// applyColorMode decides whether report verdicts are coloured. In auto mode that depends on
// whether the report goes to a terminal.
func applyColorMode(mode string, out io.Writer) {
	switch mode {
	case colorAlways:
		color.NoColor = false
	case colorNever:
		color.NoColor = true
	default:
		f, ok := out.(*os.File)
		color.NoColor = !ok || !term.IsTerminal(int(f.Fd()))
	}
}

func loadSuppressions(path string, filters *ldtest.RegexFilters) error {
	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %w", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := filters.MustNotMatch.SetLiteral(line); err != nil {
			return fmt.Errorf("cannot parse suppression: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %w", err)
	}
	return nil
}

func recordFailures(path string, results ldtest.Results) error {
	names := make([]string, 0, len(results.Failures))
	for _, f := range results.Failures {
		names = append(names, f.TestID.String())
	}
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("cannot create suppression file: %w", err)
	}
	defer func() { _ = f.Close() }()
	w := bufio.NewWriter(f)
	for _, name := range helpers.Sorted(names) {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return fmt.Errorf("cannot write suppression file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write suppression file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write suppression file: %w", err)
	}
	return nil
}
