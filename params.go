package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/tostitos/toslang-test-harness/config"
	"github.com/tostitos/toslang-test-harness/framework/ldtest"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type commandParams struct {
	sampleDir      string
	execDir        string
	configFile     string
	filters        ldtest.RegexFilters
	skipFile       string
	recordFailures string
	debug          bool
	debugAll       bool
	color          string

	// These can also come from the config file. A flag only overrides the file if it was given.
	interpreter     string
	interpreterArgs string
	compare         string
	timeout         time.Duration
	isolate         bool
	strictExit      bool
	explicit        map[string]bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	defaults := config.Default()

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "usage: %s [flags] <sample-dir> <exec-dir>\n", fs.Name())
		fs.PrintDefaults()
	}
	fs.StringVar(&c.configFile, "config", "", "YAML or JSON file with harness settings")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select samples to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select samples not to run")
	fs.StringVar(&c.skipFile, "skip-from", "", "file of sample names not to run, one per line")
	fs.StringVar(&c.recordFailures, "record-failures", "", "write the names of failed samples to this file")
	fs.BoolVar(&c.debug, "debug", false, "show debug output for failed samples")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show debug output for all samples and the harness")
	fs.StringVar(&c.color, "color", colorAuto, "colour the report: auto, always or never")
	fs.StringVar(&c.interpreter, "interpreter", defaults.Interpreter, "interpreter executable name inside exec-dir")
	fs.StringVar(&c.interpreterArgs, "interpreter-args", defaults.InterpreterArgs,
		"arguments passed to the interpreter before the sample path")
	fs.StringVar(&c.compare, "compare", defaults.Compare,
		fmt.Sprintf("how output is compared with expected results: %s or %s", config.CompareStrict, config.CompareLines))
	fs.DurationVar(&c.timeout, "timeout", 0, "kill the interpreter after this long (0 means no limit)")
	fs.BoolVar(&c.isolate, "isolate", false, "fail only the affected sample on a fault instead of aborting the run")
	fs.BoolVar(&c.strictExit, "strict-exit", false, "exit with status 1 if any sample failed")

	if err := fs.Parse(args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fs.Usage()
		}
		return false
	}
	if fs.NArg() != 2 {
		fmt.Fprintf(errOut, "expected 2 arguments (sample directory and interpreter directory), got %d\n", fs.NArg())
		fs.Usage()
		return false
	}
	switch c.color {
	case colorAuto, colorAlways, colorNever:
	default:
		fmt.Fprintf(errOut, "invalid -color value %q\n", c.color)
		fs.Usage()
		return false
	}
	c.sampleDir, c.execDir = fs.Arg(0), fs.Arg(1)

	c.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.explicit[f.Name] = true })
	return true
}

// settings merges the config file, if any, with the flags that were given explicitly.
func (c *commandParams) settings() (config.Harness, error) {
	ret := config.Default()
	if c.configFile != "" {
		loaded, err := config.Load(c.configFile)
		if err != nil {
			return config.Harness{}, err
		}
		ret = loaded
	}
	if c.explicit["interpreter"] {
		ret.Interpreter = c.interpreter
	}
	if c.explicit["interpreter-args"] {
		ret.InterpreterArgs = c.interpreterArgs
	}
	if c.explicit["compare"] {
		ret.Compare = c.compare
	}
	if c.explicit["timeout"] {
		ret.Timeout = config.Duration(c.timeout)
	}
	if c.explicit["isolate"] {
		ret.Isolate = c.isolate
	}
	if c.explicit["strict-exit"] {
		ret.StrictExit = c.strictExit
	}
	if err := ret.Validate(); err != nil {
		return config.Harness{}, err
	}
	return ret, nil
}
