// Package config holds the settings of a harness run that can come from a configuration file as
// well as from the command line.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/shlex"
)

const (
	CompareStrict = "strict"
	CompareLines  = "lines"
)

// Harness is the configuration file format. Keys that are absent from the file keep their
// values from Default.
type Harness struct {
	// Interpreter is the executable name inside the interpreter directory.
	Interpreter string `json:"interpreter"`

	// InterpreterArgs is split with shell quoting rules and passed before the sample path.
	InterpreterArgs string `json:"interpreterArgs"`

	// Compare selects how captured output is compared with the expected results.
	Compare string `json:"compare"`

	// Timeout for each interpreter invocation; zero means none.
	Timeout Duration `json:"timeout"`

	// Isolate turns per-sample faults into failures of that sample instead of aborting the run.
	Isolate bool `json:"isolate"`

	// StrictExit makes the harness exit with a non-zero status if any sample failed.
	StrictExit bool `json:"strictExit"`

	// Skip lists sample names to exclude from the run.
	Skip []string `json:"skip"`
}

// Default returns the settings used when neither a file nor a flag says otherwise.
func Default() Harness {
	return Harness{
		Interpreter:     "TosLang",
		InterpreterArgs: "-interpret",
		Compare:         CompareStrict,
	}
}

// Load reads a YAML or JSON configuration file on top of Default.
func Load(path string) (Harness, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Harness{}, fmt.Errorf("cannot read config file: %w", err)
	}
	ret := Default()
	if err := ParseJSONOrYAML(data, &ret); err != nil {
		return Harness{}, fmt.Errorf("error parsing config file %q: %w", path, err)
	}
	if err := ret.Validate(); err != nil {
		return Harness{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return ret, nil
}

// Validate checks values that cannot be checked by parsing alone.
func (h Harness) Validate() error {
	switch h.Compare {
	case CompareStrict, CompareLines:
	default:
		return fmt.Errorf("unknown comparison %q (expected %q or %q)", h.Compare, CompareStrict, CompareLines)
	}
	if h.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	if h.Interpreter == "" {
		return errors.New("interpreter name cannot be empty")
	}
	if _, err := h.Args(); err != nil {
		return err
	}
	return nil
}

// Args returns InterpreterArgs as an argument list.
func (h Harness) Args() ([]string, error) {
	args, err := shlex.Split(h.InterpreterArgs)
	if err != nil {
		return nil, fmt.Errorf("cannot parse interpreter arguments %q: %w", h.InterpreterArgs, err)
	}
	if args == nil {
		args = []string{}
	}
	return args, nil
}

// Duration is a time.Duration written as a string such as "1.5s", or as a number of seconds.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*d = Duration(v * float64(time.Second))
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration: %s", data)
	}
	return nil
}
