// Package fakeinterp lets tests stand in for the TosLang interpreter. The test binary re-executes
// itself under the name TosLang and, instead of running tests, behaves as scripted by directive
// comments in the sample file it is given:
//
//	//! stdout <text>   write text and a newline to standard output
//	//! write <text>    write text without a newline
//	//! stderr <text>   write text and a newline to standard error
//	//! stdin           copy standard input to standard output
//	//! sleep <dur>     sleep for a time.ParseDuration value
//	//! exit <n>        exit with status n
//
// Directives run in file order. A package using this must call RunIfRequested from TestMain.
package fakeinterp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// EnvVar marks a process as the fake interpreter rather than a test run.
const EnvVar = "TOSLANG_HARNESS_FAKE_INTERPRETER"

const directivePrefix = "//! "

// RunIfRequested turns the current process into the fake interpreter if EnvVar is set, and
// never returns in that case.
func RunIfRequested() {
	if os.Getenv(EnvVar) == "" {
		return
	}
	os.Exit(Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Install makes dir/name an alias of the test binary and arranges for child processes to act as
// the fake interpreter. It returns the alias path.
func Install(t testing.TB, dir, name string) string {
	t.Helper()
	self, err := os.Executable()
	if err != nil {
		t.Fatalf("cannot locate test binary: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.Symlink(self, path); err != nil {
		t.Fatalf("cannot install fake interpreter: %v", err)
	}
	t.Setenv(EnvVar, "1")
	return path
}

// Main is the fake interpreter's entry point. It accepts the same command line as the real one:
// -interpret <file>.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) != 2 || args[0] != "-interpret" {
		fmt.Fprintf(stderr, "usage: TosLang -interpret <file>, got %q\n", args)
		return 2
	}
	f, err := os.Open(args[1])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " \t")
		if !strings.HasPrefix(line, directivePrefix) {
			continue
		}
		verb, arg, _ := strings.Cut(strings.TrimPrefix(line, directivePrefix), " ")
		switch verb {
		case "stdout":
			fmt.Fprintln(stdout, arg)
		case "write":
			fmt.Fprint(stdout, arg)
		case "stderr":
			fmt.Fprintln(stderr, arg)
		case "stdin":
			_, _ = io.Copy(stdout, stdin)
		case "sleep":
			d, err := time.ParseDuration(arg)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			time.Sleep(d)
		case "exit":
			code, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			return code
		default:
			fmt.Fprintf(stderr, "unknown directive %q\n", verb)
			return 1
		}
	}
	return 0
}
