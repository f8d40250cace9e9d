package ldtest

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

// ErrorWithStacktrace is a test failure that remembers where in the test code it was reported.
type ErrorWithStacktrace struct {
	Message    string
	Stacktrace []StackFrame
}

// StackFrame is one caller in an ErrorWithStacktrace.
type StackFrame struct {
	FileName string
	Package  string
	Function string
	Line     int
}

func (e ErrorWithStacktrace) Error() string { return e.Message }

// Detail returns the message followed by one indented line per stack frame.
func (e ErrorWithStacktrace) Detail() string {
	lines := []string{e.Message, "  Stacktrace:"}
	for _, f := range e.Stacktrace {
		lines = append(lines, "    "+f.String())
	}
	return strings.Join(lines, "\n")
}

func (s StackFrame) String() string {
	packageName := strings.TrimPrefix(s.Package, rootPackageName()+"/")
	return fmt.Sprintf("%s.%s (%s:%d)", packageName, s.Function, s.FileName, s.Line)
}

var testifyTracePrefix = regexp.MustCompile(`^(?s:\s*Error Trace:.*\sError:\s*)`)

// transformError attaches our own stacktrace to an error, after stripping the "Error Trace:"
// preamble that testify/assert puts into its failure messages.
func transformError(err error, stacktrace []StackFrame) error {
	message := err.Error()
	if strings.Contains(message, "Error Trace:") {
		message = strings.TrimSpace(testifyTracePrefix.ReplaceAllLiteralString(message, ""))
	}
	if len(stacktrace) == 0 {
		return errors.New(message)
	}
	return ErrorWithStacktrace{Message: message, Stacktrace: stacktrace}
}

func currentPackageName() string {
	pc, _, _, ok := runtime.Caller(0)
	if !ok {
		return "?"
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "?"
	}
	packageName, _ := splitFunctionName(f.Name())
	return packageName
}

// rootPackageName is the module path, assuming a three-part host/owner/repo layout.
func rootPackageName() string {
	parts := strings.Split(currentPackageName(), "/")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, "/")
}

func getStacktrace(includeRunnerCode bool, helperFns []string) []StackFrame {
	frames := []StackFrame{}
	runnerPackage := currentPackageName()
	for skip := 1; ; skip++ { // 1 skips getStacktrace itself
		pc, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		f := runtime.FuncForPC(pc)
		if f == nil {
			break
		}
		packageName, functionName := splitFunctionName(f.Name())

		if packageName == runnerPackage && functionName == "Run" {
			break // ldtest.Run is the root of every test, nothing above it is interesting
		}
		if !includeRunnerCode && packageName == runnerPackage {
			continue
		}
		if isHelper(f.Name(), helperFns) {
			continue
		}
		frames = append(frames, StackFrame{
			FileName: file[strings.LastIndex(file, "/")+1:],
			Package:  packageName,
			Function: functionName,
			Line:     line,
		})
	}
	return frames
}

func isHelper(fullName string, helperFns []string) bool {
	for _, h := range helperFns {
		if h == fullName {
			return true
		}
	}
	return false
}

// splitFunctionName turns "host/owner/repo/pkg.(*T).run" into "host/owner/repo/pkg" and "(*T).run".
func splitFunctionName(fullName string) (string, string) {
	lastSlash := strings.LastIndex(fullName, "/")
	firstDotAfterSlash := strings.Index(fullName[lastSlash+1:], ".")
	packageName := fullName[0 : lastSlash+firstDotAfterSlash+1]
	functionName := fullName[len(packageName)+1:]
	return packageName, functionName
}
