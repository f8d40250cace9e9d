// Package framework contains the low-level implementation of the test harness infrastructure
// that is not specific to any one interpreter. The base package contains shared types such as
// Logger; the test runner is in the subpackage ldtest.
//
// The general model is:
//
// 1. The harness drives an external program (the interpreter under test) as a child process and
// inspects only what it writes to its standard streams.
//
// 2. There is a general notion of a test scope which is similar to Go's testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate success/failure
// results and captured debug output.
//
// The domain-specific code that knows what is being tested (package suite) is responsible for
// deciding which test scopes to create and what counts as a failure within each of them.
package framework
