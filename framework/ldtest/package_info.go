// Package ldtest contains a test runner framework that is similar to Go's testing package,
// but is run as regular Go application code rather than Go tests. It adds the things a harness
// needs on top of that model: regex selection of tests, captured per-test debug output, console
// reporting, and the ability to abort a whole run from inside one test.
package ldtest
