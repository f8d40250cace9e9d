// Package suite runs every sample program in a directory through the interpreter and decides a
// verdict for each one. Each sample is one ldtest scope named after the sample file, so the
// verdict for a sample depends only on that sample's annotations and the interpreter's output
// for it.
package suite
