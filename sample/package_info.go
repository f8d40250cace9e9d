// Package sample reads TosLang sample programs and the expected results annotated in them.
//
// A sample program is a plain text file. Any line containing "EXPECTED: " designates one expected
// result: the rest of the line after the marker. All other text is program source and is opaque
// to the harness.
package sample
