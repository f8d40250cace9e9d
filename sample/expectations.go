package sample

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
)

var expectedPattern = regexp.MustCompile(`EXPECTED: (.*)`)

// Expectations is the ordered list of results annotated in one sample program. It is never nil,
// so an un-annotated program compares equal to an empty list rather than to a missing one.
type Expectations []string

// ParseExpectations scans r line by line and collects the text following each "EXPECTED: "
// marker, in order of appearance. Lines end only at '\n'; a preceding '\r' is kept as part of
// the captured text.
func ParseExpectations(r io.Reader) (Expectations, error) {
	ret := Expectations{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if m := expectedPattern.FindStringSubmatch(strings.TrimSuffix(line, "\n")); m != nil {
			ret = append(ret, m[1])
		}
		if errors.Is(err, io.EOF) {
			return ret, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
