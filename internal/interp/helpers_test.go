package interp

import (
	"regexp"
	"strings"
)

// testSink collects diagnostics in memory. Error-class messages keep their
// 오류 prefix so tests can tell the classes apart.
type testSink struct {
	infos  []string
	errors []string
	all    []string
}

func (s *testSink) Info(msg string) {
	s.infos = append(s.infos, msg)
	s.all = append(s.all, msg)
}

func (s *testSink) Error(msg string) {
	s.errors = append(s.errors, msg)
	s.all = append(s.all, msg)
}

var linePrefix = regexp.MustCompile(`^Line \d+: `)

// stripPrefixes removes the "Line N: " prefixes for output comparisons.
func stripPrefixes(msgs []string) []string {
	out := make([]string, len(msgs))
	for i, msg := range msgs {
		out[i] = linePrefix.ReplaceAllString(msg, "")
	}
	return out
}

// runProgram executes a program against a fresh interpreter and returns the
// sink and the interpreter for further inspection.
func runProgram(program string, opts ...Option) (*testSink, *Interpreter) {
	sink := &testSink{}
	i := New(sink, opts...)
	i.InterpretProgram(program)
	return sink, i
}

// outputs returns the info-class messages of a program run, prefixes
// stripped.
func outputs(program string, opts ...Option) []string {
	sink, _ := runProgram(program, opts...)
	return stripPrefixes(sink.infos)
}

// errorsOf returns the error-class messages of a program run, prefixes
// stripped.
func errorsOf(program string, opts ...Option) []string {
	sink, _ := runProgram(program, opts...)
	return stripPrefixes(sink.errors)
}

// containsMatch reports whether any message contains the substring.
func containsMatch(msgs []string, substr string) bool {
	for _, msg := range msgs {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
