package git

import (
	"fmt"
	"strings"

	"github.com/charliek/git-preserves/internal/constants"
	"github.com/charliek/git-preserves/internal/domain"
)

// ParseErrorKind categorizes why a source could not be parsed
type ParseErrorKind int

const (
	// RuleFailed means a field did not match its grammar
	RuleFailed ParseErrorKind = iota
	// Trailing means input was left after the last complete record
	Trailing
	// Underrun means the input ended inside a record
	Underrun
	// NumericOverflow means a number did not fit its type or range
	NumericOverflow
)

func (k ParseErrorKind) String() string {
	switch k {
	case RuleFailed:
		return "rule failed"
	case Trailing:
		return "trailing input"
	case Underrun:
		return "unexpected end of input"
	case NumericOverflow:
		return "numeric overflow"
	default:
		return fmt.Sprintf("parseerror(%d)", int(k))
	}
}

// maxRemainder bounds how much unconsumed input an error message quotes
const maxRemainder = 60

// ParseError reports the rule that failed and the input it failed on
type ParseError struct {
	Kind      ParseErrorKind
	Rule      string
	Remainder string
}

func (e *ParseError) Error() string {
	rest := e.Remainder
	if len(rest) > maxRemainder {
		rest = rest[:maxRemainder] + "..."
	}
	if e.Rule == "" {
		return fmt.Sprintf("%s at %q", e.Kind, rest)
	}
	return fmt.Sprintf("%s: %s at %q", e.Kind, e.Rule, rest)
}

// Is lets callers test for domain.ErrParse
func (e *ParseError) Is(target error) bool {
	return target == domain.ErrParse
}

// scanner walks an immutable input string. Every method either consumes
// exactly what its grammar names or returns a *ParseError and leaves the
// position where the failing token starts
type scanner struct {
	input string
	pos   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

func (s *scanner) rest() string {
	return s.input[s.pos:]
}

func (s *scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) fail(kind ParseErrorKind, rule string) *ParseError {
	return &ParseError{Kind: kind, Rule: rule, Remainder: s.rest()}
}

// expectEnd reports unconsumed input as Trailing
func (s *scanner) expectEnd() error {
	if !s.done() {
		return s.fail(Trailing, "")
	}
	return nil
}

// hasPrefix peeks without consuming
func (s *scanner) hasPrefix(lit string) bool {
	return strings.HasPrefix(s.rest(), lit)
}

// literal consumes lit exactly
func (s *scanner) literal(lit string) error {
	if s.hasPrefix(lit) {
		s.pos += len(lit)
		return nil
	}
	if len(s.rest()) < len(lit) && strings.HasPrefix(lit, s.rest()) {
		return s.fail(Underrun, fmt.Sprintf("expected %q", lit))
	}
	return s.fail(RuleFailed, fmt.Sprintf("expected %q", lit))
}

// accept consumes lit if present and reports whether it did
func (s *scanner) accept(lit string) bool {
	if s.hasPrefix(lit) {
		s.pos += len(lit)
		return true
	}
	return false
}

// space consumes the single separator between fields
func (s *scanner) space() error {
	return s.literal(" ")
}

// next consumes one byte
func (s *scanner) next(rule string) (byte, error) {
	if s.done() {
		return 0, s.fail(Underrun, rule)
	}
	b := s.input[s.pos]
	s.pos++
	return b, nil
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// objectName consumes exactly 40 hex digits
func (s *scanner) objectName() (ObjectName, error) {
	rest := s.rest()
	if len(rest) < constants.ObjectNameLength {
		for i := 0; i < len(rest); i++ {
			if !isHexDigit(rest[i]) {
				return "", s.fail(RuleFailed, "object name")
			}
		}
		return "", s.fail(Underrun, "object name")
	}
	for i := 0; i < constants.ObjectNameLength; i++ {
		if !isHexDigit(rest[i]) {
			return "", s.fail(RuleFailed, "object name")
		}
	}
	s.pos += constants.ObjectNameLength
	return ObjectName(rest[:constants.ObjectNameLength]), nil
}

// mode consumes six octal digits
func (s *scanner) mode() (Mode, error) {
	var m Mode
	rest := s.rest()
	for i := range m {
		if i >= len(rest) {
			return Mode{}, s.fail(Underrun, "mode")
		}
		c := rest[i]
		if c < '0' || c > '7' {
			return Mode{}, s.fail(RuleFailed, "mode")
		}
		m[i] = c - '0'
	}
	s.pos += len(m)
	return m, nil
}

// path consumes at least one byte up to (not including) a tab or newline
func (s *scanner) path() (WorkPath, error) {
	rest := s.rest()
	end := strings.IndexAny(rest, "\t\n")
	if end < 0 {
		end = len(rest)
	}
	if end == 0 {
		if rest == "" {
			return "", s.fail(Underrun, "path")
		}
		return "", s.fail(RuleFailed, "path")
	}
	s.pos += end
	return WorkPath(rest[:end]), nil
}

// until consumes everything before delim, which must be present. The
// delimiter itself is left in place
func (s *scanner) until(delim, rule string) (string, error) {
	rest := s.rest()
	end := strings.Index(rest, delim)
	if end < 0 {
		return "", s.fail(Underrun, rule)
	}
	s.pos += end
	return rest[:end], nil
}

// decimal consumes one or more digits as a uint64
func (s *scanner) decimal(rule string) (uint64, error) {
	start := s.pos
	var n uint64
	for !s.done() && isDigit(s.input[s.pos]) {
		d := uint64(s.input[s.pos] - '0')
		if n > (^uint64(0)-d)/10 {
			s.pos = start
			return 0, s.fail(NumericOverflow, rule)
		}
		n = n*10 + d
		s.pos++
	}
	if s.pos == start {
		if s.done() {
			return 0, s.fail(Underrun, rule)
		}
		return 0, s.fail(RuleFailed, rule)
	}
	return n, nil
}

// fixedDigits consumes exactly n digits
func (s *scanner) fixedDigits(n int, rule string) (int, error) {
	rest := s.rest()
	if len(rest) < n {
		return 0, s.fail(Underrun, rule)
	}
	v := 0
	for i := 0; i < n; i++ {
		if !isDigit(rest[i]) {
			return 0, s.fail(RuleFailed, rule)
		}
		v = v*10 + int(rest[i]-'0')
	}
	s.pos += n
	return v, nil
}

// line returns a scanner over the next line and moves past its newline.
// The last line of the input may omit the newline
func (s *scanner) line() *scanner {
	rest := s.rest()
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		s.pos = len(s.input)
		return newScanner(rest)
	}
	s.pos += end + 1
	return newScanner(rest[:end])
}
