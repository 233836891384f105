package kata

import "strings"

// scanner is a cursor over template text.
//
// The cursor only moves forward. Every string returned by a consume method
// is a substring of the input; the scanner never copies.
type scanner struct {
	input string
	pos   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

// rest returns the unconsumed input.
func (s *scanner) rest() string { return s.input[s.pos:] }

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.rest(), prefix)
}

func (s *scanner) hasPrefixByte(c byte) bool {
	return s.pos < len(s.input) && s.input[s.pos] == c
}

// consumeExact advances past prefix and reports true if the unconsumed
// input starts with it. Otherwise the cursor does not move.
func (s *scanner) consumeExact(prefix string) bool {
	if !s.hasPrefix(prefix) {
		return false
	}

	s.pos += len(prefix)

	return true
}

// consumeKeyword is consumeExact for a keyword, which must be followed by a
// space, a closing brace, or the end of input.
func (s *scanner) consumeKeyword(kw string) bool {
	if !s.hasPrefix(kw) {
		return false
	}

	if end := s.pos + len(kw); end < len(s.input) {
		if c := s.input[end]; c != ' ' && c != '}' {
			return false
		}
	}

	s.pos += len(kw)

	return true
}

// consumeUntilStr advances to the next occurrence of delim, or to the end of
// input, and returns the text skipped. The delimiter is not consumed.
func (s *scanner) consumeUntilStr(delim string) string {
	return s.skip(strings.Index(s.rest(), delim))
}

// consumeUntilByte is consumeUntilStr for a single byte.
func (s *scanner) consumeUntilByte(delim byte) string {
	return s.skip(strings.IndexByte(s.rest(), delim))
}

// consumeUntilAnyByte stops at the first byte contained in delims.
func (s *scanner) consumeUntilAnyByte(delims string) string {
	return s.skip(strings.IndexAny(s.rest(), delims))
}

// consumeWhitespace skips ASCII space characters. Tabs and newlines are
// significant and left in place.
func (s *scanner) consumeWhitespace() {
	for s.hasPrefixByte(' ') {
		s.pos++
	}
}

func (s *scanner) hasRemaining() bool { return s.pos < len(s.input) }

func (s *scanner) index() int { return s.pos }

// skip advances n bytes, or to the end of input if n is negative, and
// returns the text skipped.
func (s *scanner) skip(n int) string {
	start := s.pos

	if n < 0 {
		s.pos = len(s.input)
	} else {
		s.pos += n
	}

	return s.input[start:s.pos]
}
