package kata

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"

	keywordForEach = "foreach"
	keywordIn      = "in"
	keywordEnd     = "end"

	// tokenBreak terminates names, collection keys and parameter paths.
	tokenBreak = " }"

	pathSep = "."
)

// parser compiles template text in a single forward pass.
type parser struct {
	scan   *scanner
	source string
}

// parse compiles instructions until the end of input, or until the
// "{{ end }}" closing the block opened at the given nesting level.
// Level 0 is the top level, which must not be closed.
func (p *parser) parse(level int) ([]Instruction, error) {
	result := make([]Instruction, 0)

	for p.scan.hasRemaining() {
		// Literal text is always emitted, even when empty.
		result = append(result, Text{Literal: p.scan.consumeUntilStr(openDelim)})

		if !p.scan.consumeExact(openDelim) {
			break
		}

		p.scan.consumeWhitespace()

		pos := p.scan.index()

		if p.scan.consumeKeyword(keywordEnd) {
			err := p.parseEnd(level, pos)
			if err != nil {
				return nil, err
			}

			return result, nil
		}

		var (
			instr Instruction
			err   error
		)

		if p.scan.consumeKeyword(keywordForEach) {
			instr, err = p.parseForEach(level)
		} else {
			instr, err = p.parseParameter()
		}

		if err != nil {
			return nil, err
		}

		result = append(result, instr)
	}

	if level > 0 {
		return nil, p.expected(openDelim + " " + keywordEnd + " " + closeDelim)
	}

	return result, nil
}

// parseForEach parses the remainder of "{{ foreach <name> in <key> }}" and
// the block body up to its matching "{{ end }}".
func (p *parser) parseForEach(level int) (Instruction, error) {
	p.scan.consumeWhitespace()

	binding := p.scan.consumeUntilAnyByte(tokenBreak)
	if binding == "" {
		return nil, p.expected("identifier")
	}

	p.scan.consumeWhitespace()

	if !p.scan.consumeKeyword(keywordIn) {
		return nil, p.expected(keywordIn)
	}

	p.scan.consumeWhitespace()

	source := p.scan.consumeUntilAnyByte(tokenBreak)

	p.scan.consumeWhitespace()

	if source == "" {
		return nil, p.expected("collection")
	}

	if !p.scan.consumeExact(closeDelim) {
		return nil, p.expected(closeDelim)
	}

	body, err := p.parse(level + 1)
	if err != nil {
		return nil, err
	}

	return ForEach{
		Binding: binding,
		Source:  source,
		Body:    body,
	}, nil
}

// parseEnd parses the remainder of "{{ end }}". The pos argument is the
// offset of the keyword, reported if there is no open block to close.
func (p *parser) parseEnd(level, pos int) error {
	p.scan.consumeWhitespace()

	if !p.scan.consumeExact(closeDelim) {
		return p.expected(closeDelim)
	}

	if level == 0 {
		return newParseError(
			Unexpected, pos,
			openDelim+" "+keywordEnd+" "+closeDelim+" instruction",
			p.source,
		)
	}

	return nil
}

// parseParameter parses "{{ a.b.c }}" after the opening delimiter.
func (p *parser) parseParameter() (Instruction, error) {
	name := p.scan.consumeUntilAnyByte(tokenBreak)
	if name == "" {
		return nil, p.expected("parameter")
	}

	p.scan.consumeWhitespace()

	if !p.scan.consumeExact(closeDelim) {
		return nil, p.expected(closeDelim)
	}

	return Parameter{Path: strings.Split(name, pathSep)}, nil
}

// expected returns an Expected error at the current offset.
func (p *parser) expected(token string) *ParseError {
	return newParseError(Expected, p.scan.index(), token, p.source)
}
