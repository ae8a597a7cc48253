package csvstore

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// parseListLiteral parses a serialized nested-list literal such as
//
//	[['Mon Jun 30 00:00:00 2025', 85.5], ['Tue Jul 01 00:00:00 2025', 86.0]]
//
// into nested []any values holding strings and float64 numbers. This is
// the shape a historical save bug wrote into the date column. The
// grammar is tiny: lists, single- or double-quoted strings, and numbers.
func parseListLiteral(s string) ([]any, error) {
	p := &literalParser{input: s}
	p.skipSpace()
	if !p.consume('[') {
		return nil, fmt.Errorf("list literal must start with '[' at offset %d", p.pos)
	}
	values, err := p.parseList()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("trailing data after list literal at offset %d", p.pos)
	}
	return values, nil
}

type literalParser struct {
	input string
	pos   int
}

// parseList parses values up to the closing bracket. The opening bracket
// has already been consumed.
func (p *literalParser) parseList() ([]any, error) {
	values := []any{}
	for {
		p.skipSpace()
		if p.consume(']') {
			return values, nil
		}
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("unterminated list at offset %d", p.pos)
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			return values, nil
		}
		return nil, fmt.Errorf("expected ',' or ']' at offset %d", p.pos)
	}
}

func (p *literalParser) parseValue() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unexpected end of literal at offset %d", p.pos)
	}

	switch c := p.input[p.pos]; {
	case c == '[':
		p.pos++
		return p.parseList()
	case c == '\'' || c == '"':
		return p.parseString(c)
	default:
		return p.parseBare()
	}
}

// parseString reads a quoted string with backslash escapes.
func (p *literalParser) parseString(quote byte) (string, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.input) {
				return "", fmt.Errorf("dangling escape at offset %d", p.pos)
			}
			sb.WriteByte(p.input[p.pos+1])
			p.pos += 2
		case quote:
			p.pos++
			return sb.String(), nil
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string at offset %d", p.pos)
}

// parseBare reads an unquoted token up to the next delimiter and returns
// it as a number when it parses as one, as a trimmed string otherwise.
func (p *literalParser) parseBare() (any, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ',' || c == ']' || c == '[' {
			break
		}
		p.pos++
	}
	token := strings.TrimSpace(p.input[start:p.pos])
	if token == "" {
		return nil, fmt.Errorf("empty value at offset %d", start)
	}
	if n, err := strconv.ParseFloat(token, 64); err == nil {
		return n, nil
	}
	return token, nil
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}
