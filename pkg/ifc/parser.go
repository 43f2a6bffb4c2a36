package ifc

import (
	"bytes"
	"fmt"
	"strconv"
)

// parser reads the ISO 10303-21 exchange structure. Header entities are
// skipped; only #n=TYPE(...); instances are kept.
type parser struct {
	data    []byte
	pos     int
	model   *Model
	current uint64
	sawData bool
}

func newParser(data []byte, m *Model) *parser {
	return &parser{data: data, model: m}
}

func (p *parser) parse() error {
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.peek() == '#' {
			if err := p.instance(); err != nil {
				return err
			}
			continue
		}
		word := p.keyword()
		if word == "DATA" {
			p.sawData = true
		}
		if err := p.skipStatement(); err != nil {
			return err
		}
	}
	if !p.sawData {
		return ErrNoDataSection
	}
	return nil
}

func (p *parser) instance() error {
	p.pos++ // '#'
	id, err := p.unsigned()
	if err != nil {
		return p.fail("instance id", err)
	}
	p.current = id
	defer func() { p.current = 0 }()

	p.skipSpace()
	if err := p.expect('='); err != nil {
		return err
	}
	p.skipSpace()

	// Complex (multi-leaf) instances are not needed for space topology.
	if p.peek() == '(' {
		return p.skipStatement()
	}

	typeName := p.keyword()
	if typeName == "" {
		return p.fail("entity type", ErrSyntax)
	}
	p.skipSpace()
	if err := p.expect('('); err != nil {
		return err
	}
	attrs, err := p.list()
	if err != nil {
		return err
	}
	p.skipSpace()
	if err := p.expect(';'); err != nil {
		return err
	}

	p.model.Add(id, typeName, attrs)
	return nil
}

// list parses aggregate members; the opening paren is already consumed.
func (p *parser) list() ([]Value, error) {
	var out []Value
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return out, nil
	}
	for {
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return out, nil
		default:
			return nil, p.fail(fmt.Sprintf("unexpected %q in list", p.peek()), ErrSyntax)
		}
	}
}

func (p *parser) value() (Value, error) {
	if p.eof() {
		return Value{}, p.fail("unexpected end of input", ErrSyntax)
	}
	c := p.peek()
	switch {
	case c == '$':
		p.pos++
		return Value{Kind: KindNull}, nil
	case c == '*':
		p.pos++
		return Value{Kind: KindDerived}, nil
	case c == '\'':
		s, err := p.quoted()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindString, Text: s}, nil
	case c == '"':
		p.pos++
		end := bytes.IndexByte(p.data[p.pos:], '"')
		if end < 0 {
			return Value{}, p.fail("unterminated binary", ErrSyntax)
		}
		text := string(p.data[p.pos : p.pos+end])
		p.pos += end + 1
		return Value{Kind: KindBinary, Text: text}, nil
	case c == '#':
		p.pos++
		ref, err := p.unsigned()
		if err != nil {
			return Value{}, p.fail("reference", err)
		}
		return Value{Kind: KindRef, Ref: ref}, nil
	case c == '.':
		p.pos++
		end := bytes.IndexByte(p.data[p.pos:], '.')
		if end < 0 {
			return Value{}, p.fail("unterminated enumeration", ErrSyntax)
		}
		text := string(p.data[p.pos : p.pos+end])
		p.pos += end + 1
		return Value{Kind: KindEnum, Text: text}, nil
	case c == '(':
		p.pos++
		items, err := p.list()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindList, List: items}, nil
	case c == '-' || c == '+' || isDigit(c):
		return Value{Kind: KindNumber, Text: p.number()}, nil
	case isAlpha(c):
		name := p.keyword()
		p.skipSpace()
		if err := p.expect('('); err != nil {
			return Value{}, err
		}
		inner, err := p.list()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindTyped, Text: name, List: inner}, nil
	default:
		return Value{}, p.fail(fmt.Sprintf("unexpected %q", c), ErrSyntax)
	}
}

// quoted reads a '...' string with '' escapes, then decodes control directives.
func (p *parser) quoted() (string, error) {
	p.pos++ // opening quote
	var buf []byte
	for {
		if p.eof() {
			return "", p.fail("unterminated string", ErrSyntax)
		}
		c := p.data[p.pos]
		p.pos++
		if c != '\'' {
			buf = append(buf, c)
			continue
		}
		if !p.eof() && p.data[p.pos] == '\'' {
			buf = append(buf, '\'')
			p.pos++
			continue
		}
		return decodeString(string(buf)), nil
	}
}

func (p *parser) number() string {
	start := p.pos
	for !p.eof() {
		c := p.data[p.pos]
		if isDigit(c) || c == '.' || c == '-' || c == '+' || c == 'E' || c == 'e' {
			p.pos++
			continue
		}
		break
	}
	return string(p.data[start:p.pos])
}

func (p *parser) unsigned() (uint64, error) {
	start := p.pos
	for !p.eof() && isDigit(p.data[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return 0, ErrSyntax
	}
	return strconv.ParseUint(string(p.data[start:p.pos]), 10, 64)
}

// keyword reads an upper-case STEP keyword (letters, digits, '_', '-').
func (p *parser) keyword() string {
	start := p.pos
	for !p.eof() {
		c := p.data[p.pos]
		if isAlpha(c) || isDigit(c) || c == '_' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	return string(bytes.ToUpper(p.data[start:p.pos]))
}

// skipStatement consumes input through the next ';' at nesting depth zero.
func (p *parser) skipStatement() error {
	depth := 0
	for !p.eof() {
		c := p.data[p.pos]
		switch c {
		case '\'':
			if _, err := p.quoted(); err != nil {
				return err
			}
			continue
		case '/':
			if p.pos+1 < len(p.data) && p.data[p.pos+1] == '*' {
				p.skipSpace()
				continue
			}
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			if depth <= 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return nil
}

// skipSpace skips whitespace and /* */ comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.data[p.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			p.pos++
			continue
		}
		if c == '/' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '*' {
			end := bytes.Index(p.data[p.pos+2:], []byte("*/"))
			if end < 0 {
				p.pos = len(p.data)
				return
			}
			p.pos += end + 4
			continue
		}
		return
	}
}

func (p *parser) expect(c byte) error {
	if p.eof() || p.data[p.pos] != c {
		return p.fail(fmt.Sprintf("expected %q", c), ErrSyntax)
	}
	p.pos++
	return nil
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.data[p.pos]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) fail(msg string, cause error) error {
	end := p.pos
	if end > len(p.data) {
		end = len(p.data)
	}
	return &ParseError{
		Line:   bytes.Count(p.data[:end], []byte("\n")) + 1,
		Entity: p.current,
		Msg:    msg,
		Cause:  cause,
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }
