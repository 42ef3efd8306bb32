package data

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadDirective = errors.New("malformed component directive")

// Directive is one `name(key=value,...)` entry of an object's component
// string.
type Directive struct {
	Name string
	Args Args
}

// ParseDirectives splits a directive string of the form
// `name(key=value,...);name2;...`. Values may be double-quoted to carry
// commas, semicolons or parentheses.
func ParseDirectives(s string) ([]Directive, error) {
	var out []Directive
	p := directiveParser{src: s}
	for {
		p.skipSpace()
		if p.done() {
			return out, nil
		}
		if p.peek() == ';' {
			p.pos++
			continue
		}
		d, err := p.directive()
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
}

type directiveParser struct {
	src string
	pos int
}

func (p *directiveParser) done() bool { return p.pos >= len(p.src) }
func (p *directiveParser) peek() byte { return p.src[p.pos] }

func (p *directiveParser) skipSpace() {
	for !p.done() && (p.peek() == ' ' || p.peek() == '\t' || p.peek() == '\n' || p.peek() == '\r') {
		p.pos++
	}
}

func (p *directiveParser) fail(msg string) error {
	return fmt.Errorf("%w at offset %d: %s", ErrBadDirective, p.pos, msg)
}

func (p *directiveParser) ident() string {
	start := p.pos
	for !p.done() {
		c := p.peek()
		if c == '_' || c == '-' || c == '.' || (c >= '0' && c <= '9') || (c|0x20 >= 'a' && c|0x20 <= 'z') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *directiveParser) directive() (Directive, error) {
	name := p.ident()
	if name == "" {
		return Directive{}, p.fail("expected component name")
	}
	d := Directive{Name: name, Args: Args{}}
	p.skipSpace()
	if p.done() || p.peek() == ';' {
		return d, nil
	}
	if p.peek() != '(' {
		return d, p.fail("expected '(' after " + strconv.Quote(name))
	}
	p.pos++

	for {
		p.skipSpace()
		if p.done() {
			return d, p.fail("unterminated argument list")
		}
		if p.peek() == ')' {
			p.pos++
			break
		}
		key := p.ident()
		if key == "" {
			return d, p.fail("expected argument name")
		}
		p.skipSpace()
		if p.done() || p.peek() != '=' {
			return d, p.fail("expected '=' after " + strconv.Quote(key))
		}
		p.pos++
		p.skipSpace()
		val, err := p.value()
		if err != nil {
			return d, err
		}
		d.Args[key] = val
		p.skipSpace()
		if !p.done() && p.peek() == ',' {
			p.pos++
		}
	}

	p.skipSpace()
	if !p.done() && p.peek() != ';' {
		return d, p.fail("expected ';' after " + strconv.Quote(name))
	}
	return d, nil
}

func (p *directiveParser) value() (string, error) {
	if !p.done() && p.peek() == '"' {
		end := strings.IndexByte(p.src[p.pos+1:], '"')
		if end < 0 {
			return "", p.fail("unterminated quoted value")
		}
		v := p.src[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		return v, nil
	}
	start := p.pos
	for !p.done() && p.peek() != ',' && p.peek() != ')' {
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos]), nil
}

// Args are the raw key=value arguments of a directive.
type Args map[string]string

// String returns the raw value or def.
func (a Args) String(key, def string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return def
}

// Float parses key as a float, returning def when absent.
func (a Args) Float(key string, def float64) (float64, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("argument %s=%q: %w", key, v, err)
	}
	return f, nil
}

// Int parses key as an integer, returning def when absent.
func (a Args) Int(key string, def int) (int, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("argument %s=%q: %w", key, v, err)
	}
	return n, nil
}

// Bool parses key as a boolean, returning def when absent.
func (a Args) Bool(key string, def bool) (bool, error) {
	v, ok := a[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("argument %s=%q: %w", key, v, err)
	}
	return b, nil
}

// List splits key on '|', dropping empty items.
func (a Args) List(key string) []string {
	v, ok := a[key]
	if !ok {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, "|") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
