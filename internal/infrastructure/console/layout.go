package console

import (
	"bytes"
	"fmt"
	"strings"
)

// DefaultPattern is used when no pattern is configured.
const DefaultPattern = "%highlight{[%time] [%level] [%logger]: %msg%attrs}%n"

const defaultTimeLayout = "15:04:05"

// Layout renders events into bytes.
type Layout interface {
	Format(buf *bytes.Buffer, e *Event)
}

// Selector picks the formatter chain for an event.
type Selector interface {
	Select(logger string) []Formatter
}

// PatternLayout formats events with the chain chosen by its selector.
type PatternLayout struct {
	selector Selector
}

// NewPatternLayout creates a layout backed by selector.
func NewPatternLayout(selector Selector) *PatternLayout {
	return &PatternLayout{selector: selector}
}

// Selector returns the layout's pattern selector.
func (l *PatternLayout) Selector() any {
	return l.selector
}

func (l *PatternLayout) Format(buf *bytes.Buffer, e *Event) {
	for _, f := range l.selector.Select(e.Logger) {
		f.Format(buf, e)
	}
}

// CompilePattern turns a pattern into a formatter chain.
//
// Supported conversions: %time{layout} (%d), %level (%p), %logger (%c),
// %msg (%m), %attrs, %n, %% and %highlight{pattern}.
func CompilePattern(pattern string) ([]Formatter, error) {
	p := &patternParser{src: pattern}
	return p.parse(false)
}

type patternParser struct {
	src string
	pos int
}

func (p *patternParser) parse(nested bool) ([]Formatter, error) {
	var out []Formatter
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			out = append(out, literalFormatter(lit.String()))
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch {
		case ch == '}' && nested:
			p.pos++
			flush()
			return out, nil
		case ch != '%':
			lit.WriteByte(ch)
			p.pos++
		default:
			p.pos++
			if p.pos < len(p.src) && p.src[p.pos] == '%' {
				lit.WriteByte('%')
				p.pos++
				continue
			}

			name := p.readName()
			if name == "" {
				return nil, fmt.Errorf("pattern %q: expected conversion at offset %d", p.src, p.pos)
			}

			flush()
			f, err := p.conversion(name)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
	}

	if nested {
		return nil, fmt.Errorf("pattern %q: unterminated '{'", p.src)
	}
	flush()
	return out, nil
}

func (p *patternParser) readName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// readOption consumes a "{...}" argument if one follows.
func (p *patternParser) readOption() (string, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return "", nil
	}
	end := strings.IndexByte(p.src[p.pos:], '}')
	if end < 0 {
		return "", fmt.Errorf("pattern %q: unterminated '{'", p.src)
	}
	opt := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1
	return opt, nil
}

func (p *patternParser) conversion(name string) (Formatter, error) {
	switch name {
	case "n":
		return literalFormatter("\n"), nil
	case "time", "d":
		layout, err := p.readOption()
		if err != nil {
			return nil, err
		}
		if layout == "" {
			layout = defaultTimeLayout
		}
		return timeFormatter{layout: layout}, nil
	case "level", "p":
		return levelFormatter{}, nil
	case "logger", "c":
		return loggerFormatter{}, nil
	case "msg", "m":
		return messageFormatter{}, nil
	case "attrs":
		return attrsFormatter{}, nil
	case "highlight":
		if p.pos >= len(p.src) || p.src[p.pos] != '{' {
			return nil, fmt.Errorf("pattern %q: %%highlight requires a {pattern}", p.src)
		}
		p.pos++
		children, err := p.parse(true)
		if err != nil {
			return nil, err
		}
		return NewHighlightFormatter(children), nil
	default:
		return nil, fmt.Errorf("pattern %q: unknown conversion %%%s", p.src, name)
	}
}
