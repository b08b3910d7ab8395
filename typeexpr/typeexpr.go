// Package typeexpr parses the textual type annotations a yaml predictor
// description carries ("int", "list[int]", "Optional[str]",
// "Union[int, str]", "Literal['a', 'b']", "Iterator[str]") into raw
// annotations for the resolver.
//
// The parser only understands the bracketed annotation grammar; whether a
// head like "Foo" names a supported type is the resolver's decision, so
// unknown heads parse successfully and fail later with a proper
// DefinitionError naming the field.
package typeexpr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/inferkit/sdk/semtype"
)

// Parse parses one type expression into an annotation.
func Parse(src string) (semtype.Annotation, error) {
	p := &parser{src: src}
	ann, err := p.parseExpr()
	if err != nil {
		return semtype.Annotation{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return semtype.Annotation{}, fmt.Errorf("unexpected trailing text %q in type expression %q", p.src[p.pos:], src)
	}
	ann.Raw = strings.TrimSpace(src)
	return ann, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) parseExpr() (semtype.Annotation, error) {
	p.skipSpace()
	name, err := p.parseIdent()
	if err != nil {
		return semtype.Annotation{}, err
	}

	ann := semtype.Annotation{Name: name}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '[' {
		return ann, nil
	}
	p.pos++ // consume '['

	if name == "Literal" {
		values, err := p.parseValues()
		if err != nil {
			return semtype.Annotation{}, err
		}
		ann.Values = values
	} else {
		args, err := p.parseArgs()
		if err != nil {
			return semtype.Annotation{}, err
		}
		ann.Args = args
	}

	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != ']' {
		return semtype.Annotation{}, fmt.Errorf("missing ']' in type expression %q", p.src)
	}
	p.pos++
	return ann, nil
}

func (p *parser) parseIdent() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", fmt.Errorf("expected a type name at offset %d in %q", p.pos, p.src)
	}
	return p.src[start:p.pos], nil
}

func (p *parser) parseArgs() ([]semtype.Annotation, error) {
	var args []semtype.Annotation
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		return args, nil
	}
}

func (p *parser) parseValues() ([]any, error) {
	var values []any
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		return values, nil
	}
}

func (p *parser) parseValue() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("expected a literal value in %q", p.src)
	}

	switch c := p.src[p.pos]; {
	case c == '\'' || c == '"':
		return p.parseString(c)
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		ident, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		switch ident {
		case "true", "True":
			return true, nil
		case "false", "False":
			return false, nil
		}
		return nil, fmt.Errorf("unsupported literal value %q in %q", ident, p.src)
	}
}

func (p *parser) parseString(quote byte) (string, error) {
	p.pos++ // consume opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\\' && p.pos+1 < len(p.src) {
			p.pos++
			b.WriteByte(p.src[p.pos])
			p.pos++
			continue
		}
		if c == quote {
			p.pos++
			return b.String(), nil
		}
		b.WriteByte(c)
		p.pos++
	}
	return "", fmt.Errorf("unterminated string in type expression %q", p.src)
}

func (p *parser) parseNumber() (any, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	seenDot := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	text := p.src[start:p.pos]
	if seenDot {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in type expression %q", text, p.src)
		}
		return f, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q in type expression %q", text, p.src)
	}
	return n, nil
}
