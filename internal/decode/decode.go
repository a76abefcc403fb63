package decode

import (
	"strconv"
	"strings"

	apperrors "github.com/arx-os/ifclite/internal/common/errors"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/schema"
)

// Decode parses the outer-parenthesized argument list args (as returned by
// step.EntityRef.Args) into the top-level attribute values, then checks the
// result's length against the schema's full (inherited + own) attribute
// count for typeName — a STEP instance line always supplies one value per
// attribute in the complete inheritance chain, root first. A mismatch
// yields SchemaArity but still returns the decoded values — the caller
// records the error and the row is skipped (spec §4.3). Values are
// therefore indexed in root-first flattened order: index 0 is the first
// attribute IfcRoot declares, not the first attribute the concrete type
// itself adds.
func Decode(expressID uint32, typeName string, args []byte, table *intern.Table) ([]Value, error) {
	p := &parser{src: args, table: table}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '(' {
		return nil, apperrors.InvalidStepf(int64(expressID), "argument list must start with '('")
	}
	p.pos++
	values, err := p.parseList(')')
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidStep, "decoding entity args")
	}

	if n, ok := schema.Global().AttributeCount(typeName); ok {
		if n != len(values) {
			return values, apperrors.SchemaArityf(int64(expressID),
				"type %s: expected %d attributes, decoded %d", typeName, n, len(values))
		}
	} else {
		return values, apperrors.UnknownTypef(int64(expressID), "type %s not in schema registry", typeName)
	}
	return values, nil
}

type parser struct {
	src   []byte
	pos   int
	table *intern.Table
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		if c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*' {
			end := p.pos + 2
			for end+1 < len(p.src) && !(p.src[end] == '*' && p.src[end+1] == '/') {
				end++
			}
			p.pos = end + 2
			continue
		}
		break
	}
}

// parseList parses comma-separated values until it consumes closer.
func (p *parser) parseList(closer byte) ([]Value, error) {
	var values []Value
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == closer {
		p.pos++
		return values, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return values, err
		}
		values = append(values, v)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return values, apperrors.New(apperrors.CodeInvalidStep, "unexpected end of argument list")
		}
		if p.src[p.pos] == ',' {
			p.pos++
			p.skipSpace()
			continue
		}
		if p.src[p.pos] == closer {
			p.pos++
			return values, nil
		}
		return values, apperrors.New(apperrors.CodeInvalidStep, "expected ',' or closing delimiter")
	}
}

func (p *parser) parseValue() (Value, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Value{}, apperrors.New(apperrors.CodeInvalidStep, "unexpected end of value")
	}
	c := p.src[p.pos]
	switch {
	case c == '$':
		p.pos++
		return Null(), nil
	case c == '*':
		p.pos++
		return Null(), nil
	case c == '\'':
		return p.parseString()
	case c == '#':
		return p.parseRef()
	case c == '(':
		p.pos++
		items, err := p.parseList(')')
		if err != nil {
			return Value{}, err
		}
		return List(items), nil
	case c == '.':
		return p.parseDotted()
	case c == '-' || c == '+' || isDigit(c):
		return p.parseNumber()
	case isAlpha(c):
		return p.parseTypedOrIdent()
	default:
		return Value{}, apperrors.New(apperrors.CodeInvalidStep, "unexpected character in value")
	}
}

func (p *parser) parseRef() (Value, error) {
	p.pos++ // consume '#'
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return Value{}, apperrors.New(apperrors.CodeInvalidStep, "expected digits after '#'")
	}
	id, _ := strconv.ParseUint(string(p.src[start:p.pos]), 10, 32)
	return Ref(uint32(id)), nil
}

func (p *parser) parseString() (Value, error) {
	p.pos++ // consume opening quote
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\'' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				sb.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return String(p.table.Intern(unescapeStep(sb.String()))), nil
		}
		sb.WriteByte(c)
		p.pos++
	}
	return Value{}, apperrors.New(apperrors.CodeTruncated, "unterminated string literal")
}

// unescapeStep decodes STEP's \X\HH and \X2\....\X0\ Unicode escapes back
// to UTF-8, alongside plain bytes.
func unescapeStep(s string) string {
	if !strings.Contains(s, `\X`) {
		return s
	}
	var out strings.Builder
	i := 0
	for i < len(s) {
		if i+2 < len(s) && s[i] == '\\' && s[i+1] == 'X' && s[i+2] == '\\' {
			// \X\HH\ single byte hex
			j := i + 3
			end := strings.Index(s[j:], `\`)
			if end < 0 {
				break
			}
			hex := s[j : j+end]
			if b, err := strconv.ParseUint(hex, 16, 8); err == nil {
				out.WriteRune(rune(b)) // ISO 8859-1 code point, encoded as UTF-8
			}
			i = j + end + 1
			continue
		}
		if i+2 < len(s) && strings.HasPrefix(s[i:], `\X2\`) {
			j := i + 4
			end := strings.Index(s[j:], `\X0\`)
			if end < 0 {
				break
			}
			quads := s[j : j+end]
			for k := 0; k+3 < len(quads); k += 4 {
				if cp, err := strconv.ParseUint(quads[k:k+4], 16, 32); err == nil {
					out.WriteRune(rune(cp))
				}
			}
			i = j + end + 4
			continue
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

// parseDotted handles .T. .F. .U. (logical) and .LABEL. (enum).
func (p *parser) parseDotted() (Value, error) {
	p.pos++ // consume leading '.'
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '.' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return Value{}, apperrors.New(apperrors.CodeInvalidStep, "unterminated enum/logical literal")
	}
	label := string(p.src[start:p.pos])
	p.pos++ // consume trailing '.'
	switch label {
	case "T":
		return Bool(true), nil
	case "F":
		return Bool(false), nil
	case "U":
		return LogicalUnknown(), nil
	default:
		return Enum(p.table.Intern(strings.ToUpper(label))), nil
	}
}

func (p *parser) parseNumber() (Value, error) {
	start := p.pos
	if p.src[p.pos] == '-' || p.src[p.pos] == '+' {
		p.pos++
	}
	isReal := false
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		isReal = true
		p.pos++
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'E' || p.src[p.pos] == 'e') {
		isReal = true
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
			p.pos++
		}
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	text := string(p.src[start:p.pos])
	if isReal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, apperrors.New(apperrors.CodeInvalidStep, "malformed real literal: "+text)
		}
		return Real(f), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Value{}, apperrors.New(apperrors.CodeInvalidStep, "malformed integer literal: "+text)
	}
	return Integer(n), nil
}

// parseTypedOrIdent handles `TYPE(value)` typed wrappers and bare
// identifiers (e.g. unrecognized keyword constants), unwrapping the inner
// value and retaining the wrapper name only.
func (p *parser) parseTypedOrIdent() (Value, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[start:p.pos])
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		p.pos++
		inner, err := p.parseList(')')
		if err != nil {
			return Value{}, err
		}
		if len(inner) == 1 {
			v := inner[0]
			v.TypeWrapper = name
			return v, nil
		}
		return List(inner), nil
	}
	return Enum(p.table.Intern(strings.ToUpper(name))), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }
func isIdentByte(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '_'
}
