// Package step implements the zero-copy STEP tokenizer (C2): a byte-slice
// scanner that yields entity references without decoding their attributes.
package step

import (
	"strings"

	apperrors "github.com/arx-os/ifclite/internal/common/errors"
)

// EntityRef locates one top-level STEP form in the source buffer.
// Immutable after tokenization.
type EntityRef struct {
	ExpressID uint32
	TypeName  string // uppercase canonical, e.g. "IFCWALL"
	Offset    uint32 // offset of the opening '(' of the argument list
	Length    uint32 // byte length from Offset through the closing ')'
	Line      uint32 // line number of the leading '#'
}

// Args returns the raw, still-encoded argument-list bytes (including the
// surrounding parens) for ref within src.
func (r EntityRef) Args(src []byte) []byte {
	return src[r.Offset : r.Offset+r.Length]
}

// Tokenizer scans a STEP source buffer for top-level entity forms. It
// holds only a byte cursor and line counter; its one heap allocation per
// entity is the uppercased TypeName string of the returned EntityRef.
type Tokenizer struct {
	src       []byte
	pos       int
	line      uint32
	dataStart int
	started   bool
}

// New creates a Tokenizer over src. Scanning begins after the first
// top-level "DATA;" marker.
func New(src []byte) *Tokenizer {
	return &Tokenizer{src: src, line: 1}
}

func (t *Tokenizer) findDataSection() error {
	idx := indexDataMarker(t.src)
	if idx < 0 {
		return apperrors.InvalidStepf(-1, "no DATA; section found")
	}
	t.countLines(0, idx)
	t.pos = idx
	t.dataStart = idx
	t.started = true
	return nil
}

// indexDataMarker scans for a case-insensitive "DATA;" without copying or
// uppercasing src, which can run several hundred megabytes (spec §1): each
// candidate byte is compared against the marker with a per-byte case fold
// instead of allocating an uppercased duplicate of the whole buffer.
func indexDataMarker(src []byte) int {
	const marker = "DATA;"
	for i := 0; i+len(marker) <= len(src); i++ {
		if src[i] != 'D' && src[i] != 'd' {
			continue
		}
		if equalFoldASCII(src[i:i+len(marker)], marker) {
			return i + len(marker)
		}
	}
	return -1
}

func equalFoldASCII(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c >= 'a' && c <= 'z' {
			c -= 32
		}
		if c != s[i] {
			return false
		}
	}
	return true
}

func (t *Tokenizer) countLines(from, to int) {
	for i := from; i < to; i++ {
		if t.src[i] == '\n' {
			t.line++
		}
	}
}

// Next returns the next entity reference, or ok=false at end of the DATA
// section (on encountering ENDSEC; or EOF). Fails with InvalidStep when
// there is no DATA; section or a form's "#id = TYPE(" header is malformed,
// and with Truncated when the buffer ends before a form's parens balance.
func (t *Tokenizer) Next() (EntityRef, bool, error) {
	if !t.started {
		if err := t.findDataSection(); err != nil {
			return EntityRef{}, false, err
		}
	}

	for {
		t.skipTrivia()
		if t.pos >= len(t.src) {
			return EntityRef{}, false, nil
		}
		if t.atEndsec() {
			return EntityRef{}, false, nil
		}
		if t.src[t.pos] != '#' {
			// Not a form start; skip one byte defensively and keep looking.
			// Malformed content before DATA; close would already have
			// surfaced as InvalidStep from findDataSection's marker scan.
			t.pos++
			continue
		}
		return t.scanForm()
	}
}

func (t *Tokenizer) atEndsec() bool {
	rest := t.src[t.pos:]
	if len(rest) < 7 {
		return false
	}
	return strings.EqualFold(string(rest[:7]), "ENDSEC;")
}

func (t *Tokenizer) skipTrivia() {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case c == '\n':
			t.line++
			t.pos++
		case c == ' ' || c == '\t' || c == '\r':
			t.pos++
		case c == '/' && t.pos+1 < len(t.src) && t.src[t.pos+1] == '*':
			end := indexComment(t.src, t.pos+2)
			if end < 0 {
				t.pos = len(t.src)
				return
			}
			t.countLines(t.pos, end+2)
			t.pos = end + 2
		default:
			return
		}
	}
}

func indexComment(src []byte, from int) int {
	for i := from; i+1 < len(src); i++ {
		if src[i] == '*' && src[i+1] == '/' {
			return i
		}
	}
	return -1
}

func (t *Tokenizer) scanForm() (EntityRef, bool, error) {
	startLine := t.line
	hashPos := t.pos
	t.pos++ // consume '#'

	idStart := t.pos
	for t.pos < len(t.src) && isDigit(t.src[t.pos]) {
		t.pos++
	}
	if t.pos == idStart {
		return EntityRef{}, false, apperrors.InvalidStepf(-1, "expected digits after '#' at byte %d", hashPos)
	}
	id := parseUint(t.src[idStart:t.pos])

	t.skipTrivia()
	if t.pos >= len(t.src) || t.src[t.pos] != '=' {
		return EntityRef{}, false, apperrors.InvalidStepf(int64(id), "expected '=' after express id")
	}
	t.pos++
	t.skipTrivia()

	typeStart := t.pos
	for t.pos < len(t.src) && isIdentByte(t.src[t.pos]) {
		t.pos++
	}
	if t.pos == typeStart {
		return EntityRef{}, false, apperrors.InvalidStepf(int64(id), "expected type name")
	}
	typeName := strings.ToUpper(string(t.src[typeStart:t.pos]))

	t.skipTrivia()
	if t.pos >= len(t.src) || t.src[t.pos] != '(' {
		return EntityRef{}, false, apperrors.InvalidStepf(int64(id), "expected '(' after type name %s", typeName)
	}
	openParen := t.pos

	closeParen, err := t.scanBalancedParens(int64(id))
	if err != nil {
		return EntityRef{}, false, err
	}

	// Consume the trailing ';' if present (tolerant of its absence at EOF,
	// which is caught by the buffer-end check in scanBalancedParens).
	t.pos = closeParen + 1
	for t.pos < len(t.src) && (t.src[t.pos] == ' ' || t.src[t.pos] == '\t' || t.src[t.pos] == '\r') {
		t.pos++
	}
	if t.pos < len(t.src) && t.src[t.pos] == ';' {
		t.pos++
	}

	return EntityRef{
		ExpressID: id,
		TypeName:  typeName,
		Offset:    uint32(openParen),
		Length:    uint32(closeParen - openParen + 1),
		Line:      startLine,
	}, true, nil
}

// scanBalancedParens scans from t.pos (positioned at the opening '(')
// honoring string literals ('...' with '' escape) and /*...*/ comments,
// returning the index of the matching closing ')'.
func (t *Tokenizer) scanBalancedParens(id int64) (int, error) {
	depth := 0
	i := t.pos
	n := len(t.src)
	for i < n {
		c := t.src[i]
		switch {
		case c == '\n':
			t.line++
			i++
		case c == '\'':
			i++
			for i < n {
				if t.src[i] == '\'' {
					if i+1 < n && t.src[i+1] == '\'' {
						i += 2
						continue
					}
					i++
					break
				}
				if t.src[i] == '\n' {
					t.line++
				}
				i++
			}
			if i > n {
				return 0, apperrors.Truncatedf("unterminated string literal in entity #%d", id)
			}
		case c == '/' && i+1 < n && t.src[i+1] == '*':
			end := indexComment(t.src, i+2)
			if end < 0 {
				return 0, apperrors.Truncatedf("unterminated comment in entity #%d", id)
			}
			t.countLines(i, end+2)
			i = end + 2
		case c == '(':
			depth++
			i++
		case c == ')':
			depth--
			i++
			if depth == 0 {
				t.pos = i
				return i - 1, nil
			}
		default:
			i++
		}
	}
	return 0, apperrors.Truncatedf("unbalanced parens in entity #%d: reached end of buffer", id)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_'
}

func parseUint(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v*10 + uint32(c-'0')
	}
	return v
}
