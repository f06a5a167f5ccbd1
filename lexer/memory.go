package lexer

import (
	"math/big"
	"strings"

	"github.com/attcore/attcore/catalog"
	"github.com/attcore/attcore/internal/numeric"
	"github.com/attcore/attcore/token"
)

// scanMemory recognizes the full AT&T memory-operand grammar: an
// optional leading displacement, optionally followed by a
// parenthesized (base[,index[,scale]]) tuple, or a bare displacement
// with no parentheses at all. This is the single entry point for all
// seven parenthesized shapes plus the bare-displacement form.
func (l *Lexer) scanMemory() (token.Token, bool, error) {
	line, pos := l.line, l.pos

	var displacement *big.Int
	var dispCanon string
	if ch := l.peek(); isDigit(ch) || (ch == '-' && isDigit(l.peekN(1))) {
		v, canon, consumed, err := numeric.Scan(l.input[l.pos:])
		if err != nil {
			return token.Token{}, false, numericErr(err, l.input[l.pos:], line, pos)
		}
		displacement = v
		dispCanon = canon
		l.pos += consumed
	}

	if l.peek() != '(' {
		// Bare displacement, no parenthesized addressing tuple.
		if displacement == nil {
			// Unreachable from scanOperand's dispatch (it only routes
			// here on digit/'-'/'('), kept for defensive clarity.
			return token.Token{}, false, newError(UnexpectedCharacter, string(l.peek()), l.line, l.pos)
		}
		l.state = stAfterOperand
		return token.Token{Kind: token.MEMORY, Token: dispCanon, Displacement: displacement, Line: line, Pos: pos}, false, nil
	}

	groupStart := l.pos
	l.advance() // '('

	rawStart := l.pos
	for {
		ch := l.peek()
		if ch == ')' {
			break
		}
		if ch == 0 || ch == '\n' || ch == '\r' {
			return token.Token{}, false, newError(MissingClosingParenthesis, l.input[groupStart:l.pos], line, groupStart)
		}
		l.advance()
	}
	raw := l.input[rawStart:l.pos]
	l.advance() // ')'

	fields := splitTopLevel(raw)
	tok, err := buildMemoryToken(fields, displacement, dispCanon, line, pos, raw)
	if err != nil {
		return token.Token{}, false, err
	}

	l.state = stAfterOperand
	return tok, false, nil
}

// splitTopLevel splits a parenthesized memory-operand body on commas,
// trimming interior whitespace from each field. There is no nesting to
// worry about: the grammar never allows parentheses within the body.
func splitTopLevel(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func buildMemoryToken(fields []string, displacement *big.Int, dispCanon string, line, pos int, raw string) (token.Token, error) {
	if len(fields) > 3 {
		return token.Token{}, newError(InvalidAddressing, "("+canonicalizeKeepingSpaces(raw)+")", line, pos)
	}

	var base, index string
	var baseCanon, indexCanon string
	var scale *big.Int
	var scaleCanon string

	switch len(fields) {
	case 1:
		base = fields[0]
		name, ok := registerField(base)
		if !ok {
			return token.Token{}, newError(InvalidBaseRegister, base, line, pos)
		}
		baseCanon = name

	case 2:
		base = fields[0]
		name, ok := registerField(base)
		if !ok {
			return token.Token{}, newError(InvalidBaseRegister, base, line, pos)
		}
		baseCanon = name

		index = fields[1]
		name, ok = registerField(index)
		if !ok {
			return token.Token{}, newError(InvalidIndexRegister, index, line, pos)
		}
		indexCanon = name

	case 3:
		base = fields[0]
		if base != "" {
			name, ok := registerField(base)
			if !ok {
				return token.Token{}, newError(InvalidBaseRegister, base, line, pos)
			}
			baseCanon = name
		}
		index = fields[1]
		name, ok := registerField(index)
		if !ok {
			return token.Token{}, newError(InvalidIndexRegister, index, line, pos)
		}
		indexCanon = name

		scaleText := fields[2]
		v, canon, consumed, err := numeric.Scan(scaleText)
		if err != nil || consumed != len(scaleText) {
			return token.Token{}, newError(InvalidNumber, scaleText, line, pos)
		}
		scale = v
		scaleCanon = canon
	}

	tok := token.Token{
		Kind:         token.MEMORY,
		Displacement: displacement,
		Scale:        scale,
		Line:         line,
		Pos:          pos,
	}
	if baseCanon != "" {
		tok.Base = baseCanon
	}
	if indexCanon != "" {
		tok.Index = indexCanon
	}

	if !tok.HasMemoryFields() {
		return token.Token{}, newError(InvalidBaseRegister, "", line, pos)
	}

	tok.Token = renderMemoryToken(dispCanon, len(fields), baseCanon, indexCanon, scaleCanon)
	return tok, nil
}

// registerField validates a parenthesized-tuple field as a "%NAME"
// register reference and returns its canonical bare name (no '%').
func registerField(field string) (string, bool) {
	if len(field) < 2 || field[0] != '%' {
		return "", false
	}
	name := strings.ToUpper(field[1:])
	if _, ok := catalog.LookupRegister(name); !ok {
		return "", false
	}
	return name, true
}

// renderMemoryToken reconstructs the canonical, tightly-packed token
// text: displacement (if any) immediately before '(', fields joined by
// ',' with no interior spaces, registers rendered with their '%'.
func renderMemoryToken(dispCanon string, fieldCount int, baseCanon, indexCanon, scaleCanon string) string {
	var b strings.Builder
	b.WriteString(dispCanon)
	b.WriteByte('(')

	reg := func(name string) string {
		if name == "" {
			return ""
		}
		return "%" + name
	}

	switch fieldCount {
	case 1:
		b.WriteString(reg(baseCanon))
	case 2:
		b.WriteString(reg(baseCanon))
		b.WriteByte(',')
		b.WriteString(reg(indexCanon))
	case 3:
		b.WriteString(reg(baseCanon))
		b.WriteByte(',')
		b.WriteString(reg(indexCanon))
		b.WriteByte(',')
		b.WriteString(scaleCanon)
	}
	b.WriteByte(')')
	return b.String()
}

// canonicalizeKeepingSpaces uppercases ASCII letters in s while
// preserving all other characters (spaces, commas, digits) verbatim —
// used only for the InvalidAddressing error text, which spec examples
// show with the source's original spacing intact.
func canonicalizeKeepingSpaces(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
