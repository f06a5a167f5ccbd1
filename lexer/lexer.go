// Package lexer scans AT&T-syntax x86-64 assembly source text into a
// flat token stream. The scanner is a hand-written byte-index state
// machine (no lexer generator, no regexp) that recognizes instruction
// mnemonics, registers, immediates, the seven memory-operand shapes,
// and commas, enforcing the whitespace/newline rules between
// instructions described in the source grammar.
package lexer

import (
	"strings"

	"github.com/attcore/attcore/catalog"
	"github.com/attcore/attcore/internal/numeric"
	"github.com/attcore/attcore/token"
	"github.com/sirupsen/logrus"
)

// state tracks where in a statement the scanner currently sits, so the
// same lexical class (an alphabetic run, say) can mean different things
// — and be valid or not — depending on position.
type state int

const (
	stLineStart state = iota
	stAfterMnemonic
	stExpectOperand
	stAfterOperand
)

// Lexer scans a single source string into tokens, one Next() call at a
// time. It holds no resources beyond the input string and its own scan
// position, and is safe to discard at any point.
type Lexer struct {
	input string
	pos   int
	line  int
	state state
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{input: src, pos: 0, line: 1, state: stLineStart}
}

// Tokenize scans source in its entirety and returns the resulting
// token stream, or the first lexical error encountered.
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	var toks []token.Token
	for {
		tok, done, err := l.Next()
		if err != nil {
			return nil, err
		}
		if done {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// Next scans and returns the next token. done is true once the input
// is exhausted and there is nothing left to return.
func (l *Lexer) Next() (tok token.Token, done bool, err error) {
	for {
		ch := l.peek()
		switch {
		case ch == 0:
			return token.Token{}, true, nil

		case ch == ' ' || ch == '\t':
			l.skipWhitespace()
			if l.state == stAfterMnemonic {
				l.state = stExpectOperand
			}
			continue

		case ch == '\n' || ch == '\r':
			l.skipNewline()
			l.state = stLineStart
			continue

		case ch == '#':
			l.skipComment()
			continue

		case ch == ',':
			if l.state == stLineStart {
				return token.Token{}, false, newError(UnexpectedCharacter, string(ch), l.line, l.pos)
			}
			line, pos := l.line, l.pos
			l.advance()
			l.state = stExpectOperand
			return token.Token{Kind: token.COMMA, Token: ",", Line: line, Pos: pos}, false, nil
		}

		switch l.state {
		case stLineStart:
			return l.scanMnemonic()
		case stExpectOperand:
			return l.scanOperand()
		case stAfterOperand:
			return l.scanAfterOperand()
		case stAfterMnemonic:
			// Whitespace handling above always moves us to
			// stExpectOperand before another token is scanned; a
			// non-whitespace, non-EOF character here means the
			// mnemonic wasn't followed by whitespace.
			return token.Token{}, false, newError(ExpectedWhitespaceAfterInstruction, string(ch), l.line, l.pos)
		}
	}
}

func (l *Lexer) scanAfterOperand() (token.Token, bool, error) {
	ch := l.peek()
	if isLetter(ch) {
		start := l.pos
		l.scanAlphaRun()
		return token.Token{}, false, newError(ExpectedNewlineBeforeSubsequentInstruction, l.input[start:l.pos], l.line, start)
	}
	if ch == ')' {
		return token.Token{}, false, newError(MissingOpeningParenthesis, string(ch), l.line, l.pos)
	}
	return token.Token{}, false, newError(UnexpectedCharacter, string(ch), l.line, l.pos)
}

func (l *Lexer) scanOperand() (token.Token, bool, error) {
	ch := l.peek()
	switch {
	case ch == '%':
		return l.scanRegister()
	case ch == '$':
		return l.scanImmediate()
	case ch == '(':
		return l.scanMemory()
	case ch == ')':
		return token.Token{}, false, newError(MissingOpeningParenthesis, string(ch), l.line, l.pos)
	case isDigit(ch) || (ch == '-' && isDigit(l.peekN(1))):
		return l.scanMemory()
	case isLetter(ch):
		return token.Token{}, false, newError(UnexpectedCharacter, string(ch), l.line, l.pos)
	default:
		return token.Token{}, false, newError(UnexpectedCharacter, string(ch), l.line, l.pos)
	}
}

// scanMnemonic scans the leading alphabetic run at an instruction
// position and splits it into base+variant via the catalog.
func (l *Lexer) scanMnemonic() (token.Token, bool, error) {
	line, pos := l.line, l.pos
	start := l.pos
	l.scanAlphaRun()
	run := strings.ToUpper(l.input[start:l.pos])

	base, variant, ok := catalog.LongestMnemonicMatch(run)
	if !ok {
		return token.Token{}, false, newError(UnsupportedInstruction, run, line, pos)
	}

	next := l.peek()
	if next != 0 && next != ' ' && next != '\t' {
		return token.Token{}, false, newError(ExpectedWhitespaceAfterInstruction, string(next), l.line, l.pos)
	}

	logrus.WithFields(logrus.Fields{"base": base, "variant": variant}).Debug("lexer: matched mnemonic")

	l.state = stAfterMnemonic
	return token.Token{
		Kind:        token.INSTRUCTION,
		Token:       base + variant,
		Instruction: base,
		Variant:     variant,
		Line:        line,
		Pos:         pos,
	}, false, nil
}

func (l *Lexer) scanRegister() (token.Token, bool, error) {
	line, pos := l.line, l.pos
	l.advance() // '%'
	start := l.pos
	for isAlnum(l.peek()) {
		l.advance()
	}
	name := strings.ToUpper(l.input[start:l.pos])

	if _, ok := catalog.LookupRegister(name); !ok {
		return token.Token{}, false, newError(UnexpectedRegister, "%"+name, line, pos)
	}

	l.state = stAfterOperand
	return token.Token{Kind: token.REGISTER, Token: "%" + name, Line: line, Pos: pos}, false, nil
}

func (l *Lexer) scanImmediate() (token.Token, bool, error) {
	line, pos := l.line, l.pos
	l.advance() // '$'

	value, canon, consumed, err := numeric.Scan(l.input[l.pos:])
	if err != nil {
		return token.Token{}, false, numericErr(err, l.input[l.pos:], line, pos)
	}
	l.pos += consumed

	l.state = stAfterOperand
	return token.Token{Kind: token.IMMEDIATE, Token: "$" + canon, Value: value, Line: line, Pos: pos}, false, nil
}

func numericErr(err error, text string, line, pos int) *Error {
	if err == numeric.ErrEmptyImmediate {
		return newError(EmptyImmediate, text, line, pos)
	}
	return newError(InvalidNumber, text, line, pos)
}

func (l *Lexer) skipWhitespace() {
	for l.peek() == ' ' || l.peek() == '\t' {
		l.advance()
	}
}

func (l *Lexer) skipNewline() {
	ch := l.advance()
	if ch == '\r' && l.peek() == '\n' {
		l.advance()
	}
}

func (l *Lexer) skipComment() {
	for l.peek() != '\n' && l.peek() != '\r' && l.peek() != 0 {
		l.advance()
	}
}

func (l *Lexer) scanAlphaRun() {
	for isLetter(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	p := l.pos + n
	if p >= len(l.input) {
		return 0
	}
	return l.input[p]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
	}
	return ch
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlnum(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
