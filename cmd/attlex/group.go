package main

import "github.com/attcore/attcore/token"

// statement is one instruction token paired with its operand tokens,
// commas stripped out.
type statement struct {
	instruction token.Token
	operands    []token.Token
}

// groupStatements splits a flat token stream into per-instruction
// statements. The lexer guarantees every stream is a sequence of
// INSTRUCTION tokens each followed by zero or more operand tokens
// interleaved with COMMA, so a single pass suffices.
func groupStatements(toks []token.Token) []statement {
	var statements []statement
	for _, tok := range toks {
		switch tok.Kind {
		case token.INSTRUCTION:
			statements = append(statements, statement{instruction: tok})
		case token.COMMA:
			continue
		default:
			last := &statements[len(statements)-1]
			last.operands = append(last.operands, tok)
		}
	}
	return statements
}
