// Package validator certifies a tokenized instruction and its operands
// against a per-mnemonic schema: operand count, operand kinds,
// size-class compatibility, and mnemonic-specific constraints such as
// the ABSQ absolute-move form or the memory-to-memory prohibition.
package validator

import (
	"github.com/attcore/attcore/token"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Rule is a pure predicate over an instruction token and its operand
// tokens. It returns nil on success, or a *Error describing the first
// violation it finds.
type Rule func(instr token.Token, operands []token.Token) error

// Schema is the validation contract for one mnemonic: the variants it
// supports, the operand counts it accepts, and the ordered rule lists
// the spec's validator framework folds over.
type Schema struct {
	Instruction       string
	SupportedVariants map[string]bool
	OperandCounts     map[int]bool
	OperandValidators []Rule
	Validators        []Rule
}

// Validate certifies instr (an INSTRUCTION token) against its schema,
// given its already-tokenized operands. It implements the six-step
// procedure from spec.md §4.3: schema lookup, variant check, operand
// count check, then the operand-level and instruction-level rule
// lists in declared order, stopping at the first failure.
func Validate(instr token.Token, operands []token.Token) error {
	schema, ok := Schemas[instr.Instruction]
	if !ok {
		return newError(UnknownInstruction, instr.Token, "no schema registered for this mnemonic")
	}

	if instr.Variant != "" && !schema.SupportedVariants[instr.Variant] {
		return newError(UnsupportedVariant, instr.Token, "variant \""+instr.Variant+"\" is not supported by "+schema.Instruction)
	}

	if !schema.OperandCounts[len(operands)] {
		return newError(WrongOperandCount, instr.Token, "unexpected operand count")
	}

	if err := runRules(schema.OperandValidators, instr, operands); err != nil {
		return err
	}
	if err := runRules(schema.Validators, instr, operands); err != nil {
		return err
	}

	logrus.WithField("instruction", instr.Token).Debug("validator: instruction accepted")
	return nil
}

// runRules folds rules in order and returns the first failure, exactly
// the short-circuit composition spec.md's design notes call for.
// lo.Find locates that first failing rule without a hand-rolled loop
// with an early return; calling it again to obtain the error itself is
// cheap since every Rule is a pure, side-effect-free predicate.
func runRules(rules []Rule, instr token.Token, operands []token.Token) error {
	failing, found := lo.Find(rules, func(r Rule) bool {
		return r(instr, operands) != nil
	})
	if !found {
		return nil
	}
	return failing(instr, operands)
}
