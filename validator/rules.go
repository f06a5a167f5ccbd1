package validator

import (
	"math/big"
	"strings"

	"github.com/attcore/attcore/catalog"
	"github.com/attcore/attcore/token"
)

var (
	int32Min = big.NewInt(-2147483648)
	int32Max = big.NewInt(2147483647)
	int64Min = new(big.Int).Lsh(big.NewInt(-1), 63)
	int64Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 63), big.NewInt(1))
)

var validScales = map[int64]bool{1: true, 2: true, 4: true, 8: true}

func registerSize(reg token.Token) (int, bool) {
	name := strings.TrimPrefix(reg.Token, "%")
	r, ok := catalog.LookupRegister(name)
	if !ok {
		return 0, false
	}
	return r.Size, true
}

// AbsqOperands enforces that the "absolute quad" move form accepts
// only a 64-bit immediate-to-register move: exactly two operands,
// operand[0] an IMMEDIATE and operand[1] a 64-bit REGISTER. It is a
// no-op for any instruction whose variant isn't ABSQ.
func AbsqOperands(instr token.Token, operands []token.Token) error {
	if !catalog.IsAbsq(instr.Variant) {
		return nil
	}

	if len(operands) != 2 {
		return newError(BadAbsqOperands, instr.Token, "ABSQ form requires exactly two operands")
	}
	if operands[0].Kind != token.IMMEDIATE {
		return newError(BadAbsqOperands, instr.Token, "ABSQ form requires an immediate source operand")
	}
	if operands[1].Kind != token.REGISTER {
		return newError(BadAbsqOperands, instr.Token, "ABSQ form requires a register destination operand")
	}
	size, ok := registerSize(operands[1])
	if !ok || size != 64 {
		return newError(BadAbsqOperands, instr.Token, "ABSQ form requires a 64-bit destination register")
	}
	return nil
}

// MovExtensionOperands enforces that a zero/sign-extending move
// variant (MOVZ/MOVS) widens: the destination register's size class
// must be strictly larger than the size class the variant's source
// letter implies. A no-op for instructions outside the extension
// family.
func MovExtensionOperands(instr token.Token, operands []token.Token) error {
	if !catalog.ExtensionMnemonics[instr.Instruction] {
		return nil
	}

	if len(instr.Variant) != 2 {
		return newError(BadExtensionOperands, instr.Token, "extension move requires a two-letter size variant")
	}
	srcSize, ok := catalog.SizeVariants[string(instr.Variant[0])]
	if !ok {
		return newError(BadExtensionOperands, instr.Token, "unrecognized source size in variant \""+instr.Variant+"\"")
	}

	if len(operands) != 2 {
		return newError(BadExtensionOperands, instr.Token, "extension move requires exactly two operands")
	}
	dest := operands[1]
	if dest.Kind != token.REGISTER {
		return newError(BadExtensionOperands, instr.Token, "extension move requires a register destination operand")
	}
	destSize, ok := registerSize(dest)
	if !ok {
		return newError(BadExtensionOperands, instr.Token, "unrecognized destination register")
	}
	if destSize <= srcSize {
		return newError(BadExtensionOperands, instr.Token, "destination register must be wider than the source operand size")
	}
	return nil
}

// NoMemoryToMemory forbids an instruction from taking two MEMORY
// operands at once, per x86-64's prohibition on memory-to-memory moves
// for the general MOV family (and, conservatively, every other schema
// that reuses this rule).
func NoMemoryToMemory(instr token.Token, operands []token.Token) error {
	seenMemory := false
	for _, op := range operands {
		if op.Kind != token.MEMORY {
			continue
		}
		if seenMemory {
			return newError(MemoryToMemory, instr.Token, "memory-to-memory operands are not permitted")
		}
		seenMemory = true
	}
	return nil
}

// ValidMemoryOperands checks every MEMORY operand's scale and
// displacement range. Scale, if present, must be one of {1,2,4,8}.
// Displacement must fit a signed 32-bit range, unless the instruction
// is the 64-bit-absolute ABSQ variant, which widens the permitted
// range to signed 64-bit.
func ValidMemoryOperands(instr token.Token, operands []token.Token) error {
	dispMin, dispMax := int32Min, int32Max
	if catalog.IsAbsq(instr.Variant) {
		dispMin, dispMax = int64Min, int64Max
	}

	for _, op := range operands {
		if op.Kind != token.MEMORY {
			continue
		}
		if op.Scale != nil {
			if !op.Scale.IsInt64() || !validScales[op.Scale.Int64()] {
				return newError(InvalidMemoryOperand, instr.Token, "scale must be one of 1, 2, 4, 8")
			}
		}
		if op.Displacement != nil {
			if op.Displacement.Cmp(dispMin) < 0 || op.Displacement.Cmp(dispMax) > 0 {
				return newError(InvalidMemoryOperand, instr.Token, "displacement out of range")
			}
		}
	}
	return nil
}

// VariantRegisterOperandSize enforces operand-size agreement. For a
// variant whose suffix denotes an operand size (B/W/L/Q), every
// REGISTER operand's size class must equal that size. For any other
// instruction whose catalog entry names a nonzero default size, every
// REGISTER operand's size class must equal that default. Otherwise,
// register operands must all agree on one size class; with at most one
// register operand there is nothing to disagree about.
func VariantRegisterOperandSize(instr token.Token, operands []token.Token) error {
	required := 0
	if bits, ok := catalog.SizeVariants[instr.Variant]; ok {
		required = bits
	} else if entry, ok := catalog.Instructions[instr.Instruction]; ok {
		required = entry.DefaultSize
	}

	seen := map[int]bool{}
	for _, op := range operands {
		if op.Kind != token.REGISTER {
			continue
		}
		size, ok := registerSize(op)
		if !ok {
			continue
		}
		if required != 0 && size != required {
			return newError(OperandSizeMismatch, instr.Token, "register operand size does not match the instruction's size variant")
		}
		seen[size] = true
	}

	if required == 0 && len(seen) > 1 {
		return newError(OperandSizeMismatch, instr.Token, "register operands must agree on a size class")
	}
	return nil
}
