package validator

import "github.com/attcore/attcore/catalog"

// Schemas is the package-level registry built at init time from
// catalog.Instructions: one Schema per supported mnemonic, wired with
// the operand-count and rule-list combination its semantics require.
var Schemas map[string]*Schema

func init() {
	Schemas = make(map[string]*Schema, len(catalog.Instructions))

	twoOperand := map[int]bool{2: true}
	oneOperand := map[int]bool{1: true}

	for name, instr := range catalog.Instructions {
		schema := &Schema{
			Instruction:       name,
			SupportedVariants: instr.Variants,
		}

		switch {
		case catalog.ExtensionMnemonics[name]:
			schema.OperandCounts = twoOperand
			schema.OperandValidators = []Rule{NoMemoryToMemory, ValidMemoryOperands}
			schema.Validators = []Rule{MovExtensionOperands}

		case name == "MOV":
			schema.OperandCounts = twoOperand
			schema.OperandValidators = []Rule{NoMemoryToMemory, ValidMemoryOperands}
			schema.Validators = []Rule{AbsqOperands, VariantRegisterOperandSize}

		case name == "LEA":
			schema.OperandCounts = twoOperand
			schema.OperandValidators = []Rule{ValidMemoryOperands}
			schema.Validators = []Rule{VariantRegisterOperandSize}

		case name == "ADD", name == "SUB", name == "AND", name == "OR",
			name == "XOR", name == "CMP", name == "TEST":
			schema.OperandCounts = twoOperand
			schema.OperandValidators = []Rule{NoMemoryToMemory, ValidMemoryOperands}
			schema.Validators = []Rule{VariantRegisterOperandSize}

		case name == "PUSH", name == "POP":
			schema.OperandCounts = oneOperand
			schema.OperandValidators = []Rule{ValidMemoryOperands}
			schema.Validators = []Rule{VariantRegisterOperandSize}

		case name == "INC", name == "DEC", name == "NEG", name == "NOT":
			schema.OperandCounts = oneOperand
			schema.OperandValidators = []Rule{ValidMemoryOperands}
			schema.Validators = []Rule{VariantRegisterOperandSize}

		case name == "JMP", name == "JE", name == "JNE", name == "JG",
			name == "JGE", name == "JL", name == "JLE":
			schema.OperandCounts = oneOperand
			schema.OperandValidators = []Rule{ValidMemoryOperands}
			schema.Validators = []Rule{VariantRegisterOperandSize}

		default:
			schema.OperandCounts = twoOperand
		}

		Schemas[name] = schema
	}
}
