// Package catalog holds the static, process-wide tables the lexer and
// validator consult: supported mnemonics, their size-suffix variants,
// and the general-purpose register file grouped by size class. Every
// table here is built once at package init and never mutated again,
// so concurrent readers never need to synchronize on it.
package catalog

// Instruction is a catalog entry: a base mnemonic plus the set of
// variant suffixes it supports. An instruction with no size suffixes
// at all (the jump family in this catalog) has an empty Variants set.
type Instruction struct {
	Name     string
	Variants map[string]bool
	// DefaultSize is the size class (bits) variantRegisterOperandSize
	// requires of every register operand of an instruction carrying no
	// size variant. Zero means "no default": register operands must
	// simply agree among themselves.
	DefaultSize int
}

// SupportsVariant reports whether suffix is a member of i's supported
// variant set. The empty suffix (no variant present on the token) is
// always considered supported here.
func (i Instruction) SupportsVariant(suffix string) bool {
	if suffix == "" {
		return true
	}
	return i.Variants[suffix]
}

func variantSet(suffixes ...string) map[string]bool {
	m := make(map[string]bool, len(suffixes))
	for _, s := range suffixes {
		m[s] = true
	}
	return m
}

// Instructions is the supported-mnemonic catalog (SUPPORTED_INSTRUCTIONS
// in spec terms). Keys are base mnemonics as they appear before any
// size suffix is stripped by the lexer.
var Instructions = map[string]Instruction{
	"MOV":  {Name: "MOV", Variants: variantSet("B", "W", "L", "Q", "ABSQ")},
	"MOVZ": {Name: "MOVZ", Variants: variantSet("BL", "WL", "BQ", "WQ", "LQ")},
	"MOVS": {Name: "MOVS", Variants: variantSet("BL", "WL", "BQ", "WQ", "LQ")},

	"ADD": {Name: "ADD", Variants: variantSet("B", "W", "L", "Q")},
	"SUB": {Name: "SUB", Variants: variantSet("B", "W", "L", "Q")},
	"AND": {Name: "AND", Variants: variantSet("B", "W", "L", "Q")},
	"OR":  {Name: "OR", Variants: variantSet("B", "W", "L", "Q")},
	"XOR": {Name: "XOR", Variants: variantSet("B", "W", "L", "Q")},
	"CMP": {Name: "CMP", Variants: variantSet("B", "W", "L", "Q")},

	"TEST": {Name: "TEST", Variants: variantSet("B", "W", "L", "Q")},
	"LEA":  {Name: "LEA", Variants: variantSet("W", "L", "Q")},

	"PUSH": {Name: "PUSH", Variants: variantSet("W", "Q")},
	"POP":  {Name: "POP", Variants: variantSet("W", "Q")},

	"INC": {Name: "INC", Variants: variantSet("B", "W", "L", "Q")},
	"DEC": {Name: "DEC", Variants: variantSet("B", "W", "L", "Q")},
	"NEG": {Name: "NEG", Variants: variantSet("B", "W", "L", "Q")},
	"NOT": {Name: "NOT", Variants: variantSet("B", "W", "L", "Q")},

	"JMP": {Name: "JMP", Variants: variantSet(), DefaultSize: 64},
	"JE":  {Name: "JE", Variants: variantSet(), DefaultSize: 64},
	"JNE": {Name: "JNE", Variants: variantSet(), DefaultSize: 64},
	"JG":  {Name: "JG", Variants: variantSet(), DefaultSize: 64},
	"JGE": {Name: "JGE", Variants: variantSet(), DefaultSize: 64},
	"JL":  {Name: "JL", Variants: variantSet(), DefaultSize: 64},
	"JLE": {Name: "JLE", Variants: variantSet(), DefaultSize: 64},
}

// ExtensionMnemonics names the base mnemonics whose variant encodes a
// (source size, destination size) pair rather than a single operand
// size, i.e. the zero/sign-extending move family movExtensionOperands
// validates.
var ExtensionMnemonics = map[string]bool{
	"MOVZ": true,
	"MOVS": true,
}

// IsKnown reports whether name is a base mnemonic in the catalog.
func IsKnown(name string) bool {
	_, ok := Instructions[name]
	return ok
}

// LongestMnemonicMatch splits run (the full leading alphabetic run the
// lexer scanned) into a base mnemonic plus an optional variant suffix,
// such that base+variant == run exactly. When more than one known base
// is a prefix of run with a valid remainder (empty, or a supported
// variant of that base), the longest such base wins — so "MOVZBL"
// resolves to base "MOVZ", variant "BL", never to a shorter base with
// a coincidentally-matching longer "variant". It returns ok=false if
// no registered mnemonic accounts for the whole run.
func LongestMnemonicMatch(run string) (base string, variant string, ok bool) {
	bestLen := -1
	for name, instr := range Instructions {
		if len(name) > len(run) || run[:len(name)] != name {
			continue
		}
		rest := run[len(name):]
		if rest != "" && !instr.Variants[rest] {
			continue
		}
		if len(name) > bestLen {
			bestLen = len(name)
			base = name
			variant = rest
			ok = true
		}
	}
	return base, variant, ok
}
