package catalog

// Variants is the supported size-variant catalog (SUPPORTED_VARIANTS).
// Each entry that denotes a plain operand size maps to its bit width;
// "ABSQ" is a special form (absolute-quad move) rather than a size and
// is carried with Bits 64 to reflect the 64-bit immediate/register it
// requires, per absqOperands in the validator.
var Variants = map[string]int{
	"B":    8,
	"W":    16,
	"L":    32,
	"Q":    64,
	"ABSQ": 64,
}

// SizeVariants is the subset of Variants that denote a plain operand
// size, used by variantRegisterOperandSize. ABSQ is excluded: its
// constraints are enforced by absqOperands instead.
var SizeVariants = map[string]int{
	"B": 8,
	"W": 16,
	"L": 32,
	"Q": 64,
}

// IsAbsq reports whether variant is the absolute-quad special form.
func IsAbsq(variant string) bool {
	return variant == "ABSQ"
}
