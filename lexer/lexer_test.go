package lexer

import (
	"math/big"
	"testing"

	"github.com/attcore/attcore/token"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bigIntComparer lets go-cmp compare *big.Int by value instead of by
// its unexported internal representation.
var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

func tokenizeOK(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	return toks
}

func TestTokenizePlainRegisterOperands(t *testing.T) {
	toks := tokenizeOK(t, "MOVQ %RAX, %RBX\n")
	require.Len(t, toks, 4)
	assert.Equal(t, token.INSTRUCTION, toks[0].Kind)
	assert.Equal(t, "MOV", toks[0].Instruction)
	assert.Equal(t, "Q", toks[0].Variant)
	assert.Equal(t, token.REGISTER, toks[1].Kind)
	assert.Equal(t, "%RAX", toks[1].Token)
	assert.Equal(t, token.COMMA, toks[2].Kind)
	assert.Equal(t, token.REGISTER, toks[3].Kind)
	assert.Equal(t, "%RBX", toks[3].Token)
}

func TestTokenizeCaseInsensitiveRegister(t *testing.T) {
	toks := tokenizeOK(t, "movq %rax, %rbx\n")
	assert.Equal(t, "%RAX", toks[1].Token)
	assert.Equal(t, "%RBX", toks[3].Token)
}

func TestTokenizeMovabsqVariant(t *testing.T) {
	toks := tokenizeOK(t, "MOVABSQ $0x1234567890ABCDEF, %RAX\n")
	require.Len(t, toks, 4)
	assert.Equal(t, "MOV", toks[0].Instruction)
	assert.Equal(t, "ABSQ", toks[0].Variant)
	assert.Equal(t, token.IMMEDIATE, toks[1].Kind)
	assert.Equal(t, "$0x1234567890ABCDEF", toks[1].Token)
}

func TestTokenizeFullMemoryForm(t *testing.T) {
	toks := tokenizeOK(t, "MOVQ -8(%RBP,%RAX,4), %RBX\n")
	require.Len(t, toks, 4)
	mem := toks[1]
	assert.Equal(t, token.MEMORY, mem.Kind)
	assert.Equal(t, "RBP", mem.Base)
	assert.Equal(t, "RAX", mem.Index)
	require.NotNil(t, mem.Scale)
	assert.Equal(t, int64(4), mem.Scale.Int64())
	require.NotNil(t, mem.Displacement)
	assert.Equal(t, int64(-8), mem.Displacement.Int64())
	assert.Equal(t, "-8(%RBP,%RAX,4)", mem.Token)
}

func TestTokenizeTwoFieldFormRequiresRealBase(t *testing.T) {
	_, err := Tokenize("MOVQ (,%RBX), %RCX\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, InvalidBaseRegister, lexErr.Kind)
}

func TestTokenizeNoBaseIndexScaleForm(t *testing.T) {
	toks := tokenizeOK(t, "MOVL (,%RAX,4), %EBX\n")
	mem := toks[1]
	assert.Equal(t, token.MEMORY, mem.Kind)
	assert.Equal(t, "", mem.Base)
	assert.Equal(t, "RAX", mem.Index)
	require.NotNil(t, mem.Scale)
	assert.Equal(t, int64(4), mem.Scale.Int64())
	assert.Equal(t, "(,%RAX,4)", mem.Token)
}

func TestTokenizeBareDisplacement(t *testing.T) {
	toks := tokenizeOK(t, "MOVL 0x1000, %EAX\n")
	mem := toks[1]
	assert.Equal(t, token.MEMORY, mem.Kind)
	require.NotNil(t, mem.Displacement)
	assert.Equal(t, int64(0x1000), mem.Displacement.Int64())
	assert.Equal(t, "0x1000", mem.Token)
}

func TestTokenizeMissingNewlineBetweenInstructions(t *testing.T) {
	_, err := Tokenize("MOVQ %RAX, %RBX MOVQ %RCX, %RDX\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ExpectedNewlineBeforeSubsequentInstruction, lexErr.Kind)
}

func TestTokenizeEmptyIndexField(t *testing.T) {
	_, err := Tokenize("MOVQ (%RBP,), %RAX\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, InvalidIndexRegister, lexErr.Kind)
}

func TestTokenizeTooManyAddressingFieldsPreservesSpacing(t *testing.T) {
	_, err := Tokenize("MOVQ -8(%RBP, %RAX, 4, %RCX), %RBX\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, InvalidAddressing, lexErr.Kind)
	assert.Equal(t, "(%RBP, %RAX, 4, %RCX)", lexErr.Text)
}

func TestTokenizeStrayClosingParenAtOperandPosition(t *testing.T) {
	_, err := Tokenize("MOV ), %RAX\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, MissingOpeningParenthesis, lexErr.Kind)
}

func TestTokenizeStrayClosingParenAfterOperand(t *testing.T) {
	_, err := Tokenize("MOV %rax), %rbx\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, MissingOpeningParenthesis, lexErr.Kind)
}

func TestTokenizeMnemonicDirectlyFollowedByNewline(t *testing.T) {
	_, err := Tokenize("MOV\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ExpectedWhitespaceAfterInstruction, lexErr.Kind)
}

func TestTokenizeEmptyImmediate(t *testing.T) {
	_, err := Tokenize("MOVQ $, %RAX\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, EmptyImmediate, lexErr.Kind)
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("MOVQ @foo, %RAX\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, UnexpectedCharacter, lexErr.Kind)
}

func TestTokenizeUnsupportedInstruction(t *testing.T) {
	_, err := Tokenize("FROBNICATE %RAX\n")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, UnsupportedInstruction, lexErr.Kind)
}

func TestTokenizeCommentIsIgnored(t *testing.T) {
	toks := tokenizeOK(t, "MOVQ %RAX, %RBX # move it\n")
	assert.Len(t, toks, 4)
}

func TestTokenizeImmediateHexCanonicalizesUppercase(t *testing.T) {
	toks := tokenizeOK(t, "MOVL $0xdeadbeef, %EAX\n")
	assert.Equal(t, "$0xDEADBEEF", toks[1].Token)
}

func TestTokenizeIsIdempotentOnItsOwnCanonicalOutput(t *testing.T) {
	first := tokenizeOK(t, "movq -8(%rbp,%rax,4), $0x10\n")
	var rendered string
	for i, tok := range first {
		if i > 0 {
			rendered += " "
		}
		rendered += tok.Token
	}
	rendered += "\n"

	second := tokenizeOK(t, rendered)
	if diff := cmp.Diff(stripPositions(first), stripPositions(second), bigIntComparer); diff != "" {
		t.Errorf("re-tokenizing canonical output changed tokens (-first +second):\n%s", diff)
	}
}

// stripPositions zeroes the diagnostic-only Line/Pos fields so two
// token streams derived from differently-spaced source can still
// compare equal on everything that carries meaning.
func stripPositions(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tok := range toks {
		tok.Line, tok.Pos = 0, 0
		out[i] = tok
	}
	return out
}

func TestTokenizeEveryCatalogMnemonic(t *testing.T) {
	sources := []string{
		"MOVQ %RAX, %RBX\n",
		"MOVZBL %AL, %EBX\n",
		"MOVSBL %AL, %EBX\n",
		"ADDQ %RAX, %RBX\n",
		"SUBQ %RAX, %RBX\n",
		"ANDQ %RAX, %RBX\n",
		"ORQ %RAX, %RBX\n",
		"XORQ %RAX, %RBX\n",
		"CMPQ %RAX, %RBX\n",
		"TESTQ %RAX, %RBX\n",
		"LEAQ (%RAX), %RBX\n",
		"PUSHQ %RAX\n",
		"POPQ %RAX\n",
		"INCQ %RAX\n",
		"DECQ %RAX\n",
		"NEGQ %RAX\n",
		"NOTQ %RAX\n",
		"JMP %RAX\n",
		"JE %RAX\n",
		"JNE %RAX\n",
		"JG %RAX\n",
		"JGE %RAX\n",
		"JL %RAX\n",
		"JLE %RAX\n",
	}
	for _, src := range sources {
		_, err := Tokenize(src)
		assert.NoErrorf(t, err, "source %q should tokenize", src)
	}
}
