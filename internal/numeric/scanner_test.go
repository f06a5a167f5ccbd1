package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDecimal(t *testing.T) {
	v, canon, consumed, err := Scan("123abc")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(123), v)
	assert.Equal(t, "123", canon)
	assert.Equal(t, 3, consumed)
}

func TestScanNegativeDecimal(t *testing.T) {
	v, canon, _, err := Scan("-123")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(-123), v)
	assert.Equal(t, "-123", canon)
}

func TestScanHexUppercasesCanonical(t *testing.T) {
	v, canon, _, err := Scan("0x123abc")
	require.NoError(t, err)
	assert.Equal(t, "0x123ABC", canon)

	want := new(big.Int)
	want.SetString("123abc", 16)
	assert.Equal(t, want, v)
}

func TestScanLargeHex(t *testing.T) {
	v, canon, _, err := Scan("0x1234567890ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, "0x1234567890ABCDEF", canon)

	want := new(big.Int)
	want.SetString("1234567890ABCDEF", 16)
	assert.Equal(t, want, v)
	assert.Equal(t, "1311768467294899695", v.String())
}

func TestScanEmptyImmediate(t *testing.T) {
	_, _, _, err := Scan("")
	assert.ErrorIs(t, err, ErrEmptyImmediate)
}

func TestScanBareSignIsEmptyImmediate(t *testing.T) {
	_, _, _, err := Scan("-")
	assert.ErrorIs(t, err, ErrEmptyImmediate)
}

func TestScanBareHexPrefixIsEmptyImmediate(t *testing.T) {
	_, _, _, err := Scan("0x")
	assert.ErrorIs(t, err, ErrEmptyImmediate)
}
