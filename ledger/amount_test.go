package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_RoundTrip(t *testing.T) {
	a, err := ParseAmount("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1.5", a.String())

	b, err := ParseAmount("0.0001")
	require.NoError(t, err)
	assert.Equal(t, "0.0001", b.String())
}

func TestAmount_CheckedAdd(t *testing.T) {
	a := mustAmount(t, "1.5")
	b := mustAmount(t, "0.5")
	sum, ok := a.CheckedAdd(b)
	require.True(t, ok)
	assert.True(t, sum.Equal(mustAmount(t, "2")))
}

func TestAmount_CheckedAdd_Overflow(t *testing.T) {
	a := NewAmount(Max)
	b := mustAmount(t, "1")
	_, ok := a.CheckedAdd(b)
	assert.False(t, ok)
}

func TestAmount_SaturatingSub_ClampsToZero(t *testing.T) {
	a := mustAmount(t, "1")
	b := mustAmount(t, "2")
	assert.True(t, a.SaturatingSub(b).IsZero())
}

func TestAmount_SaturatingSub_NormalCase(t *testing.T) {
	a := mustAmount(t, "2")
	b := mustAmount(t, "0.5")
	assert.Equal(t, "1.5", a.SaturatingSub(b).String())
}

func TestAmount_IsNegative(t *testing.T) {
	assert.True(t, mustAmount(t, "-1").IsNegative())
	assert.False(t, mustAmount(t, "0").IsNegative())
	assert.False(t, mustAmount(t, "1").IsNegative())
}

func mustAmount(t *testing.T, s string) Amount {
	t.Helper()
	a, err := ParseAmount(s)
	require.NoError(t, err)
	return a
}
