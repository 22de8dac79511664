package cat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ExactLength(t *testing.T) {
	t.Parallel()

	fa, ok := DefaultRegistry().LookupString("FA")
	require.True(t, ok)

	require.NoError(t, Validate(fa, []byte("014250000")))

	for _, params := range []string{"", "0142", "0142500000"} {
		err := Validate(fa, []byte(params))
		require.ErrorIs(t, err, ErrMalformedParameters, "length %d", len(params))

		var ce *CommandError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "FA", ce.Mnemonic)
		assert.Equal(t, len(params), ce.Length)
		assert.Equal(t, Exact(9), ce.Contract)
	}
}

func TestValidate_ExactZero(t *testing.T) {
	t.Parallel()

	d := Descriptor{Mnemonic: "QQ", Contract: Exact(0)}
	assert.NoError(t, Validate(d, nil))
	assert.ErrorIs(t, Validate(d, []byte("1")), ErrMalformedParameters)
}

func TestValidate_VariableAcceptsAnyLength(t *testing.T) {
	t.Parallel()

	md, ok := DefaultRegistry().LookupString("MD")
	require.True(t, ok)

	for _, n := range []int{0, 1, 2, 50, DefaultMaxFrameLength} {
		assert.NoError(t, Validate(md, []byte(strings.Repeat("9", n))))
	}
}

func TestValidator_AllowQuery(t *testing.T) {
	t.Parallel()

	fa, ok := DefaultRegistry().LookupString("FA")
	require.True(t, ok)

	v := Validator{AllowQuery: true}
	assert.NoError(t, v.Validate(fa, nil))
	assert.NoError(t, v.Validate(fa, []byte("014250000")))
	assert.ErrorIs(t, v.Validate(fa, []byte("0142")), ErrMalformedParameters)
}

func TestCommandError_Message(t *testing.T) {
	t.Parallel()

	err := Validate(Descriptor{Mnemonic: "FA", Contract: Exact(9)}, []byte("0142"))
	assert.EqualError(t, err, `cat: malformed parameters: "FA" has 4 parameter bytes, want exact(9)`)

	unknown := &CommandError{Mnemonic: "ZZ", Err: ErrUnknownCommand}
	assert.EqualError(t, unknown, `cat: unknown command: "ZZ"`)
}
