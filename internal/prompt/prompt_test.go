package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"whatever\n", false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		c := NewFrom(strings.NewReader(tc.input), &out)
		got, err := c.Confirm("Proceed?")
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
		assert.Contains(t, out.String(), "Proceed?")
	}
}

func TestSelectIndexValid(t *testing.T) {
	var out bytes.Buffer
	c := NewFrom(strings.NewReader("2\n"), &out)

	choice, err := c.SelectIndex("Pick one:", []string{"alpha", "beta", "gamma"})
	require.NoError(t, err)
	assert.Equal(t, 2, choice)

	printed := out.String()
	assert.Contains(t, printed, "1) alpha")
	assert.Contains(t, printed, "2) beta")
	assert.Contains(t, printed, "3) gamma")
}

func TestSelectIndexRejectsNonNumeric(t *testing.T) {
	c := NewFrom(strings.NewReader("two\n"), &bytes.Buffer{})
	_, err := c.SelectIndex("Pick one:", []string{"alpha", "beta"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}

func TestSelectIndexRejectsOutOfRange(t *testing.T) {
	for _, input := range []string{"0\n", "3\n", "-1\n", "99\n"} {
		c := NewFrom(strings.NewReader(input), &bytes.Buffer{})
		_, err := c.SelectIndex("Pick one:", []string{"alpha", "beta"})
		assert.Error(t, err, "input %q must abort", input)
	}
}

func TestSelectIndexLastLineWithoutNewline(t *testing.T) {
	// Piped input often lacks a trailing newline on the final line.
	c := NewFrom(strings.NewReader("1"), &bytes.Buffer{})
	choice, err := c.SelectIndex("Pick one:", []string{"alpha"})
	require.NoError(t, err)
	assert.Equal(t, 1, choice)
}
