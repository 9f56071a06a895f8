package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		in     string
		value  int
		render string
	}{
		{"19", 19, "19"},
		{"6 * 3 + 1", 19, "6 * 3 + 1"},
		{"5*2*2-1", 19, "5 * 2 * 2 - 1"},
		{"2 + 3 * 4", 14, "2 + 3 * 4"},
		{"(2 + 3) * 4", 20, "(2 + 3) * 4"},
		{"10 - 4 - 3", 3, "10 - 4 - 3"},
		{"10 - (4 - 3)", 9, "10 - (4 - 3)"},
		{"100 / 5 / 2", 10, "100 / 5 / 2"},
		{"((7))", 7, "7"},
		{"6 × 3 − 2 ÷ 2", 17, "6 * 3 - 2 / 2"},
		{"4 x 5", 20, "4 * 5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := ParseExpression(tt.in)
			require.NoError(t, err)
			v, err := e.Eval()
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)
			assert.Equal(t, tt.render, e.String())
		})
	}
}

func TestParseExpressionErrors(t *testing.T) {
	for _, in := range []string{"", "2 +", "(3", "3)", "a + 1", "2 ^ 3", "1 2"} {
		_, err := ParseExpression(in)
		assert.ErrorIs(t, err, ErrParse, "input %q", in)
	}
}
