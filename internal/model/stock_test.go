package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePartNumber(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"   ":        "",
		"A001":       "A001",
		" A001\t":    "A001",
		"A/B":        "A/B",
		"ABCDEF":     "ABCDEF",
		"ABCDEFGH":   "ABCDEF",
		"  ABCDEFGH": "ABCDEF",
		"部品番号ABCD":   "部品番号AB",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePartNumber(in), "input %q", in)
	}
}

func TestOperationValid(t *testing.T) {
	assert.True(t, OpInbound.Valid())
	assert.True(t, OpOutbound.Valid())
	assert.False(t, Operation("transfer").Valid())
}
