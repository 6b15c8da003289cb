package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size  int
		offset, lim int
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{0, 0, 0, DefaultPageSize},
		{2, 1000, MaxPageSize, MaxPageSize},
	}
	for _, tt := range tests {
		o, l := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.offset, o)
		assert.Equal(t, tt.lim, l)
	}
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ParseIntDefault("5", 1))
	assert.Equal(t, 1, ParseIntDefault("x", 1))

	ids, err := ParseUintList("1,22,,3")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 22, 3}, ids)
	ids, err = ParseUintList(" 4, 5 ")
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 5}, ids)
	ids, err = ParseUintList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	for _, bad := range []string{"abc", "1,x", "0", "-2"} {
		_, err := ParseUintList(bad)
		assert.Error(t, err, bad)
	}
}
