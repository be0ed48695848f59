package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestID(t *testing.T) {
	first, err := GenerateRequestID()
	require.NoError(t, err)
	second, err := GenerateRequestID()
	require.NoError(t, err)

	assert.Len(t, first, 21)
	assert.Regexp(t, "^[A-Za-z0-9]+$", first)
	assert.NotEqual(t, first, second)
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 1.24, RoundWithTwoDecimalPlace(1.236))
	assert.Equal(t, 12.5, RoundWithTwoDecimalPlace(12.499))
}
