package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2secret")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2secret", hash)

	assert.True(t, CompareHashAndPassword(hash, "hunter2secret"))
	assert.False(t, CompareHashAndPassword(hash, "hunter2secre"))
	assert.False(t, CompareHashAndPassword("", "hunter2secret"))
}
