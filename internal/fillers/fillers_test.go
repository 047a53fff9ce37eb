package fillers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKnownFillers(t *testing.T) {
	filler, err := New("gemini")
	require.NoError(t, err)
	require.NotNil(t, filler)
	assert.Equal(t, "gemini", filler.Name())

	filler, err = New(None)
	require.NoError(t, err)
	assert.Nil(t, filler, "the none filler disables fills")
}

func TestNewUnknownFiller(t *testing.T) {
	_, err := New("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filler")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"gemini", "none"}, Names())
}
