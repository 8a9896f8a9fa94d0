package slideshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	for _, s := range AllStyles {
		got, err := ParseStyle(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStyle("mosaic")
	assert.Error(t, err)
	_, err = ParseStyle("")
	assert.Error(t, err)
	_, err = ParseStyle("Fill") // labels are not parseable values
	assert.Error(t, err)
}

func TestStyleLabels(t *testing.T) {
	assert.Equal(t, "Fill", StyleFill.Label())
	assert.Equal(t, "Span", StyleSpan.Label())
}

func TestParsePolicy(t *testing.T) {
	got, err := ParsePolicy("random")
	require.NoError(t, err)
	assert.Equal(t, PolicyRandom, got)

	got, err = ParsePolicy("sequential")
	require.NoError(t, err)
	assert.Equal(t, PolicySequential, got)

	_, err = ParsePolicy("shuffle")
	assert.Error(t, err)
}
