package script_seed_outlets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuiltinOutlets(t *testing.T) {
	file, err := parse(builtinOutlets)
	require.NoError(t, err)
	require.Len(t, file.Outlets, 10)

	first := file.Outlets[0]
	assert.Equal(t, "bbc-tv", first.ID)
	assert.Equal(t, "tv", first.Type)
	assert.Equal(t, "complaints@bbc.co.uk", first.ComplaintEmail)
}

func TestParseRejectsInvalidOutlets(t *testing.T) {
	_, err := parse([]byte("outlets:\n  - id: x\n    name: X\n    type: podcast\n"))
	assert.Error(t, err)

	_, err = parse([]byte("outlets:\n  - id: x\n    name: X\n    website: https://example.com\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = parse([]byte("outlets:\n  - name: Missing Id\n"))
	assert.Error(t, err)
}
