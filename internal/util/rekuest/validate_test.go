package rekuest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediawatch.dev/backend/internal/pkg/apierr"
)

type sample struct {
	Email          string `validate:"required,email"`
	Tone           string `validate:"omitempty,tone"`
	OutletType     string `validate:"omitempty,outlettype"`
	SeverityRating *int   `validate:"omitempty,min=1,max=10"`
}

func violations(t *testing.T, err error) []*ErrorResponse {
	t.Helper()
	var e *apierr.Error
	require.ErrorAs(t, err, &e)
	require.NotNil(t, e.Extras)
	v, ok := (*e.Extras)["violations"].([]*ErrorResponse)
	require.True(t, ok)
	return v
}

func TestValidStruct(t *testing.T) {
	rating := 7
	assert.NoError(t, ValidStruct(&sample{Email: "a@example.com", Tone: "academic", OutletType: "tv", SeverityRating: &rating}))
	assert.NoError(t, ValidStruct(&sample{Email: "a@example.com"}))

	t.Run("custom tag message lists accepted values", func(t *testing.T) {
		v := violations(t, ValidStruct(&sample{Email: "a@example.com", Tone: "angry"}))
		require.Len(t, v, 1)
		assert.Equal(t, "tone", v[0].Violation)
		assert.Equal(t, "sample.Tone", v[0].Field)
		assert.Contains(t, v[0].Message, "professional academic passionate")
	})

	t.Run("zero rating is rejected", func(t *testing.T) {
		zero := 0
		v := violations(t, ValidStruct(&sample{Email: "a@example.com", SeverityRating: &zero}))
		require.Len(t, v, 1)
		assert.Equal(t, "min", v[0].Violation)
	})

	t.Run("missing email", func(t *testing.T) {
		v := violations(t, ValidStruct(&sample{}))
		require.Len(t, v, 1)
		assert.Equal(t, "required", v[0].Violation)
	})
}

func TestValidVar(t *testing.T) {
	assert.NoError(t, ValidVar("presenter", "oneof=presenter outlet"))
	assert.Error(t, ValidVar("channel", "oneof=presenter outlet"))
}
