package apierr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}

	withExtras := e.WithExtras(Extras{"complaintUrl": "https://example.com"})
	assert.Nil(t, e.Extras)
	assert.Equal(t, "https://example.com", (*withExtras.Extras)["complaintUrl"])
}

func TestWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	e := ErrInternalError.WithCause(cause).Msg("could not compute leaderboard")

	assert.Equal(t, "could not compute leaderboard", e.Message)
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "connection refused")
	assert.Nil(t, ErrInternalError.Unwrap(), "the shared sentinel must stay untouched")
}

func TestIsMatchesByCode(t *testing.T) {
	wrapped := errors.Wrap(ErrNotFound.Msg("complaint not found"), "repo")

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrInvalidReq)
}

func TestNewInvalidViolations(t *testing.T) {
	e := NewInvalidViolations([]string{"email"})

	assert.Equal(t, 400, e.StatusCode)
	assert.Equal(t, CodeInvalidRequest, e.ErrorCode)
	assert.Equal(t, []string{"email"}, (*e.Extras)["violations"])
	assert.Nil(t, ErrInvalidReq.Extras)
}
