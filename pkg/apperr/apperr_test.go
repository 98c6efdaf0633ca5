package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindAuth, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindMethodNotAllowed, http.StatusMethodNotAllowed},
		{KindStorage, http.StatusInternalServerError},
		{KindDatabase, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(New(tc.kind, "x")))
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestUserMessage_MasksForeignErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Card not found", UserMessage(New(KindNotFound, "Card not found")))
	assert.Equal(t, "Internal server error", UserMessage(errors.New("pq: connection refused")))
}

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := Wrap(KindStorage, "Failed to upload file", cause)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, Is(err, KindStorage))
	assert.Equal(t, "Failed to upload file: disk full", err.Error())

	// Kind survives further wrapping by callers.
	outer := fmt.Errorf("store: %w", err)
	assert.Equal(t, KindStorage, KindOf(outer))
}
