package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{InvalidState("already decided"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Auth("who are you"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, HTTPStatus(tc.err), "error: %v", tc.err)
	}
}

func TestUserMessageMasksInternals(t *testing.T) {
	require.Equal(t, "internal server error", UserMessage(errors.New("pq: connection refused")))
	require.Equal(t, "internal server error", UserMessage(Internal(errors.New("pq: connection refused"))))
	require.Equal(t, "unknown department \"laundry\"", UserMessage(Validation("unknown department %q", "laundry")))
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal(cause)
	require.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("saving request: %w", Validation("no items"))
	require.Equal(t, KindValidation, KindOf(wrapped))
}
