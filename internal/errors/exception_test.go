package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrProjectNotFound, http.StatusNotFound},
		{"wrapped", fmt.Errorf("load project: %w", ErrAlreadyMember), http.StatusConflict},
		{"forbidden", ErrOwnerImmutable, http.StatusForbidden},
		{"validation", Validation("name is required"), http.StatusBadRequest},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}

func TestSentinelsMatchWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("accept invite: %w", ErrAlreadyMember)

	assert.True(t, errors.Is(wrapped, ErrAlreadyMember))
	assert.False(t, errors.Is(wrapped, ErrEmailTaken))
}
