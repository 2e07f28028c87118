package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := NotFound("role missing").WithMeta("role_id", "123")

	wrapped := Wrap(base, "assign class")

	assert.Equal(t, CodeNotFound, wrapped.Code)
	assert.Equal(t, "123", wrapped.Meta["role_id"])
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "assign class: role missing", wrapped.Error())
}

func TestWrap_UnknownForForeignErrors(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), "send message")

	assert.Equal(t, CodeUnknown, wrapped.Code)
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestIs_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", PermissionDenied("nope"))

	assert.True(t, IsPermissionDenied(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, CodePermissionDenied, GetCode(err))
}

func TestFromDiscord(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name: "missing permissions json code",
			err: &discordgo.RESTError{
				Response: &http.Response{StatusCode: http.StatusForbidden},
				Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions},
			},
			expected: CodePermissionDenied,
		},
		{
			name: "unknown role json code",
			err: &discordgo.RESTError{
				Response: &http.Response{StatusCode: http.StatusNotFound},
				Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownRole},
			},
			expected: CodeNotFound,
		},
		{
			name: "bare forbidden status",
			err: &discordgo.RESTError{
				Response: &http.Response{StatusCode: http.StatusForbidden},
			},
			expected: CodePermissionDenied,
		},
		{
			name: "server error",
			err: &discordgo.RESTError{
				Response: &http.Response{StatusCode: http.StatusInternalServerError},
			},
			expected: CodeUnknown,
		},
		{
			name:     "non rest error",
			err:      errors.New("websocket closed"),
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDiscord(tt.err, "platform call")
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got.Code)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, FromDiscord(nil, "nothing"))
}
