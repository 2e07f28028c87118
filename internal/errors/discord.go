package errors

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// FromDiscord wraps an error returned by a discordgo REST call and assigns
// a code based on the HTTP status and Discord's JSON error code.
func FromDiscord(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return Wrap(err, message)
	}

	code := CodeUnknown
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
			code = CodePermissionDenied
		case discordgo.ErrCodeUnknownRole, discordgo.ErrCodeUnknownChannel,
			discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownGuild:
			code = CodeNotFound
		}
	}

	if code == CodeUnknown && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			code = CodePermissionDenied
		case http.StatusNotFound:
			code = CodeNotFound
		}
	}

	wrapped := WrapWithCode(err, code, message)
	if restErr.Response != nil {
		wrapped.WithMeta("status", restErr.Response.StatusCode)
	}
	return wrapped
}
