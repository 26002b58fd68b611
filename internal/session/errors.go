package session

import "errors"

var (
	// ErrUnauthorized signals a 401 on a protected call. It is absorbed by
	// the request pipeline and only surfaces when renewal cannot help.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRenewalFailed indicates the refresh token is missing, expired or
	// rejected. It is always terminal.
	ErrRenewalFailed = errors.New("credential renewal failed")

	// ErrSessionExpired is the externally visible terminal error. Seeing it
	// means the session has been cleared and the client redirected to the
	// public entry route.
	ErrSessionExpired = errors.New("session expired")
)
