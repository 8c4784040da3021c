package meting

import "errors"

// ErrTokenRequired is returned when a protected upstream operation needs a
// signature but no signing token is configured. It fails only the operation
// that needed the signature.
var ErrTokenRequired = errors.New("signing token required for protected operation")

// ErrInvalidReference is returned when a song reference carries neither an
// id nor a URL.
var ErrInvalidReference = errors.New("song reference needs an id or a url")

// ErrLookupFailed is returned when the upstream id-to-URL lookup yields
// nothing playable.
var ErrLookupFailed = errors.New("upstream play url lookup failed")
