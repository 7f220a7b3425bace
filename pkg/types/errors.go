package types

import "errors"

// Remote fetch failure kinds. A fetch attempt that fails wraps one of these;
// callers never see them because fetches degrade to a fallback value.
var (
	ErrTransport  = errors.New("transport failure")
	ErrHTTPStatus = errors.New("unexpected http status")
	ErrDecode     = errors.New("malformed response body")
)

// ErrParseFailure is returned when a link does not have the expected shape.
var ErrParseFailure = errors.New("link does not match t.me/nft/<name>-<serial>")

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStoreClosed     = errors.New("session store is closed")
)
