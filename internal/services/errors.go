package services

import "errors"

var (
	// Ingest failures. Both are local and recoverable; session state is
	// untouched when they are returned.
	ErrFileTooLarge      = errors.New("file exceeds the maximum allowed size")
	ErrUnreadableContent = errors.New("file content is not readable as UTF-8 text")

	// Gateway attempt classification.
	ErrRateLimited       = errors.New("model endpoint rate limited the request")
	ErrEmptyResponse     = errors.New("model endpoint returned no parseable payload")
	ErrMalformedResponse = errors.New("model payload does not match the expected schema")
	ErrTransport         = errors.New("model endpoint request failed")

	// Final per-call outcomes surfaced to the user. Underlying causes
	// are logged, never returned verbatim.
	ErrAnalysisFailed = errors.New("analysis failed")
	ErrChatFailed     = errors.New("chat exchange failed")

	ErrEmptyMessage = errors.New("message must not be empty")
)
