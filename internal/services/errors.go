package services

import "errors"

// Transcript retrieval failure categories. Handlers translate these to HTTP
// statuses (disabled -> 400, not found / unavailable -> 404).
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript found for this video")
	ErrVideoUnavailable    = errors.New("video unavailable")
)
