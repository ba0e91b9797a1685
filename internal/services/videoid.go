package services

import (
	"fmt"
	"regexp"
)

// bare 11-character video ID
var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// URL shapes tried in priority order; first pattern that matches anywhere in
// the input wins.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/live/([a-zA-Z0-9_-]{11})`),
}

// InvalidVideoIDError reports an input that is neither a video ID nor a
// recognized YouTube URL.
type InvalidVideoIDError struct {
	Input string
}

func (e *InvalidVideoIDError) Error() string {
	return fmt.Sprintf("could not extract video ID from: %s", e.Input)
}

// ExtractVideoID resolves a bare 11-character video ID or one of the
// supported YouTube URL shapes (watch, youtu.be, embed, shorts, live) to the
// canonical video ID.
func ExtractVideoID(input string) (string, error) {
	if videoIDPattern.MatchString(input) {
		return input, nil
	}

	for _, p := range videoURLPatterns {
		if m := p.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}

	return "", &InvalidVideoIDError{Input: input}
}
