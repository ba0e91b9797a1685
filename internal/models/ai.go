package models

// DetailLevel controls how condensed a generated summary is.
type DetailLevel string

const (
	DetailTLDR    DetailLevel = "tldr"
	DetailSummary DetailLevel = "summary"
)

type SummarizeRequest struct {
	VideoID     string      `json:"video_id"`
	Transcript  string      `json:"transcript,omitempty"` // optional: avoids re-fetching
	Model       string      `json:"model,omitempty"`
	Language    string      `json:"language,omitempty"`
	DetailLevel DetailLevel `json:"detail_level,omitempty"`
}

// ChatMessage is a single turn of conversation history. Role is "user" or
// "assistant"; the system instruction is never caller-supplied.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	VideoID    string        `json:"video_id"`
	Messages   []ChatMessage `json:"messages"`
	Transcript string        `json:"transcript,omitempty"`
	Model      string        `json:"model,omitempty"`
	Language   string        `json:"language,omitempty"`
}

type SuggestQuestionsRequest struct {
	VideoID    string `json:"video_id"`
	Transcript string `json:"transcript"`
	Model      string `json:"model,omitempty"`
	Language   string `json:"language,omitempty"`
}

type SuggestQuestionsResponse struct {
	VideoID   string   `json:"video_id"`
	Questions []string `json:"questions"`
}

// Chapter marks a topic boundary in a video. Start is seconds and must be one
// of the supplied segment timestamps.
type Chapter struct {
	Title string  `json:"title"`
	Start float64 `json:"start"`
}

type GenerateChaptersRequest struct {
	VideoID  string              `json:"video_id"`
	Segments []TranscriptSegment `json:"segments"`
	Model    string              `json:"model,omitempty"`
	Language string              `json:"language,omitempty"`
}

type GenerateChaptersResponse struct {
	VideoID  string    `json:"video_id"`
	Chapters []Chapter `json:"chapters"`
}
