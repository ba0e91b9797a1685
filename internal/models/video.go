package models

// TranscriptSegment is one timed caption line. Start and Duration are seconds.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type VideoInfoResponse struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnail_url"`
	Length       int    `json:"length"` // seconds
}

// TranscriptResponse is a full transcript in one language. Segments are in
// chronological order; downstream chapter generation relies on that.
type TranscriptResponse struct {
	VideoID      string              `json:"video_id"`
	Language     string              `json:"language"`
	LanguageCode string              `json:"language_code"`
	IsGenerated  bool                `json:"is_generated"`
	Segments     []TranscriptSegment `json:"segments"`
}

// CaptionTrack describes one available transcript language for a video.
type CaptionTrack struct {
	LanguageCode string `json:"language_code"`
	Language     string `json:"language"`
	IsGenerated  bool   `json:"is_generated"`
}
