package models

import (
	"time"

	"github.com/google/uuid"
)

// SourceYouTube is the only supported video source today.
const SourceYouTube = "youtube"

// SummaryRequest is one history entry: a video the user looked up. Unique per
// (user, source, video); repeated lookups refresh CreatedAt.
type SummaryRequest struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	Source       string    `json:"source"`
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Length       int       `json:"length"`
	CreatedAt    time.Time `json:"created_at"`
}
