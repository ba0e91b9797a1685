package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"youapi-backend/internal/models"
)

const transcriptTTL = 24 * time.Hour

// TranscriptCache keeps fetched transcripts in Redis so repeated lookups of
// the same video skip the upstream round-trip. Entries are keyed by the
// resolved language code; a second key aliases each requested language to
// the code it resolved to, so "de" falling back to "en" and a bare request
// share one entry. All methods are no-ops when the cache was constructed
// without a Redis client.
type TranscriptCache struct {
	client *redis.Client
}

func NewTranscriptCache(client *redis.Client) *TranscriptCache {
	return &TranscriptCache{client: client}
}

func transcriptKey(videoID, languageCode string) string {
	return fmt.Sprintf("transcript:%s:%s:lang:%s", models.SourceYouTube, videoID, languageCode)
}

func aliasKey(videoID, requestedLang string) string {
	return fmt.Sprintf("transcript:%s:%s:req:%s", models.SourceYouTube, videoID, requestedLang)
}

func (c *TranscriptCache) Get(ctx context.Context, videoID, requestedLang string) (*models.TranscriptResponse, bool) {
	if c.client == nil {
		return nil, false
	}

	languageCode, err := c.client.Get(ctx, aliasKey(videoID, requestedLang)).Result()
	if err != nil {
		// No alias yet; the requested language may itself be a resolved
		// code from an earlier fetch.
		languageCode = requestedLang
	}
	if languageCode == "" {
		return nil, false
	}

	data, err := c.client.Get(ctx, transcriptKey(videoID, languageCode)).Bytes()
	if err != nil {
		return nil, false
	}

	var t models.TranscriptResponse
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (c *TranscriptCache) Set(ctx context.Context, requestedLang string, t *models.TranscriptResponse) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	c.client.Set(ctx, transcriptKey(t.VideoID, t.LanguageCode), data, transcriptTTL)
	if requestedLang != t.LanguageCode {
		c.client.Set(ctx, aliasKey(t.VideoID, requestedLang), t.LanguageCode, transcriptTTL)
	}
}
