package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"youapi-backend/internal/models"
	"youapi-backend/internal/services"
)

func TestInfo_RecordsHistory(t *testing.T) {
	yt := &fakeYouTube{info: &models.VideoInfoResponse{
		VideoID:      "dQw4w9WgXcQ",
		Title:        "Test Video",
		Author:       "Test Channel",
		ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq720.jpg",
		Length:       212,
	}}
	history := &fakeHistory{}
	h := NewYouTubeHandler(yt, history, newFakeCache())

	req := httptest.NewRequest(http.MethodGet, "/youtube/info?video_id=dQw4w9WgXcQ", nil)
	req = req.WithContext(withUser(req.Context(), "user_2abc"))
	rr := httptest.NewRecorder()

	h.Info(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.VideoInfoResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Title != "Test Video" || resp.Length != 212 {
		t.Errorf("Unexpected response: %+v", resp)
	}

	if len(history.upserted) != 1 {
		t.Fatalf("Expected 1 history record, got %d", len(history.upserted))
	}
	rec := history.upserted[0]
	if rec.UserID != "user_2abc" || rec.VideoID != "dQw4w9WgXcQ" || rec.Source != models.SourceYouTube {
		t.Errorf("Unexpected history record: %+v", rec)
	}
}

func TestInfo_URLInput(t *testing.T) {
	yt := &fakeYouTube{info: &models.VideoInfoResponse{VideoID: "dQw4w9WgXcQ"}}
	h := NewYouTubeHandler(yt, &fakeHistory{}, newFakeCache())

	req := httptest.NewRequest(http.MethodGet,
		"/youtube/info?video_id=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ", nil)
	rr := httptest.NewRecorder()

	h.Info(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for URL input, got %d", rr.Code)
	}
}

func TestInfo_InvalidInput(t *testing.T) {
	h := NewYouTubeHandler(&fakeYouTube{}, &fakeHistory{}, newFakeCache())

	tests := []struct {
		name  string
		query string
	}{
		{"missing param", ""},
		{"garbage input", "?video_id=not+a+url"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/youtube/info"+tc.query, nil)
			rr := httptest.NewRecorder()

			h.Info(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestTranscript_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"disabled", services.ErrTranscriptsDisabled, http.StatusBadRequest},
		{"not found", services.ErrNoTranscript, http.StatusNotFound},
		{"unavailable", services.ErrVideoUnavailable, http.StatusNotFound},
		{"other failure", errUpstream, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			yt := &fakeYouTube{transcriptErr: tc.err}
			h := NewYouTubeHandler(yt, &fakeHistory{}, newFakeCache())

			req := httptest.NewRequest(http.MethodGet, "/youtube/transcript?video_id=dQw4w9WgXcQ", nil)
			rr := httptest.NewRecorder()

			h.Transcript(rr, req)

			if rr.Code != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, rr.Code)
			}
		})
	}
}

func TestTranscript_CacheHitSkipsFetch(t *testing.T) {
	cached := &models.TranscriptResponse{
		VideoID:      "dQw4w9WgXcQ",
		Language:     "English",
		LanguageCode: "en",
		Segments:     []models.TranscriptSegment{{Text: "cached", Start: 0, Duration: 1}},
	}
	cache := newFakeCache()
	cache.Set(t.Context(), "en", cached)

	// Provider would fail, so a 200 proves the cache served the response.
	yt := &fakeYouTube{transcriptErr: errUpstream}
	h := NewYouTubeHandler(yt, &fakeHistory{}, cache)

	req := httptest.NewRequest(http.MethodGet, "/youtube/transcript?video_id=dQw4w9WgXcQ&lang=en", nil)
	rr := httptest.NewRecorder()

	h.Transcript(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 from cache, got %d", rr.Code)
	}
	var resp models.TranscriptResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp.Segments) != 1 || resp.Segments[0].Text != "cached" {
		t.Errorf("Expected cached transcript, got %+v", resp)
	}
}

func TestTranscript_StoresInCache(t *testing.T) {
	yt := &fakeYouTube{transcript: &models.TranscriptResponse{
		VideoID:      "dQw4w9WgXcQ",
		LanguageCode: "en",
		Segments:     []models.TranscriptSegment{{Text: "fresh"}},
	}}
	cache := newFakeCache()
	h := NewYouTubeHandler(yt, &fakeHistory{}, cache)

	req := httptest.NewRequest(http.MethodGet, "/youtube/transcript?video_id=dQw4w9WgXcQ", nil)
	rr := httptest.NewRecorder()

	h.Transcript(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if _, ok := cache.Get(t.Context(), "dQw4w9WgXcQ", ""); !ok {
		t.Error("Expected transcript stored in cache after fetch")
	}
}

func TestTranscript_LanguageFallbackSharesCacheEntry(t *testing.T) {
	// No German captions; the provider falls back to English.
	yt := &fakeYouTube{transcript: &models.TranscriptResponse{
		VideoID:      "dQw4w9WgXcQ",
		Language:     "English",
		LanguageCode: "en",
		Segments:     []models.TranscriptSegment{{Text: "fallback"}},
	}}
	cache := newFakeCache()
	h := NewYouTubeHandler(yt, &fakeHistory{}, cache)

	serve := func(lang string) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/youtube/transcript?video_id=dQw4w9WgXcQ&lang="+lang, nil)
		rr := httptest.NewRecorder()
		h.Transcript(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200 for lang=%q, got %d", lang, rr.Code)
		}
	}

	serve("de")
	serve("en")
	serve("de")

	if yt.transcriptCalls != 1 {
		t.Errorf("Expected 1 upstream fetch across fallback and repeat requests, got %d", yt.transcriptCalls)
	}
	if len(cache.stored) != 1 {
		t.Errorf("Expected a single cache entry keyed by the resolved language, got %d", len(cache.stored))
	}
}

func TestLanguages(t *testing.T) {
	yt := &fakeYouTube{tracks: []models.CaptionTrack{
		{LanguageCode: "en", Language: "English", IsGenerated: false},
		{LanguageCode: "vi", Language: "Vietnamese", IsGenerated: true},
	}}
	h := NewYouTubeHandler(yt, &fakeHistory{}, newFakeCache())

	req := httptest.NewRequest(http.MethodGet, "/youtube/languages?video_id=dQw4w9WgXcQ", nil)
	rr := httptest.NewRecorder()

	h.Languages(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var resp struct {
		VideoID   string                `json:"video_id"`
		Languages []models.CaptionTrack `json:"languages"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.VideoID != "dQw4w9WgXcQ" || len(resp.Languages) != 2 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}
