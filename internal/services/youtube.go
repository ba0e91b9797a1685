package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"
	"golang.org/x/net/proxy"

	"youapi-backend/internal/models"
)

const webshareProxyAddr = "p.webshare.io:80"

type YouTubeService struct {
	httpClient    *http.Client
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// captionTrack is one entry of the watch page's captionTracks list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (t captionTrack) displayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var b strings.Builder
	for _, run := range t.Name.Runs {
		b.WriteString(run.Text)
	}
	if b.Len() > 0 {
		return b.String()
	}
	return t.LanguageCode
}

// NewYouTubeService builds the YouTube collaborator. When Webshare proxy
// credentials are supplied, watch-page and caption traffic is routed through
// a rotating SOCKS5 proxy; otherwise requests go out directly.
func NewYouTubeService(proxyUsername, proxyPassword string) *YouTubeService {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	if proxyUsername != "" && proxyPassword != "" {
		auth := &proxy.Auth{User: proxyUsername + "-rotate", Password: proxyPassword}
		dialer, err := proxy.SOCKS5("tcp", webshareProxyAddr, auth, proxy.Direct)
		if err != nil {
			log.Printf("webshare proxy setup failed, using direct access: %v", err)
		} else if contextDialer, ok := dialer.(proxy.ContextDialer); ok {
			httpClient.Transport = &http.Transport{DialContext: contextDialer.DialContext}
			log.Println("✓ Webshare SOCKS5 proxy enabled for YouTube traffic")
		}
	}

	return &YouTubeService{
		httpClient:    httpClient,
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{HTTPClient: httpClient},
	}
}

// GetVideoInfo fetches title, author, thumbnail and length for a video.
func (s *YouTubeService) GetVideoInfo(ctx context.Context, videoID string) (*models.VideoInfoResponse, error) {
	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}

	title := video.Title
	if title == "" {
		title = "Unknown Title"
	}
	author := video.Author
	if author == "" {
		author = "Unknown Author"
	}

	thumbnailURL := ""
	if len(video.Thumbnails) > 0 {
		// Thumbnails are ordered smallest first.
		thumbnailURL = video.Thumbnails[len(video.Thumbnails)-1].URL
	}

	return &models.VideoInfoResponse{
		VideoID:      videoID,
		Title:        title,
		Author:       author,
		ThumbnailURL: thumbnailURL,
		Length:       int(video.Duration.Seconds()),
	}, nil
}

// ListCaptionTracks returns the available transcript languages for a video.
func (s *YouTubeService) ListCaptionTracks(ctx context.Context, videoID string) ([]models.CaptionTrack, error) {
	tracks, err := s.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	out := make([]models.CaptionTrack, len(tracks))
	for i, t := range tracks {
		out[i] = models.CaptionTrack{
			LanguageCode: t.LanguageCode,
			Language:     t.displayName(),
			IsGenerated:  t.Kind == "asr",
		}
	}
	return out, nil
}

// GetTranscript fetches the structured transcript for a video. The language
// is chosen by SelectTranscriptLanguage over the available tracks.
func (s *YouTubeService) GetTranscript(ctx context.Context, videoID, requestedLang string) (*models.TranscriptResponse, error) {
	tracks, err := s.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	available := make([]string, len(tracks))
	for i, t := range tracks {
		available[i] = t.LanguageCode
	}

	selected, err := SelectTranscriptLanguage(requestedLang, available)
	if err != nil {
		return nil, err
	}

	var chosen captionTrack
	for _, t := range tracks {
		if t.LanguageCode == selected {
			chosen = t
			break
		}
	}

	segments, err := s.fetchTimedText(ctx, chosen.BaseURL)
	if err != nil {
		return nil, err
	}

	return &models.TranscriptResponse{
		VideoID:      videoID,
		Language:     chosen.displayName(),
		LanguageCode: chosen.LanguageCode,
		IsGenerated:  chosen.Kind == "asr",
		Segments:     segments,
	}, nil
}

// GetPlainTranscript returns the transcript as one joined string for LLM
// context. The transcript API is tried first (English variants, then any
// language); the timedtext path is the fallback.
func (s *YouTubeService) GetPlainTranscript(ctx context.Context, videoID string) (string, error) {
	transcript, err := s.transcriptAPI.GetTranscript(videoID, []string{"en", "en-US", "en-GB"})
	if err != nil {
		transcript, err = s.transcriptAPI.GetTranscript(videoID, nil)
	}
	if err == nil && len(transcript.Entries) > 0 {
		var fullText strings.Builder
		for _, entry := range transcript.Entries {
			text := strings.TrimSpace(entry.Text)
			if text == "" {
				continue
			}
			fullText.WriteString(text)
			fullText.WriteString(" ")
		}
		if cleaned := strings.TrimSpace(fullText.String()); cleaned != "" {
			return cleaned, nil
		}
	}

	structured, err := s.GetTranscript(ctx, videoID, "")
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(structured.Segments))
	for _, seg := range structured.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoTranscript
	}

	return strings.Join(parts, " "), nil
}

var (
	captionTracksRe    = regexp.MustCompile(`"captionTracks"\s*:\s*(\[.*?\])\s*,\s*"`)
	playabilityErrorRe = regexp.MustCompile(`"playabilityStatus"\s*:\s*\{\s*"status"\s*:\s*"(?:ERROR|LOGIN_REQUIRED)"`)
)

const captionsRendererToken = `"playerCaptionsTracklistRenderer"`

func (s *YouTubeService) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	pageURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch YouTube page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read YouTube page: %w", err)
	}

	pageHTML := string(body)

	if playabilityErrorRe.MatchString(pageHTML) {
		return nil, ErrVideoUnavailable
	}

	matches := captionTracksRe.FindStringSubmatch(pageHTML)
	if len(matches) < 2 {
		if !strings.Contains(pageHTML, captionsRendererToken) {
			return nil, ErrTranscriptsDisabled
		}
		return nil, ErrNoTranscript
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(matches[1]), &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	return tracks, nil
}

func (s *YouTubeService) fetchTimedText(ctx context.Context, captionURL string) ([]models.TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read captions: %w", err)
	}

	return parseCaptionsXML(body)
}

func parseCaptionsXML(data []byte) ([]models.TranscriptSegment, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse captions XML: %w", err)
	}

	var segments []models.TranscriptSegment
	for _, t := range tt.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Text))
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(t.Start, 64)
		dur, _ := strconv.ParseFloat(t.Dur, 64)
		segments = append(segments, models.TranscriptSegment{
			Text:     text,
			Start:    start,
			Duration: dur,
		})
	}

	if len(segments) == 0 {
		return nil, ErrNoTranscript
	}

	return segments, nil
}
