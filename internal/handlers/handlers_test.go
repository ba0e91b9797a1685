package handlers

import (
	"context"
	"errors"

	"youapi-backend/internal/middleware"
	"youapi-backend/internal/models"
)

// Shared fakes for handler tests.

type fakeYouTube struct {
	info            *models.VideoInfoResponse
	infoErr         error
	transcript      *models.TranscriptResponse
	transcriptErr   error
	transcriptCalls int
	plain           string
	plainErr        error
	tracks          []models.CaptionTrack
	tracksErr       error
}

func (f *fakeYouTube) GetVideoInfo(ctx context.Context, videoID string) (*models.VideoInfoResponse, error) {
	return f.info, f.infoErr
}

func (f *fakeYouTube) GetTranscript(ctx context.Context, videoID, requestedLang string) (*models.TranscriptResponse, error) {
	f.transcriptCalls++
	return f.transcript, f.transcriptErr
}

func (f *fakeYouTube) GetPlainTranscript(ctx context.Context, videoID string) (string, error) {
	return f.plain, f.plainErr
}

func (f *fakeYouTube) ListCaptionTracks(ctx context.Context, videoID string) ([]models.CaptionTrack, error) {
	return f.tracks, f.tracksErr
}

type fakeHistory struct {
	upserted []*models.SummaryRequest
	list     []*models.SummaryRequest
	listErr  error
}

func (f *fakeHistory) Upsert(ctx context.Context, rec *models.SummaryRequest) error {
	f.upserted = append(f.upserted, rec)
	return nil
}

func (f *fakeHistory) ListByUser(ctx context.Context, userID string) ([]*models.SummaryRequest, error) {
	return f.list, f.listErr
}

type fakeCache struct {
	stored  map[string]*models.TranscriptResponse
	aliases map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		stored:  make(map[string]*models.TranscriptResponse),
		aliases: make(map[string]string),
	}
}

func (f *fakeCache) Get(ctx context.Context, videoID, requestedLang string) (*models.TranscriptResponse, bool) {
	languageCode, ok := f.aliases[videoID+":"+requestedLang]
	if !ok {
		languageCode = requestedLang
	}
	t, ok := f.stored[videoID+":"+languageCode]
	return t, ok
}

func (f *fakeCache) Set(ctx context.Context, requestedLang string, t *models.TranscriptResponse) {
	f.stored[t.VideoID+":"+t.LanguageCode] = t
	if requestedLang != t.LanguageCode {
		f.aliases[t.VideoID+":"+requestedLang] = t.LanguageCode
	}
}

type fakeAI struct {
	chunks       []string
	streamErr    error
	gotPrompt    string
	gotSystem    string
	gotModel     string
	gotMessages  []models.ChatMessage
	questions    []string
	questionsErr error
	chapters     []models.Chapter
	chaptersErr  error
}

func (f *fakeAI) StreamText(ctx context.Context, modelName, prompt string, fn func(string) error) error {
	f.gotModel = modelName
	f.gotPrompt = prompt
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, c := range f.chunks {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAI) StreamChat(ctx context.Context, modelName, systemPrompt string, messages []models.ChatMessage, fn func(string) error) error {
	f.gotModel = modelName
	f.gotSystem = systemPrompt
	f.gotMessages = messages
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, c := range f.chunks {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAI) GenerateQuestions(ctx context.Context, modelName, prompt string) ([]string, error) {
	f.gotModel = modelName
	f.gotPrompt = prompt
	return f.questions, f.questionsErr
}

func (f *fakeAI) GenerateChapters(ctx context.Context, modelName, prompt string) ([]models.Chapter, error) {
	f.gotModel = modelName
	f.gotPrompt = prompt
	return f.chapters, f.chaptersErr
}

// withUser attaches an authenticated principal the way the auth middleware
// does.
func withUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, middleware.UserIDKey, userID)
}

var errUpstream = errors.New("upstream exploded")
