package services

import (
	"errors"
	"testing"
)

func TestExtractVideoID_BareID(t *testing.T) {
	id, err := ExtractVideoID("dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "dQw4w9WgXcQ" {
		t.Errorf("Expected dQw4w9WgXcQ, got %q", id)
	}
}

func TestExtractVideoID_URLForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch URL with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s"},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ"},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
		{"live URL", "https://www.youtube.com/live/dQw4w9WgXcQ"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ExtractVideoID(tc.input)
			if err != nil {
				t.Fatalf("Expected no error for %q, got %v", tc.input, err)
			}
			if id != "dQw4w9WgXcQ" {
				t.Errorf("Expected dQw4w9WgXcQ for %q, got %q", tc.input, id)
			}
		})
	}
}

func TestExtractVideoID_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"plain text", "not a url"},
		{"too short", "abc123"},
		{"unrelated URL", "https://example.com/watch?v=nothing"},
		{"bad chars in ID", "dQw4w9WgXc!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractVideoID(tc.input)
			if err == nil {
				t.Fatalf("Expected error for %q, got none", tc.input)
			}
			var invalidErr *InvalidVideoIDError
			if !errors.As(err, &invalidErr) {
				t.Errorf("Expected InvalidVideoIDError, got %T", err)
			}
		})
	}
}
