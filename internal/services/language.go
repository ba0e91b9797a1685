package services

// languageNames maps ISO-ish language codes to the display names used in
// prompt instructions. Unknown codes fall back to the code itself.
var languageNames = map[string]string{
	"en": "English",
	"vi": "Vietnamese",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"pt": "Portuguese",
	"ru": "Russian",
	"ar": "Arabic",
	"hi": "Hindi",
	"th": "Thai",
	"id": "Indonesian",
}

// LanguageName converts a language code to a full name for prompt text.
// Empty input stays empty.
func LanguageName(code string) string {
	if code == "" {
		return ""
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// SelectTranscriptLanguage picks the language to fetch a transcript in.
// Priority: the requested code if available, then English, then the first
// available track. Returns ErrNoTranscript when nothing is available.
func SelectTranscriptLanguage(requested string, available []string) (string, error) {
	if len(available) == 0 {
		return "", ErrNoTranscript
	}

	if requested != "" {
		for _, code := range available {
			if code == requested {
				return requested, nil
			}
		}
	}

	for _, code := range available {
		if code == "en" {
			return "en", nil
		}
	}

	return available[0], nil
}
