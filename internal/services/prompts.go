package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"youapi-backend/internal/models"
)

// maxQuestionsTranscriptChars caps how much transcript text the
// suggest-questions prompt carries. Hard cutoff, not sentence-aware.
const maxQuestionsTranscriptChars = 8000

const summaryBaseRules = `Rules:
- Use markdown: bullet points, **bold** for emphasis
- Start directly with content - no introductions like "This video discusses..."
- No filler or verbatim transcript
- Use **bold** only for key terms, not entire sentences`

const tldrInstruction = `List the key insights from this video as bullet points.

Goal: Give readers a high-level understanding of the whole content.
- Each bullet = one key insight or takeaway
- Focus on what important that the viewer should know
- No topic headers, just a flat list of insights
- Skip examples and explanations
- Keep between 5-12 bullet points, each at a reasonable length for easy reading & digest`

const summaryInstruction = `Go through each logical topic or section discussed in the video.

For each topic:
- Use a header (###) for the topic name
- List only 2-3 important points as flat bullet points
- NO nested bullets, NO sub-points

Keep it concise — focus on what matters most.`

// BuildSummaryPrompt assembles the summarize instruction for one transcript.
// languageName may be empty; the language directive is appended only when a
// language was resolved.
func BuildSummaryPrompt(detailLevel models.DetailLevel, transcriptText, languageName string) string {
	instruction := summaryInstruction
	if detailLevel == models.DetailTLDR {
		instruction = tldrInstruction
	}

	languageInstruction := ""
	if languageName != "" {
		languageInstruction = fmt.Sprintf("IMPORTANT: Write the entire summary in %s.", languageName)
	}

	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\n")
	b.WriteString(summaryBaseRules)
	b.WriteString("\n\nCRITICAL: Follow the language instruction below \n<language_instruction>\n")
	b.WriteString(languageInstruction)
	b.WriteString("\n</language_instruction>\n\nVideo Transcript:\n<transcript>\n")
	b.WriteString(transcriptText)
	b.WriteString("\n</transcript>\n")

	return b.String()
}

// BuildChatSystemPrompt assembles the system instruction for transcript chat.
// Conversation history is appended after this message by the caller, in the
// caller's role order.
func BuildChatSystemPrompt(transcriptText string) string {
	var b strings.Builder
	b.WriteString(`You are a helpful assistant that answers questions about a YouTube video.
Use the following transcript to answer the user's questions accurately and helpfully.
If the answer cannot be found in the transcript, say so clearly.

IMPORTANT: Always respond in the same language as the user's question. For example:
- If the user asks in English, respond in English
- If the user asks in Vietnamese, respond in Vietnamese
- If the user explicitly requests a different language (e.g., "answer in French"), follow their request

Video Transcript:
<transcript>
`)
	b.WriteString(transcriptText)
	b.WriteString("\n</transcript>\n")
	return b.String()
}

// BuildSuggestQuestionsPrompt asks for exactly 3 short questions biased
// toward critical evaluation of the content.
func BuildSuggestQuestionsPrompt(transcriptText, languageName string) string {
	if len(transcriptText) > maxQuestionsTranscriptChars {
		cut := maxQuestionsTranscriptChars
		// Back off to a rune boundary so the cap never splits a character.
		for cut > 0 && !utf8.RuneStart(transcriptText[cut]) {
			cut--
		}
		transcriptText = transcriptText[:cut]
	}

	languageInstruction := ""
	if languageName != "" {
		languageInstruction = fmt.Sprintf("\n\nIMPORTANT: Write all questions in %s.", languageName)
	}

	var b strings.Builder
	b.WriteString(`Based on this video transcript, generate exactly 3 suggested questions that a viewer might want to ask to better understand the content.

Rules:
- Each question should be SHORT (under 10 words if possible)
- Questions should be interesting and thought-provoking
- Focus on key concepts, insights, or practical applications
- Make questions specific to the video content, not generic
- If the transcript contains claims, opinions, or criticism, include questions that encourage critical evaluation
- Consider broader perspectives - help viewers question authenticity and think beyond what's presented`)
	b.WriteString(languageInstruction)
	b.WriteString("\n\nTranscript:\n")
	b.WriteString(transcriptText)

	return b.String()
}

// BuildChaptersPrompt formats segments as "[start] text" lines and asks for
// chapters whose start times are exact timestamps from the transcript.
func BuildChaptersPrompt(segments []models.TranscriptSegment, languageName string) string {
	var formatted strings.Builder
	for i, seg := range segments {
		if i > 0 {
			formatted.WriteString("\n")
		}
		formatted.WriteString(fmt.Sprintf("[%g] %s", seg.Start, seg.Text))
	}

	languageInstruction := ""
	if languageName != "" {
		languageInstruction = fmt.Sprintf("\n\nIMPORTANT: Write all chapter titles in %s.", languageName)
	}

	var b strings.Builder
	b.WriteString(`Analyze this video transcript and divide it into logical chapters.

Step 1: Determine the appropriate number of chapters
- Read through the transcript and identify natural topic transitions
- Each chapter should represent a distinct, meaningful section of content
- Don't artificially limit or inflate the number - let the content dictate

Step 2: Generate the chapters
- Each chapter title should be SHORT (3-7 words), descriptive, and capture the main topic
- The start time MUST be an exact timestamp from the transcript where a new topic begins
- First chapter should start at 0.0 or very close to it
- Titles should be engaging and informative (like YouTube chapter titles)`)
	b.WriteString(languageInstruction)
	b.WriteString("\n\nTranscript with timestamps:\n")
	b.WriteString(formatted.String())
	b.WriteString("\n")

	return b.String()
}
