package gemini

import "fmt"

// transcriptionPromptTemplate captures the instructions sent with every video.
// Keep updates centralized here so the prompt is easy to tweak without hunting
// through call sites.
const transcriptionPromptTemplate = `Accurately recognize the speech in this video and generate %s subtitles.
Provide every line of dialogue in SRT format with exact timestamps in HH:MM:SS,mmm form.

The SRT format looks like this:
1
00:00:01,000 --> 00:00:05,000
First subtitle line

2
00:00:06,000 --> 00:00:10,000
Second subtitle line

Transcribe exactly what is spoken. Produce real dialogue, never empty placeholders.`

func transcriptionPrompt(languageName string) string {
	return fmt.Sprintf(transcriptionPromptTemplate, languageName)
}
