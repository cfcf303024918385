package srt

// Cue is one subtitle entry: a start time, an end time, and caption text.
type Cue struct {
	Start Timestamp
	End   Timestamp
	Text  string
}

const (
	// defaultCueSeconds is the synthetic duration assigned when the source
	// text gives no end time for a caption.
	defaultCueSeconds = 10

	sentinelText        = "No subtitles could be generated. Try a different video."
	conversionErrorText = "An error occurred while converting the subtitles."
)

func sentinelCue() Cue {
	return Cue{
		Start: 0,
		End:   Timestamp(0).AddSeconds(defaultCueSeconds),
		Text:  sentinelText,
	}
}
