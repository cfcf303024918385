package srt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Timestamp is elapsed time with millisecond precision. Hours are unbounded;
// there is no 24-hour wraparound.
type Timestamp int64

const millisPerSecond = 1000

var (
	// timestampPattern matches a canonical HH:MM:SS,mmm stamp. Hours may
	// exceed two digits for very long recordings.
	timestampPattern = regexp.MustCompile(`\d{2,}:\d{2}:\d{2},\d{3}`)

	// rangePattern matches a full "start --> end" timing line fragment.
	rangePattern = regexp.MustCompile(`(\d{2,}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2},\d{3})`)

	// shortTimestampPattern matches the truncated MM:SS,mmm shape some model
	// responses use. The leading group keeps it from firing on the tail of an
	// already-complete HH:MM:SS,mmm stamp.
	shortTimestampPattern = regexp.MustCompile(`(^|[^:\d])(\d{2}:\d{2},\d{3})`)

	timestampShape = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})$`)
)

// ParseTimestamp parses an HH:MM:SS,mmm value. A period as the fractional
// separator is tolerated and treated as a comma.
func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	match := timestampShape.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(match[1])
	minutes, errM := strconv.Atoi(match[2])
	seconds, errS := strconv.Atoi(match[3])
	millis, errMS := strconv.Atoi(match[4])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	total := int64(hours)*3600*millisPerSecond +
		int64(minutes)*60*millisPerSecond +
		int64(seconds)*millisPerSecond +
		int64(millis)
	return Timestamp(total), nil
}

// String renders the canonical SRT form: two-digit hours, minutes, and
// seconds, three-digit milliseconds, comma separator.
func (t Timestamp) String() string {
	ms := int64(t)
	if ms < 0 {
		ms = 0
	}
	hours := ms / (3600 * millisPerSecond)
	ms -= hours * 3600 * millisPerSecond
	minutes := ms / (60 * millisPerSecond)
	ms -= minutes * 60 * millisPerSecond
	seconds := ms / millisPerSecond
	millis := ms - seconds*millisPerSecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// AddSeconds returns the timestamp shifted forward by whole seconds with exact
// millisecond preservation.
func (t Timestamp) AddSeconds(seconds int) Timestamp {
	return t + Timestamp(int64(seconds)*millisPerSecond)
}

// Seconds returns the elapsed time as fractional seconds.
func (t Timestamp) Seconds() float64 {
	return float64(t) / millisPerSecond
}

// repairShortTimestamps rewrites every truncated MM:SS,mmm occurrence to
// 00:MM:SS,mmm so every downstream pattern operates on one canonical shape.
// Stamps that already carry an hour field pass through untouched.
func repairShortTimestamps(text string) string {
	return shortTimestampPattern.ReplaceAllString(text, "${1}00:${2}")
}

func mustParseTimestamp(value string) Timestamp {
	ts, err := ParseTimestamp(value)
	if err != nil {
		panic(err)
	}
	return ts
}
