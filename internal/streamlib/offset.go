package streamlib

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

var (
	clipTimeRe = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})_(\d{2})-(\d{2})-(\d{2})`)
	isoDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// ClipTime extracts the capture time embedded in a clip file name such as
// Replay_2024-03-24_13-38-36.mkv. The time is read in the local zone.
func ClipTime(fileName string) (time.Time, error) {
	m := clipTimeRe.FindStringSubmatch(fileName)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: file name %q, expected Replay_YYYY-MM-DD_HH-MM-SS.mkv", ErrInvalidFormat, fileName)
	}

	parts := make([]int, 6)
	for i := range parts {
		parts[i], _ = strconv.Atoi(m[i+1])
	}
	year, month, day, hour, minute, second := parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	if hour > 23 || minute > 59 || second > 59 || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: file name %q holds an impossible date", ErrInvalidFormat, fileName)
	}
	return t, nil
}

// ParseISO parses an ISO-8601 instant. Values carrying an offset keep it,
// values without one are read in the local zone.
func ParseISO(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if !isoDateRe.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %q is not an ISO date time", ErrInvalidFormat, value)
	}
	t, err := dateparse.ParseIn(value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not an ISO date time: %v", ErrInvalidFormat, value, err)
	}
	return t, nil
}

// ComputeOffset returns the number of seconds between the capture time in
// fileName and the reference instant, positive when the clip is later.
func ComputeOffset(fileName, isoReference string) (int, error) {
	clip, err := ClipTime(fileName)
	if err != nil {
		return 0, err
	}
	ref, err := ParseISO(isoReference)
	if err != nil {
		return 0, err
	}
	return int(clip.Sub(ref) / time.Second), nil
}
