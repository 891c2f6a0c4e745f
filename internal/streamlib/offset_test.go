package streamlib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withLocal runs the test with time.Local set to a fixed zone
func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestComputeOffset_ReplayFile(t *testing.T) {
	withLocal(t, time.FixedZone("CET", 3600))

	got, err := ComputeOffset("Replay_2024-03-24_13-38-36.mkv", "2024-03-24T12:39:36Z")
	require.NoError(t, err)
	assert.Equal(t, -60, got)
}

func TestComputeOffset(t *testing.T) {
	withLocal(t, time.UTC)

	tests := []struct {
		name     string
		fileName string
		iso      string
		want     int
	}{
		{"same instant", "Replay_2024-03-24_12-00-00.mkv", "2024-03-24T12:00:00Z", 0},
		{"clip later", "Replay_2024-03-24_12-10-05.mkv", "2024-03-24T12:00:00Z", 605},
		{"clip earlier", "2024-03-24_11-59-00", "2024-03-24T12:00:00Z", -60},
		{"reference with offset", "clip 2024-03-24_12-00-00.mp4", "2024-03-24T14:00:00+02:00", 0},
		{"fractional reference", "Replay_2024-03-24_12-00-01.mkv", "2024-03-24T12:00:00.500Z", 0},
		{"reference without zone is local", "Replay_2024-03-24_12-00-30.mkv", "2024-03-24T12:00:00", 30},
		{"across midnight", "Replay_2024-03-25_00-00-10.mkv", "2024-03-24T23:59:50Z", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeOffset(tt.fileName, tt.iso)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeOffset_InvalidFormat(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		iso      string
	}{
		{"no timestamp", "Replay.mkv", "2024-03-24T12:00:00Z"},
		{"wrong separators", "Replay_2024-03-24 13:38:36.mkv", "2024-03-24T12:00:00Z"},
		{"short year", "Replay_24-03-24_13-38-36.mkv", "2024-03-24T12:00:00Z"},
		{"impossible month", "Replay_2024-13-24_13-38-36.mkv", "2024-03-24T12:00:00Z"},
		{"impossible hour", "Replay_2024-03-24_25-38-36.mkv", "2024-03-24T12:00:00Z"},
		{"empty reference", "Replay_2024-03-24_13-38-36.mkv", ""},
		{"not iso reference", "Replay_2024-03-24_13-38-36.mkv", "March 24 2024"},
		{"impossible reference", "Replay_2024-03-24_13-38-36.mkv", "2024-99-99T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeOffset(tt.fileName, tt.iso)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestComputeOffset_Antisymmetric(t *testing.T) {
	withLocal(t, time.FixedZone("CET", 3600))

	a := time.Date(2024, 3, 24, 13, 38, 36, 0, time.Local)
	b := time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC)

	clipName := func(t time.Time) string { return "Replay_" + t.In(time.Local).Format("2006-01-02_15-04-05") + ".mkv" }

	forward, err := ComputeOffset(clipName(a), b.Format(time.RFC3339))
	require.NoError(t, err)
	backward, err := ComputeOffset(clipName(b), a.Format(time.RFC3339))
	require.NoError(t, err)

	assert.Equal(t, -forward, backward)
	assert.Equal(t, 38*60+36, forward)
}
