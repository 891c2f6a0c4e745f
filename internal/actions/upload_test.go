package actions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	youtubesvc "github.com/gnzdotmx/ytmanager/internal/services/youtube"
	"github.com/gnzdotmx/ytmanager/internal/services/youtube/mocks"
	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVideoLink(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "offset", seconds: 3540, want: "https://www.youtube.com/watch?v=abc&t=3540s"},
		{name: "zero", seconds: 0, want: "https://www.youtube.com/watch?v=abc&t=0s"},
		{name: "negative is clamped", seconds: -30, want: "https://www.youtube.com/watch?v=abc&t=0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VideoLink(streamlib.DefaultWatchURL, "abc", tt.seconds))
		})
	}
}

func TestShortsDescription(t *testing.T) {
	assert.Equal(t, "Clip #shorts", shortsDescription("Clip"))
	assert.Equal(t, "Clip #Shorts", shortsDescription("Clip #Shorts"))
	assert.Equal(t, " #shorts", shortsDescription(""))
}

func uploadLibrary(t *testing.T) *streamlib.Library {
	t.Helper()
	lib := newTestLibrary(t)
	lib.SetVerticalsPath("/clips")
	lib.UpdateVerticalsOptions(streamlib.OptionsUpdate{LinkOffset: ptr(-10)})
	lib.AddStream(streamlib.Stream{ID: "s1", CategoryID: "24"})
	lib.AddStream(streamlib.Stream{ID: "s2"})
	lib.AddVerticalToStream("s1", streamlib.Vertical{Name: "b.mkv", Title: "B", Description: "B desc", StartTime: 100})
	lib.AddVerticalToStream("s1", streamlib.Vertical{Name: "a.mkv", Title: "A", Description: "A desc #SHORTS", StartTime: 5})
	lib.AddVerticalToStream("s2", streamlib.Vertical{Name: "c.mkv", Title: "C", Tags: []string{"clip"}})
	lib.AddVerticalToStream("s2", streamlib.Vertical{Name: "done.mkv", Uploaded: true})
	return lib
}

func ptr[T any](v T) *T { return &v }

func TestUploadVerticals(t *testing.T) {
	lib := uploadLibrary(t)

	client := mocks.NewMockClient(t)
	client.On("UploadVideo", mock.Anything, youtubesvc.UploadRequest{
		Path:        filepath.Join("/clips", "a.mkv"),
		Title:       "A",
		Description: "A desc #SHORTS\nhttps://www.youtube.com/watch?v=s1&t=0s",
		CategoryID:  "24",
		Privacy:     "public",
	}).Return("vidA", nil).Once()
	client.On("UploadVideo", mock.Anything, youtubesvc.UploadRequest{
		Path:        filepath.Join("/clips", "b.mkv"),
		Title:       "B",
		Description: "B desc\nhttps://www.youtube.com/watch?v=s1&t=90s #shorts",
		CategoryID:  "24",
		Privacy:     "public",
	}).Return("", errors.New("quota exceeded")).Once()
	client.On("UploadVideo", mock.Anything, youtubesvc.UploadRequest{
		Path:        filepath.Join("/clips", "c.mkv"),
		Title:       "C",
		Description: "\nhttps://www.youtube.com/watch?v=s2&t=0s #shorts",
		Tags:        []string{"clip"},
		CategoryID:  DefaultVerticalCategory,
		Privacy:     "public",
	}).Return("vidC", nil).Once()

	report := UploadVerticals(context.Background(), client, lib)

	assert.Equal(t, 2, report.UploadedCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, []UploadedVertical{
		{StreamID: "s1", Name: "a.mkv", VideoID: "vidA"},
		{StreamID: "s2", Name: "c.mkv", VideoID: "vidC"},
	}, report.Uploaded)
	assert.Equal(t, []UploadFailure{{StreamID: "s1", Name: "b.mkv", Error: "quota exceeded"}}, report.Failed)
	assert.Empty(t, report.SaveErrors)

	saved := streamlib.Load(lib.Path())
	s1, _ := saved.Stream("s1")
	assert.True(t, s1.Verticals["a.mkv"].Uploaded)
	assert.Equal(t, "vidA", s1.Verticals["a.mkv"].ID)
	assert.False(t, s1.Verticals["b.mkv"].Uploaded)
	s2, _ := saved.Stream("s2")
	assert.True(t, s2.Verticals["c.mkv"].Uploaded)
}

func TestUploadVerticals_WithoutLink(t *testing.T) {
	lib := newTestLibrary(t)
	lib.UpdateVerticalsOptions(streamlib.OptionsUpdate{AddLinkToVideo: ptr(false), Visibility: ptr(streamlib.VisibilityPrivate)})
	lib.AddStream(streamlib.Stream{ID: "s1"})
	lib.AddVerticalToStream("s1", streamlib.Vertical{Name: "a.mkv", Title: "A", Description: "A desc"})

	client := mocks.NewMockClient(t)
	client.On("UploadVideo", mock.Anything, mock.MatchedBy(func(req youtubesvc.UploadRequest) bool {
		return req.Description == "A desc #shorts" && req.Privacy == "private"
	})).Return("vid", nil)

	report := UploadVerticals(context.Background(), client, lib)
	assert.Equal(t, 1, report.UploadedCount)
}

func TestUploadVerticals_EmptyVideoID(t *testing.T) {
	lib := newTestLibrary(t)
	lib.AddStream(streamlib.Stream{ID: "s1"})
	lib.AddVerticalToStream("s1", streamlib.Vertical{Name: "a.mkv"})

	client := mocks.NewMockClient(t)
	client.On("UploadVideo", mock.Anything, mock.Anything).Return("", nil)

	report := UploadVerticals(context.Background(), client, lib)
	assert.Equal(t, 0, report.UploadedCount)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "upload returned no video id", report.Failed[0].Error)

	s, _ := lib.Stream("s1")
	assert.False(t, s.Verticals["a.mkv"].Uploaded)
}

func TestUploadVerticals_CanceledContext(t *testing.T) {
	lib := newTestLibrary(t)
	lib.AddStream(streamlib.Stream{ID: "s1"})
	lib.AddVerticalToStream("s1", streamlib.Vertical{Name: "a.mkv"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := UploadVerticals(ctx, mocks.NewMockClient(t), lib)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, context.Canceled.Error(), report.Failed[0].Error)
}

func TestUploadVerticals_SaveError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	lib := streamlib.New(filepath.Join(blocker, streamlib.DefaultFile), streamlib.NewStreamLib())
	lib.AddStream(streamlib.Stream{ID: "s1"})
	lib.AddVerticalToStream("s1", streamlib.Vertical{Name: "a.mkv"})

	client := mocks.NewMockClient(t)
	client.On("UploadVideo", mock.Anything, mock.Anything).Return("vid", nil)

	report := UploadVerticals(context.Background(), client, lib)
	assert.Equal(t, 1, report.UploadedCount)
	assert.Len(t, report.SaveErrors, 1)
}

func TestVerticalsUploadAction(t *testing.T) {
	lib := newTestLibrary(t)
	lib.AddStream(streamlib.Stream{ID: "s1"})
	lib.AddVerticalToStream("s1", streamlib.Vertical{Name: "a.mkv"})

	client := mocks.NewMockClient(t)
	client.On("UploadVideo", mock.Anything, mock.Anything).Return("vid", nil)

	result, err := run(t, "verticals-upload", &Env{Client: client, Library: lib}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.(UploadReport).UploadedCount)
}
