package actions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnzdotmx/ytmanager/internal/services/youtube/mocks"
	"github.com/gnzdotmx/ytmanager/internal/settings"
	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/youtube/v3"
)

func TestLibraryActionsNeedLibrary(t *testing.T) {
	for _, name := range []string{"vertical-saved", "vertical-info", "verticals-upload", "stream-settings", "set-timestamps"} {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, name, &Env{Client: mocks.NewMockClient(t)}, nil)
			assert.ErrorIs(t, err, ErrLibraryRequired)
		})
	}
}

func TestVerticalSaved(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "Replay_2024-03-24_12-50-00.mkv")
	newer := filepath.Join(dir, "Replay_2024-03-24_13-38-36.mkv")
	require.NoError(t, os.WriteFile(older, []byte("a"), 0644))
	require.NoError(t, os.WriteFile(newer, []byte("b"), 0644))
	require.NoError(t, os.Chtimes(older, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))

	lib := newTestLibrary(t)
	lib.SetVerticalsPath(dir)

	client := mocks.NewMockClient(t)
	client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)
	client.On("Video", mock.Anything, "abc").Return(liveVideo(), nil)

	result, err := run(t, "vertical-saved", &Env{Client: client, Library: lib}, nil)
	require.NoError(t, err)

	vertical := result.(*streamlib.Vertical)
	assert.Equal(t, "Replay_2024-03-24_13-38-36.mkv", vertical.Name)
	assert.Equal(t, "abc", vertical.ID)
	assert.Equal(t, "Live", vertical.Title)
	assert.Equal(t, "Stream description", vertical.Description)
	assert.Equal(t, []string{"gaming"}, vertical.Tags)
	assert.False(t, vertical.Uploaded)

	offset, err := streamlib.ComputeOffset(vertical.Name, "2024-03-24T12:39:36Z")
	require.NoError(t, err)
	assert.Equal(t, offset, vertical.StartTime)

	saved, ok := streamlib.Load(lib.Path()).Stream("abc")
	require.True(t, ok)
	assert.Contains(t, saved.Verticals, vertical.Name)
}

func TestVerticalSaved_InvalidClipName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("a"), 0644))

	lib := newTestLibrary(t)
	lib.SetVerticalsPath(dir)

	client := mocks.NewMockClient(t)
	client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)
	client.On("Video", mock.Anything, "abc").Return(liveVideo(), nil)

	_, err := run(t, "vertical-saved", &Env{Client: client, Library: lib}, nil)
	assert.ErrorIs(t, err, streamlib.ErrInvalidFormat)

	_, err = os.Stat(lib.Path())
	assert.True(t, os.IsNotExist(err), "library must not be saved")
}

func TestVerticalSaved_EmptyDirectory(t *testing.T) {
	lib := newTestLibrary(t)
	lib.SetVerticalsPath(t.TempDir())

	client := mocks.NewMockClient(t)
	client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)

	result, err := run(t, "vertical-saved", &Env{Client: client, Library: lib}, nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestVerticalInfo(t *testing.T) {
	lib := newTestLibrary(t)
	lib.AddStream(streamlib.Stream{ID: "abc", Title: []string{"Live"}, Description: []string{"D"}})
	lib.AddVerticalToStream("abc", streamlib.Vertical{Name: "b.mkv", Title: "B", Description: "B desc"})
	lib.AddVerticalToStream("abc", streamlib.Vertical{Name: "a.mkv", Title: "A", Description: "A desc"})

	client := mocks.NewMockClient(t)
	client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)

	result, err := run(t, "vertical-info", &Env{Client: client, Library: lib}, map[string]any{"title": "Best moment"})
	require.NoError(t, err)

	vertical := result.(*streamlib.Vertical)
	assert.Equal(t, "a.mkv", vertical.Name)
	assert.Equal(t, "Best moment", vertical.Title)
	assert.Equal(t, "A desc", vertical.Description)

	saved, _ := streamlib.Load(lib.Path()).Stream("abc")
	assert.Equal(t, "Best moment", saved.Verticals["a.mkv"].Title)
	assert.Equal(t, "B", saved.Verticals["b.mkv"].Title)
}

func TestVerticalInfo_NotFound(t *testing.T) {
	t.Run("unknown stream", func(t *testing.T) {
		client := mocks.NewMockClient(t)
		client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)

		_, err := run(t, "vertical-info", &Env{Client: client, Library: newTestLibrary(t)}, nil)
		assert.ErrorIs(t, err, streamlib.ErrNotFound)
	})

	t.Run("stream without vertical", func(t *testing.T) {
		lib := newTestLibrary(t)
		lib.AddStream(streamlib.Stream{ID: "abc"})
		client := mocks.NewMockClient(t)
		client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)

		_, err := run(t, "vertical-info", &Env{Client: client, Library: lib}, nil)
		assert.ErrorIs(t, err, streamlib.ErrNotFound)
	})
}

func TestStreamSettings(t *testing.T) {
	lib := newTestLibrary(t)

	result, err := run(t, "stream-settings", &Env{Library: lib}, map[string]any{
		"vertical-path":              "/clips",
		"vertical-visibility":        "unlisted",
		"vertical-add-link-to-video": "false",
		"vertical-link-offset":       "-10",
		"thumb-path":                 "/thumbs",
		"page-dock":                  "/dock.html",
	})
	require.NoError(t, err)
	assert.Equal(t, streamlib.VerticalsOptions{
		Path:                       "/clips",
		AddLinkToVideo:             false,
		OffsetLinkToVideoInSeconds: -10,
		Visibility:                 streamlib.VisibilityUnlisted,
	}, result)

	saved := streamlib.Load(lib.Path()).Lib()
	assert.Equal(t, "/clips", saved.VerticalsOptions.Path)
	assert.Equal(t, "/thumbs", saved.ThumbPath)
	assert.Equal(t, "/dock.html", saved.PageDock)
	assert.Equal(t, streamlib.DefaultWatchURL, saved.WatchURL)
}

func TestStreamSettings_KeepsUnsetOptions(t *testing.T) {
	lib := newTestLibrary(t)
	lib.SetVerticalsPath("/clips")

	result, err := run(t, "stream-settings", &Env{Library: lib}, map[string]any{"vertical-link-offset": 0})
	require.NoError(t, err)

	options := result.(streamlib.VerticalsOptions)
	assert.Equal(t, "/clips", options.Path)
	assert.True(t, options.AddLinkToVideo)
	assert.Equal(t, streamlib.VisibilityPublic, options.Visibility)
}

func TestStreamSettings_InvalidVisibility(t *testing.T) {
	_, err := run(t, "stream-settings", &Env{Library: newTestLibrary(t)}, map[string]any{"vertical-visibility": "secret"})
	var verr *utils.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestStreamSettings_AddLinkToVideo(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    bool
		wantErr bool
	}{
		{name: "false string", value: "false", want: false},
		{name: "true string", value: "true", want: true},
		{name: "numeric string", value: "0", want: false},
		{name: "json boolean", value: false, want: false},
		{name: "not a boolean", value: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := newTestLibrary(t)
			result, err := run(t, "stream-settings", &Env{Library: lib}, map[string]any{"vertical-add-link-to-video": tt.value})
			if tt.wantErr {
				var verr *utils.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "vertical-add-link-to-video", verr.Field)
				assert.True(t, lib.Lib().VerticalsOptions.AddLinkToVideo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.(streamlib.VerticalsOptions).AddLinkToVideo)
			assert.Equal(t, tt.want, streamlib.Load(lib.Path()).Lib().VerticalsOptions.AddLinkToVideo)
		})
	}
}

func TestSetTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timestamps.txt")
	require.NoError(t, os.WriteFile(path, []byte("00:00 Intro\n10:00 Boss"), 0644))

	lib := newTestLibrary(t)
	lib.SetTimestampsPath(path)
	lib.AddStream(streamlib.Stream{ID: "abc"})

	video := liveVideo()
	client := mocks.NewMockClient(t)
	client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)
	client.On("Video", mock.Anything, "abc").Return(video, nil)
	client.On("UpdateVideo", mock.Anything, video, mock.MatchedBy(func(css settings.CurrentStreamSettings) bool {
		return settings.Value(css.Description) == "Stream description\n\nChapters\n00:00 Intro\n10:00 Boss"
	})).Return(true, nil)

	result, err := run(t, "set-timestamps", &Env{Client: client, Library: lib}, map[string]any{"timestamp-title": "Chapters\n"})
	require.NoError(t, err)
	assert.Equal(t, Result{Success: true}, result)

	saved, _ := streamlib.Load(lib.Path()).Stream("abc")
	assert.Equal(t, "00:00 Intro\n10:00 Boss", saved.Timestamps)
}

func TestSetTimestamps_AlreadyPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timestamps.txt")
	require.NoError(t, os.WriteFile(path, []byte("00:00 Intro"), 0644))

	lib := newTestLibrary(t)
	lib.SetTimestampsPath(path)

	video := &youtube.Video{Id: "abc", Snippet: &youtube.VideoSnippet{Description: "D\n\nTimestamps :\n00:00 Old"}}
	client := mocks.NewMockClient(t)
	client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)
	client.On("Video", mock.Anything, "abc").Return(video, nil)

	result, err := run(t, "set-timestamps", &Env{Client: client, Library: lib}, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Success: true, Message: "timestamps already in description"}, result)
}

func TestSetTimestamps_PathNotSet(t *testing.T) {
	_, err := run(t, "set-timestamps", &Env{Client: mocks.NewMockClient(t), Library: newTestLibrary(t)}, nil)
	var verr *utils.ValidationError
	assert.ErrorAs(t, err, &verr)
}
