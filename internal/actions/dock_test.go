package actions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnzdotmx/ytmanager/internal/services/youtube/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDockPage(t *testing.T) {
	tests := []struct {
		name    string
		refresh int
		waiting bool
		want    string
	}{
		{
			name:    "redirects to chat",
			refresh: 15,
			want:    `<html><head><meta http-equiv="refresh" content="15;URL=https://studio.youtube.com/live_chat?is_popout=1&v=abc"></head></html>`,
		},
		{
			name:    "waiting page",
			refresh: 5,
			waiting: true,
			want:    `<html><head><meta http-equiv="refresh" content="5"></head></html>`,
		},
		{
			name:    "default refresh",
			waiting: true,
			want:    `<html><head><meta http-equiv="refresh" content="15"></head></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DockPage("abc", tt.refresh, tt.waiting))
		})
	}
}

func TestUpdateDockRedirect(t *testing.T) {
	t.Run("writes the page", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dock.html")
		client := mocks.NewMockClient(t)
		client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)

		result, err := run(t, "update-dock-redirect", &Env{Client: client}, map[string]any{"path-file": path, "refresh-time": "30"})
		require.NoError(t, err)
		assert.Equal(t, Result{Success: true}, result)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(got), `content="30;URL=`)
		assert.Contains(t, string(got), "v=abc")
	})

	t.Run("falls back to library page dock", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dock.html")
		lib := newTestLibrary(t)
		lib.SetPageDock(path)
		client := mocks.NewMockClient(t)
		client.On("LiveBroadcast", mock.Anything).Return(liveBroadcast(), nil)

		_, err := run(t, "update-dock-redirect", &Env{Client: client, Library: lib}, map[string]any{"waiting-redirect": true})
		require.NoError(t, err)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(got), `content="15"`)
	})

	t.Run("no path", func(t *testing.T) {
		result, err := run(t, "update-dock-redirect", &Env{Client: mocks.NewMockClient(t)}, nil)
		require.NoError(t, err)
		assert.Equal(t, Result{Success: false, Message: "No path file specified"}, result)
	})
}
