package youtube

import (
	"context"
	"io"

	"github.com/gnzdotmx/ytmanager/internal/settings"
	"google.golang.org/api/youtube/v3"
)

// Client defines the platform operations used by the actions
type Client interface {
	// LiveBroadcast returns the latest broadcast of the channel, or an empty one
	LiveBroadcast(ctx context.Context) (*youtube.LiveBroadcast, error)

	// Video returns the video with the given id, or an empty one
	Video(ctx context.Context, videoID string) (*youtube.Video, error)

	// UpdateVideo applies the computed settings to the video. It reports
	// false when the settings hold nothing to change.
	UpdateVideo(ctx context.Context, video *youtube.Video, css settings.CurrentStreamSettings) (bool, error)

	// SetBroadcastTitle renames the broadcast
	SetBroadcastTitle(ctx context.Context, broadcast *youtube.LiveBroadcast, title string) error

	// SetBroadcastInfo updates the broadcast title and description when set
	SetBroadcastInfo(ctx context.Context, broadcast *youtube.LiveBroadcast, title, description string) (bool, error)

	// SetThumbnail uploads the thumbnail image of a video
	SetThumbnail(ctx context.Context, videoID string, image io.Reader) error

	// Playlists returns the channel playlists whose title is one of names
	Playlists(ctx context.Context, names []string) ([]Playlist, error)

	// PlaylistIDs resolves playlist names, creating the missing ones when upsert is set
	PlaylistIDs(ctx context.Context, names []string, upsert bool) ([]string, error)

	// UpsertPlaylist returns the playlist named name, creating it if needed
	UpsertPlaylist(ctx context.Context, name string) (Playlist, error)

	// AddVideoToPlaylist inserts the video unless the playlist already holds it
	AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) (bool, error)

	// CategoryID resolves a category title to its id for a region
	CategoryID(ctx context.Context, name, regionCode string) (string, error)

	// UploadVideo uploads a local file and returns the platform id
	UploadVideo(ctx context.Context, req UploadRequest) (string, error)
}

// Playlist is a playlist id and title pair
type Playlist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UploadRequest describes a local video to publish
type UploadRequest struct {
	Path        string
	Title       string
	Description string
	Tags        []string
	CategoryID  string
	Privacy     string
}
