package youtube

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gnzdotmx/ytmanager/internal/settings"
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"google.golang.org/api/youtube/v3"
)

// DefaultRegionCode is used for category lookups when none is configured
const DefaultRegionCode = "fr"

// Service implements the Client interface
type Service struct {
	yt    *youtube.Service
	retry RetryPolicy
}

// Option configures a Service
type Option func(*Service)

// WithRetryPolicy overrides DefaultRetryPolicy
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Service) {
		s.retry = p
	}
}

// NewWithService wraps an authenticated API service
func NewWithService(yt *youtube.Service, opts ...Option) *Service {
	s := &Service{yt: yt, retry: DefaultRetryPolicy}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Client = (*Service)(nil)

// LiveBroadcast retrieves the latest broadcast of the channel
func (s *Service) LiveBroadcast(ctx context.Context) (*youtube.LiveBroadcast, error) {
	var resp *youtube.LiveBroadcastListResponse
	err := s.retry.do(ctx, "liveBroadcasts.list", func() (err error) {
		resp, err = s.yt.LiveBroadcasts.List([]string{"id", "snippet", "status", "contentDetails"}).
			Mine(true).
			MaxResults(1).
			BroadcastType("all").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get live broadcast: %w", err)
	}

	if len(resp.Items) == 0 {
		utils.LogVerbose("No live broadcast found")
		return &youtube.LiveBroadcast{}, nil
	}
	return resp.Items[0], nil
}

// Video retrieves a video with its statistics
func (s *Service) Video(ctx context.Context, videoID string) (*youtube.Video, error) {
	var resp *youtube.VideoListResponse
	err := s.retry.do(ctx, "videos.list", func() (err error) {
		resp, err = s.yt.Videos.List([]string{"id", "snippet", "statistics", "contentDetails"}).
			Id(videoID).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}

	if len(resp.Items) == 0 {
		utils.LogVerbose("No video found with ID: %s", videoID)
		return &youtube.Video{}, nil
	}
	return resp.Items[0], nil
}

// UpdateVideo sends the update built by BuildVideoUpdate
func (s *Service) UpdateVideo(ctx context.Context, video *youtube.Video, css settings.CurrentStreamSettings) (bool, error) {
	update, ok := BuildVideoUpdate(video, css)
	if !ok {
		utils.LogVerbose("Nothing to update on video %s", video.Id)
		return false, nil
	}

	if _, err := s.yt.Videos.Update(update.Parts, update.Video).Context(ctx).Do(); err != nil {
		return false, fmt.Errorf("failed to update video %s: %w", video.Id, err)
	}

	utils.LogInfo("Updated video %s: %s", video.Id, update.Video.Snippet.Title)
	return true, nil
}

// SetBroadcastTitle renames the broadcast
func (s *Service) SetBroadcastTitle(ctx context.Context, broadcast *youtube.LiveBroadcast, title string) error {
	update := BuildBroadcastTitleUpdate(broadcast, title)
	if _, err := s.yt.LiveBroadcasts.Update(update.Parts, update.Broadcast).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to set broadcast title: %w", err)
	}

	utils.LogInfo("Broadcast title set: %s", title)
	return nil
}

// SetBroadcastInfo updates the broadcast title and description
func (s *Service) SetBroadcastInfo(ctx context.Context, broadcast *youtube.LiveBroadcast, title, description string) (bool, error) {
	update, ok := BuildBroadcastInfoUpdate(broadcast, title, description)
	if !ok {
		utils.LogWarning("No broadcast id, title or description, live stream left unchanged")
		return false, nil
	}

	if _, err := s.yt.LiveBroadcasts.Update(update.Parts, update.Broadcast).Context(ctx).Do(); err != nil {
		return false, fmt.Errorf("failed to update live stream: %w", err)
	}

	utils.LogInfo("Live stream updated: %s", update.Broadcast.Snippet.Title)
	return true, nil
}

// SetThumbnail uploads the thumbnail of a video
func (s *Service) SetThumbnail(ctx context.Context, videoID string, image io.Reader) error {
	if _, err := s.yt.Thumbnails.Set(videoID).Media(image).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to set thumbnail on %s: %w", videoID, err)
	}

	utils.LogInfo("Thumbnail set on video %s", videoID)
	return nil
}

// Playlists lists the channel playlists, keeping those titled after one of
// names. An empty names returns every playlist.
func (s *Service) Playlists(ctx context.Context, names []string) ([]Playlist, error) {
	var resp *youtube.PlaylistListResponse
	err := s.retry.do(ctx, "playlists.list", func() (err error) {
		resp, err = s.yt.Playlists.List([]string{"id", "snippet"}).
			Mine(true).
			MaxResults(100).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	playlists := []Playlist{}
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		if len(names) > 0 && !slices.Contains(names, item.Snippet.Title) {
			continue
		}
		playlists = append(playlists, Playlist{ID: item.Id, Name: item.Snippet.Title})
	}
	return playlists, nil
}

// PlaylistIDs resolves names to playlist ids in the order given. Unknown
// names are skipped unless upsert is set, in which case the playlist is
// created.
func (s *Service) PlaylistIDs(ctx context.Context, names []string, upsert bool) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}

	existing, err := s.Playlists(ctx, names)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		idx := slices.IndexFunc(existing, func(p Playlist) bool { return p.Name == name })
		if idx >= 0 {
			ids = append(ids, existing[idx].ID)
			continue
		}
		if !upsert {
			utils.LogVerbose("Playlist not found: %s", name)
			continue
		}

		created, err := s.insertPlaylist(ctx, name)
		if err != nil {
			return nil, err
		}
		existing = append(existing, created)
		ids = append(ids, created.ID)
	}
	return ids, nil
}

// UpsertPlaylist returns the playlist titled name, creating it when absent
func (s *Service) UpsertPlaylist(ctx context.Context, name string) (Playlist, error) {
	existing, err := s.Playlists(ctx, []string{name})
	if err != nil {
		return Playlist{}, err
	}
	if len(existing) > 0 {
		return existing[0], nil
	}
	return s.insertPlaylist(ctx, name)
}

func (s *Service) insertPlaylist(ctx context.Context, name string) (Playlist, error) {
	resp, err := s.yt.Playlists.Insert([]string{"snippet"}, &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{Title: name},
	}).Context(ctx).Do()
	if err != nil {
		return Playlist{}, fmt.Errorf("failed to create playlist %q: %w", name, err)
	}

	utils.LogInfo("Created playlist %s (%s)", name, resp.Id)
	return Playlist{ID: resp.Id, Name: name}, nil
}

// AddVideoToPlaylist inserts the video into the playlist unless it is
// already there. It reports whether an insert happened.
func (s *Service) AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) (bool, error) {
	var resp *youtube.PlaylistItemListResponse
	err := s.retry.do(ctx, "playlistItems.list", func() (err error) {
		resp, err = s.yt.PlaylistItems.List([]string{"id"}).
			PlaylistId(playlistID).
			VideoId(videoID).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to list playlist items: %w", err)
	}
	if len(resp.Items) > 0 {
		utils.LogVerbose("Video %s already in playlist %s", videoID, playlistID)
		return false, nil
	}

	_, err = s.yt.PlaylistItems.Insert([]string{"snippet"}, &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to add video to playlist: %w", err)
	}

	utils.LogInfo("Added video %s to playlist %s", videoID, playlistID)
	return true, nil
}

// CategoryID looks up a category by title, ignoring case. It returns ""
// when the region has no such category.
func (s *Service) CategoryID(ctx context.Context, name, regionCode string) (string, error) {
	if name == "" {
		return "", nil
	}
	if regionCode == "" {
		regionCode = DefaultRegionCode
	}

	var resp *youtube.VideoCategoryListResponse
	err := s.retry.do(ctx, "videoCategories.list", func() (err error) {
		resp, err = s.yt.VideoCategories.List([]string{"snippet"}).
			RegionCode(regionCode).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to list video categories: %w", err)
	}

	for _, category := range resp.Items {
		if category.Snippet != nil && strings.EqualFold(category.Snippet.Title, name) {
			return category.Id, nil
		}
	}

	utils.LogWarning("Category %q not found in region %s", name, regionCode)
	return "", nil
}

// UploadVideo uploads a local file
func (s *Service) UploadVideo(ctx context.Context, req UploadRequest) (string, error) {
	file, err := os.Open(req.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			utils.LogWarning("Failed to close video file: %v", err)
		}
	}()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			CategoryId:  req.CategoryID,
			Tags:        req.Tags,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: req.Privacy,
			MadeForKids:   false,
		},
	}

	resp, err := s.yt.Videos.Insert([]string{"snippet", "status"}, video).
		Media(file).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video %s: %w", req.Path, err)
	}

	utils.LogInfo("Successfully uploaded video: %s", resp.Id)
	return resp.Id, nil
}
