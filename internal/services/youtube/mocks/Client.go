package mocks

import (
	"context"
	"io"

	ytsvc "github.com/gnzdotmx/ytmanager/internal/services/youtube"
	"github.com/gnzdotmx/ytmanager/internal/settings"
	"github.com/stretchr/testify/mock"
	"google.golang.org/api/youtube/v3"
)

// MockClient is a testify mock of youtube.Client
type MockClient struct {
	mock.Mock
}

var _ ytsvc.Client = (*MockClient)(nil)

// NewMockClient creates a MockClient whose expectations are asserted when
// the test ends.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClient) LiveBroadcast(ctx context.Context) (*youtube.LiveBroadcast, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).(*youtube.LiveBroadcast)
	return b, args.Error(1)
}

func (m *MockClient) Video(ctx context.Context, videoID string) (*youtube.Video, error) {
	args := m.Called(ctx, videoID)
	v, _ := args.Get(0).(*youtube.Video)
	return v, args.Error(1)
}

func (m *MockClient) UpdateVideo(ctx context.Context, video *youtube.Video, css settings.CurrentStreamSettings) (bool, error) {
	args := m.Called(ctx, video, css)
	return args.Bool(0), args.Error(1)
}

func (m *MockClient) SetBroadcastTitle(ctx context.Context, broadcast *youtube.LiveBroadcast, title string) error {
	args := m.Called(ctx, broadcast, title)
	return args.Error(0)
}

func (m *MockClient) SetBroadcastInfo(ctx context.Context, broadcast *youtube.LiveBroadcast, title, description string) (bool, error) {
	args := m.Called(ctx, broadcast, title, description)
	return args.Bool(0), args.Error(1)
}

func (m *MockClient) SetThumbnail(ctx context.Context, videoID string, image io.Reader) error {
	args := m.Called(ctx, videoID, image)
	return args.Error(0)
}

func (m *MockClient) Playlists(ctx context.Context, names []string) ([]ytsvc.Playlist, error) {
	args := m.Called(ctx, names)
	p, _ := args.Get(0).([]ytsvc.Playlist)
	return p, args.Error(1)
}

func (m *MockClient) PlaylistIDs(ctx context.Context, names []string, upsert bool) ([]string, error) {
	args := m.Called(ctx, names, upsert)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockClient) UpsertPlaylist(ctx context.Context, name string) (ytsvc.Playlist, error) {
	args := m.Called(ctx, name)
	p, _ := args.Get(0).(ytsvc.Playlist)
	return p, args.Error(1)
}

func (m *MockClient) AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClient) CategoryID(ctx context.Context, name, regionCode string) (string, error) {
	args := m.Called(ctx, name, regionCode)
	return args.String(0), args.Error(1)
}

func (m *MockClient) UploadVideo(ctx context.Context, req ytsvc.UploadRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
