package streamlib

import (
	"fmt"
	"slices"

	"google.golang.org/api/youtube/v3"
)

// StreamFromVideo builds a stream record from the platform video and the
// broadcast it belongs to. broadcast may be nil.
func StreamFromVideo(video *youtube.Video, broadcast *youtube.LiveBroadcast) Stream {
	s := Stream{
		Title:       []string{""},
		Description: []string{""},
		Tags:        []string{},
		Verticals:   make(map[string]*Vertical),
	}
	if video == nil {
		return s
	}

	s.ID = video.Id
	if video.Snippet != nil {
		s.Title = []string{video.Snippet.Title}
		s.Description = []string{video.Snippet.Description}
		if video.Snippet.Tags != nil {
			s.Tags = slices.Clone(video.Snippet.Tags)
		}
		s.CategoryID = video.Snippet.CategoryId
	}
	if broadcast != nil && broadcast.Snippet != nil {
		s.StartTime = broadcast.Snippet.PublishedAt
	}
	return s
}

// NewVertical creates the vertical record for a clip of stream. It fails
// with ErrInvalidFormat when the clip name or the stream start does not parse.
func NewVertical(stream *Stream, name string) (Vertical, error) {
	offset, err := ComputeOffset(name, stream.StartTime)
	if err != nil {
		return Vertical{}, fmt.Errorf("vertical %s of stream %s: %w", name, stream.ID, err)
	}
	return Vertical{
		ID:          stream.ID,
		Name:        name,
		Title:       stream.LatestTitle(),
		Description: stream.LatestDescription(),
		Tags:        slices.Clone(stream.Tags),
		StartTime:   offset,
		Uploaded:    false,
	}, nil
}

// FirstVerticalName returns the first vertical name of stream in sorted order
func FirstVerticalName(stream *Stream) (string, bool) {
	keys := sortedKeys(stream.Verticals)
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}
