// Package streamlib keeps the local history of streams and their vertical clips
package streamlib

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultWatchURL is the prefix used to link a vertical back to its stream
const DefaultWatchURL = "https://www.youtube.com/watch?v="

// Visibility is the privacy status applied to uploaded verticals
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
)

// Visibilities lists the accepted visibility values
var Visibilities = []string{string(VisibilityPublic), string(VisibilityUnlisted), string(VisibilityPrivate)}

// ParseVisibility converts a string into a Visibility
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(strings.TrimSpace(s))); v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return v, nil
	default:
		return "", fmt.Errorf("invalid visibility %q", s)
	}
}

var (
	// ErrInvalidFormat is returned when a clip name or date does not parse
	ErrInvalidFormat = errors.New("invalid format")
	// ErrNotFound is returned when a stream or vertical is unknown
	ErrNotFound = errors.New("not found")
)

// Vertical is a short clip cut from a stream
type Vertical struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CategoryID  string   `json:"categoryId,omitempty"`
	// StartTime is the offset in seconds between the clip capture and the stream start
	StartTime int  `json:"startTime"`
	Uploaded  bool `json:"uploaded"`
}

// Stream is one observed live broadcast. Title and Description hold the
// history of values seen, most recent first, without duplicates.
type Stream struct {
	ID          string               `json:"id"`
	Title       []string             `json:"title"`
	Description []string             `json:"description"`
	Tags        []string             `json:"tags"`
	CategoryID  string               `json:"categoryId"`
	Verticals   map[string]*Vertical `json:"verticals"`
	StartTime   string               `json:"startTime"`
	Timestamps  string               `json:"timestamps"`
}

// LatestTitle returns the most recent title, or ""
func (s *Stream) LatestTitle() string {
	if len(s.Title) == 0 {
		return ""
	}
	return s.Title[0]
}

// LatestDescription returns the most recent description, or ""
func (s *Stream) LatestDescription() string {
	if len(s.Description) == 0 {
		return ""
	}
	return s.Description[0]
}

// VerticalsOptions drives how verticals are found and uploaded
type VerticalsOptions struct {
	Path                       string     `json:"path"`
	AddLinkToVideo             bool       `json:"addLinkToVideo"`
	OffsetLinkToVideoInSeconds int        `json:"offsetLinkToVideoInSeconds"`
	Visibility                 Visibility `json:"visibility"`
}

// StreamLib is the persisted root document
type StreamLib struct {
	VerticalsOptions VerticalsOptions   `json:"verticalsOptions"`
	PageDock         string             `json:"pageDock"`
	ThumbPath        string             `json:"thumbPath"`
	WatchURL         string             `json:"watchUrl"`
	TimestampsPath   string             `json:"timestampsPath"`
	Streams          map[string]*Stream `json:"streams"`
}

// NewStreamLib returns a library document holding the default settings
func NewStreamLib() *StreamLib {
	return &StreamLib{
		VerticalsOptions: VerticalsOptions{
			Path:                       "",
			AddLinkToVideo:             true,
			OffsetLinkToVideoInSeconds: 0,
			Visibility:                 VisibilityPublic,
		},
		WatchURL: DefaultWatchURL,
		Streams:  make(map[string]*Stream),
	}
}

// VerticalRef points at a vertical together with the stream owning it
type VerticalRef struct {
	StreamID string
	Vertical *Vertical
}

// PersistenceError reports a failure to read or write the library file
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
