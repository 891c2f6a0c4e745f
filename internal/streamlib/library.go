package streamlib

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/gnzdotmx/ytmanager/internal/utils"
)

// DefaultFile is the library file used when none is configured
const DefaultFile = "streamLib.json"

// Library owns the persisted StreamLib document. It is not safe for
// concurrent use; two processes saving the same file are last writer wins.
type Library struct {
	path string
	lib  *StreamLib
}

// New wraps an in-memory document, mostly for tests
func New(path string, lib *StreamLib) *Library {
	if lib == nil {
		lib = NewStreamLib()
	}
	normalize(lib)
	return &Library{path: path, lib: lib}
}

// Load reads the library at path. A missing or unreadable file yields a
// library with default settings; the failure is only logged.
func Load(path string) *Library {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			utils.LogVerbose("No stream library at %s, starting a new one", path)
		} else {
			utils.LogWarning("Error reading %s: %v", path, err)
		}
		return New(path, nil)
	}

	var lib StreamLib
	if err := json.Unmarshal(data, &lib); err != nil {
		utils.LogWarning("Error parsing %s: %v", path, err)
		return New(path, nil)
	}

	utils.LogDebug("Loaded stream library %s with %d streams", path, len(lib.Streams))
	return New(path, &lib)
}

// normalize fills the zero values a hand edited or older file may carry
func normalize(lib *StreamLib) {
	if lib.Streams == nil {
		lib.Streams = make(map[string]*Stream)
	}
	if lib.VerticalsOptions.Visibility == "" {
		lib.VerticalsOptions.Visibility = VisibilityPublic
	}
	if lib.WatchURL == "" {
		lib.WatchURL = DefaultWatchURL
	}
	for _, s := range lib.Streams {
		if s.Verticals == nil {
			s.Verticals = make(map[string]*Vertical)
		}
	}
}

// Path returns the backing file
func (l *Library) Path() string { return l.path }

// Lib returns the in-memory document
func (l *Library) Lib() *StreamLib { return l.lib }

// Stream returns the stream with the given id
func (l *Library) Stream(id string) (*Stream, bool) {
	s, ok := l.lib.Streams[id]
	return s, ok
}

// Save writes the library to its backing file. On failure the in-memory
// state is kept and a *PersistenceError is returned.
func (l *Library) Save() error {
	data, err := json.MarshalIndent(l.lib, "", "   ")
	if err != nil {
		return &PersistenceError{Op: "encode", Path: l.path, Err: err}
	}
	if err := writeFileAtomic(l.path, append(data, '\n'), 0644); err != nil {
		utils.LogError("Error writing %s: %v", l.path, err)
		return &PersistenceError{Op: "write", Path: l.path, Err: err}
	}
	utils.LogDebug("Saved stream library to %s", l.path)
	return nil
}

// prependUnique inserts value at the front unless it is already present
func prependUnique(values []string, value string) []string {
	if slices.Contains(values, value) {
		return values
	}
	return append([]string{value}, values...)
}

// AddStream inserts a new stream, or merges the latest title and
// description of an already known one into its history. Every other field
// of a known stream is left untouched.
func (l *Library) AddStream(stream Stream) *Library {
	existing, ok := l.lib.Streams[stream.ID]
	if !ok {
		s := stream
		s.Title = slices.Clone(stream.Title)
		s.Description = slices.Clone(stream.Description)
		s.Tags = slices.Clone(stream.Tags)
		if s.Verticals == nil {
			s.Verticals = make(map[string]*Vertical)
		}
		if s.Title == nil {
			s.Title = []string{}
		}
		if s.Description == nil {
			s.Description = []string{}
		}
		if s.Tags == nil {
			s.Tags = []string{}
		}
		l.lib.Streams[stream.ID] = &s
		utils.LogVerbose("Stream with id %s added", stream.ID)
		return l
	}

	if len(stream.Title) > 0 {
		existing.Title = prependUnique(existing.Title, stream.Title[0])
	}
	if len(stream.Description) > 0 {
		existing.Description = prependUnique(existing.Description, stream.Description[0])
	}
	utils.LogVerbose("Stream with id %s updated", stream.ID)
	return l
}

// AddTimestampsToStream sets the chapter block of a known stream
func (l *Library) AddTimestampsToStream(streamID, timestamps string) *Library {
	s, ok := l.lib.Streams[streamID]
	if !ok {
		utils.LogWarning("Stream with id %s does not exist", streamID)
		return l
	}
	s.Timestamps = timestamps
	utils.LogVerbose("Timestamps for stream with id %s have been updated", streamID)
	return l
}

// AddVerticalToStream attaches a vertical to a known stream. An existing
// vertical of the same name only takes the non-empty title and description.
func (l *Library) AddVerticalToStream(streamID string, vertical Vertical) *Library {
	s, ok := l.lib.Streams[streamID]
	if !ok {
		utils.LogWarning("Stream with id %s does not exist", streamID)
		return l
	}

	if v, ok := s.Verticals[vertical.Name]; ok {
		if vertical.Title != "" {
			v.Title = vertical.Title
		}
		if vertical.Description != "" {
			v.Description = vertical.Description
		}
		utils.LogVerbose("Vertical %s of stream %s updated", vertical.Name, streamID)
		return l
	}

	v := vertical
	s.Verticals[vertical.Name] = &v
	utils.LogVerbose("Vertical %s added to stream %s", vertical.Name, streamID)
	return l
}

// FindLastVertical returns the most recently modified regular file of the
// verticals directory. ok is false when the directory holds no file.
func (l *Library) FindLastVertical() (name string, ok bool, err error) {
	dir := l.lib.VerticalsOptions.Path
	if dir == "" {
		return "", false, &utils.ValidationError{Field: "verticalsOptions.path", Message: "verticals path is not set"}
	}
	name, err = utils.LatestFile(dir, nil)
	if errors.Is(err, utils.ErrNoMatchingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnuploadedVerticals lists every vertical not yet uploaded, ordered by
// stream id then vertical name. It does not modify the library.
func (l *Library) UnuploadedVerticals() []VerticalRef {
	var refs []VerticalRef
	for _, streamID := range sortedKeys(l.lib.Streams) {
		s := l.lib.Streams[streamID]
		for _, name := range sortedKeys(s.Verticals) {
			if v := s.Verticals[name]; !v.Uploaded {
				refs = append(refs, VerticalRef{StreamID: streamID, Vertical: v})
			}
		}
	}
	return refs
}

// BackfillVerticalCategories copies each stream category onto its
// unuploaded verticals and returns how many were changed.
func (l *Library) BackfillVerticalCategories() int {
	changed := 0
	for _, s := range l.lib.Streams {
		for _, v := range s.Verticals {
			if !v.Uploaded && v.CategoryID != s.CategoryID {
				v.CategoryID = s.CategoryID
				changed++
			}
		}
	}
	return changed
}

// MarkUploaded records the platform id of an uploaded vertical
func (l *Library) MarkUploaded(streamID, name, videoID string) error {
	s, ok := l.lib.Streams[streamID]
	if !ok {
		return fmt.Errorf("stream %s: %w", streamID, ErrNotFound)
	}
	v, ok := s.Verticals[name]
	if !ok {
		return fmt.Errorf("vertical %s of stream %s: %w", name, streamID, ErrNotFound)
	}
	v.Uploaded = true
	v.ID = videoID
	return nil
}

// SetPageDock sets the dock redirect page path
func (l *Library) SetPageDock(path string) *Library {
	l.lib.PageDock = path
	return l
}

// SetVerticalsPath sets the directory scanned for verticals
func (l *Library) SetVerticalsPath(path string) *Library {
	l.lib.VerticalsOptions.Path = path
	return l
}

// SetThumbPath sets the default thumbnail directory
func (l *Library) SetThumbPath(path string) *Library {
	l.lib.ThumbPath = path
	return l
}

// SetTimestampsPath sets the file holding the chapter timestamps
func (l *Library) SetTimestampsPath(path string) *Library {
	l.lib.TimestampsPath = path
	return l
}

// SetWatchURL sets the prefix of links back to a stream
func (l *Library) SetWatchURL(url string) *Library {
	l.lib.WatchURL = url
	return l
}

// OptionsUpdate holds the verticals options to change; nil fields are kept
type OptionsUpdate struct {
	Path           *string
	Visibility     *Visibility
	AddLinkToVideo *bool
	LinkOffset     *int
}

// UpdateVerticalsOptions applies the set fields of u and returns the result
func (l *Library) UpdateVerticalsOptions(u OptionsUpdate) VerticalsOptions {
	opts := &l.lib.VerticalsOptions
	if u.Path != nil {
		opts.Path = *u.Path
	}
	if u.Visibility != nil {
		opts.Visibility = *u.Visibility
	}
	if u.AddLinkToVideo != nil {
		opts.AddLinkToVideo = *u.AddLinkToVideo
	}
	if u.LinkOffset != nil {
		opts.OffsetLinkToVideoInSeconds = *u.LinkOffset
	}
	return *opts
}
