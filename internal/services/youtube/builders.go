package youtube

import (
	"slices"
	"strings"

	"github.com/gnzdotmx/ytmanager/internal/settings"
	"google.golang.org/api/youtube/v3"
)

// MatureTag marks a video as age restricted when present in the tags
const MatureTag = "mature"

// VideoUpdate is a videos.update request body with its part list
type VideoUpdate struct {
	Parts []string
	Video *youtube.Video
}

// BuildVideoUpdate derives the videos.update request from computed
// settings. css.Category must already hold a category id. It returns false
// when the settings do not touch any updatable field.
func BuildVideoUpdate(video *youtube.Video, css settings.CurrentStreamSettings) (VideoUpdate, bool) {
	title := settings.Value(css.Title)
	description := settings.Value(css.Description)

	if css.Category == "" && css.Language == "" && css.LanguageSub == "" &&
		css.Playlists == nil && css.Tags == nil && title == "" && description == "" {
		return VideoUpdate{}, false
	}

	var snippet youtube.VideoSnippet
	if video.Snippet != nil {
		snippet = *video.Snippet
	}
	// read-only fields
	snippet.Thumbnails = nil
	snippet.Localized = nil
	snippet.PublishedAt = ""
	snippet.ChannelId = ""
	snippet.ChannelTitle = ""
	snippet.LiveBroadcastContent = ""

	if title != "" {
		snippet.Title = title
	}
	if description != "" {
		snippet.Description = description
	}
	if css.Language != "" {
		snippet.DefaultAudioLanguage = css.Language
	}
	if css.LanguageSub != "" {
		snippet.DefaultLanguage = css.LanguageSub
	}
	if css.Category != "" {
		snippet.CategoryId = css.Category
	}
	if css.Tags != nil {
		snippet.Tags = slices.Clone(css.Tags)
		if len(css.Tags) == 0 {
			snippet.ForceSendFields = append(snippet.ForceSendFields, "Tags")
		}
	}

	update := VideoUpdate{
		Parts: []string{"id", "snippet"},
		Video: &youtube.Video{Id: video.Id, Snippet: &snippet},
	}

	if hasMatureTag(css.Tags) {
		update.Parts = append(update.Parts, "contentDetails")
		update.Video.ContentDetails = &youtube.VideoContentDetails{
			ContentRating: &youtube.ContentRating{YtRating: "ytAgeRestricted"},
		}
	}

	return update, true
}

func hasMatureTag(tags []string) bool {
	return slices.ContainsFunc(tags, func(tag string) bool {
		return strings.EqualFold(tag, MatureTag)
	})
}

// BroadcastUpdate is a liveBroadcasts.update request body with its part list
type BroadcastUpdate struct {
	Parts     []string
	Broadcast *youtube.LiveBroadcast
}

func broadcastSnippet(b *youtube.LiveBroadcast) youtube.LiveBroadcastSnippet {
	if b.Snippet == nil {
		return youtube.LiveBroadcastSnippet{}
	}
	return *b.Snippet
}

func broadcastPrivacy(b *youtube.LiveBroadcast) string {
	if b.Status == nil {
		return ""
	}
	return b.Status.PrivacyStatus
}

// BuildBroadcastTitleUpdate renames a broadcast. The update replaces the
// whole snippet, status and contentDetails parts, so the scheduled start,
// privacy and monitor stream settings are carried over.
func BuildBroadcastTitleUpdate(b *youtube.LiveBroadcast, title string) BroadcastUpdate {
	current := broadcastSnippet(b)

	monitor := &youtube.MonitorStreamInfo{
		ForceSendFields: []string{"EnableMonitorStream", "BroadcastStreamDelayMs"},
	}
	if b.ContentDetails != nil && b.ContentDetails.MonitorStream != nil {
		monitor.EnableMonitorStream = b.ContentDetails.MonitorStream.EnableMonitorStream
		monitor.BroadcastStreamDelayMs = b.ContentDetails.MonitorStream.BroadcastStreamDelayMs
	}

	return BroadcastUpdate{
		Parts: []string{"id", "snippet", "status", "contentDetails"},
		Broadcast: &youtube.LiveBroadcast{
			Id: b.Id,
			Snippet: &youtube.LiveBroadcastSnippet{
				Title:              title,
				ScheduledStartTime: current.ScheduledStartTime,
			},
			Status:         &youtube.LiveBroadcastStatus{PrivacyStatus: broadcastPrivacy(b)},
			ContentDetails: &youtube.LiveBroadcastContentDetails{MonitorStream: monitor},
		},
	}
}

// BuildBroadcastInfoUpdate sets the title and description of a broadcast,
// keeping the current value of any empty argument. It returns false when
// both are empty or the broadcast has no id.
func BuildBroadcastInfoUpdate(b *youtube.LiveBroadcast, title, description string) (BroadcastUpdate, bool) {
	if b == nil || b.Id == "" || (title == "" && description == "") {
		return BroadcastUpdate{}, false
	}

	current := broadcastSnippet(b)
	snippet := &youtube.LiveBroadcastSnippet{
		Title:              current.Title,
		Description:        current.Description,
		ScheduledStartTime: current.ScheduledStartTime,
	}
	if title != "" {
		snippet.Title = title
	}
	if description != "" {
		snippet.Description = description
	}

	return BroadcastUpdate{
		Parts: []string{"id", "snippet", "status"},
		Broadcast: &youtube.LiveBroadcast{
			Id:      b.Id,
			Snippet: snippet,
			Status:  &youtube.LiveBroadcastStatus{PrivacyStatus: broadcastPrivacy(b)},
		},
	}, true
}
