package actions

import (
	"context"
	"fmt"

	youtubesvc "github.com/gnzdotmx/ytmanager/internal/services/youtube"
	"github.com/gnzdotmx/ytmanager/internal/settings"
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"google.golang.org/api/youtube/v3"
)

// Result is returned by actions with no other payload
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// InfoResult is the payload of the info action
type InfoResult struct {
	LiveBroadcast *youtube.LiveBroadcast `json:"liveBroadcast"`
	Video         *youtube.Video         `json:"video,omitempty"`
}

// currentBroadcast returns the live broadcast, failing when there is none
func currentBroadcast(ctx context.Context, env *Env) (*youtube.LiveBroadcast, error) {
	broadcast, err := env.Client.LiveBroadcast(ctx)
	if err != nil {
		return nil, err
	}
	if broadcast == nil || broadcast.Id == "" {
		return nil, ErrNoBroadcast
	}
	return broadcast, nil
}

func runInfo(ctx context.Context, env *Env, _ map[string]any) (any, error) {
	broadcast, err := env.Client.LiveBroadcast(ctx)
	if err != nil {
		return nil, err
	}

	result := InfoResult{LiveBroadcast: broadcast}
	if broadcast.Id != "" {
		if result.Video, err = env.Client.Video(ctx, broadcast.Id); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type titleParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func runSetTitle(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params titleParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	broadcast, err := currentBroadcast(ctx, env)
	if err != nil {
		return nil, err
	}
	if err := env.Client.SetBroadcastTitle(ctx, broadcast, params.Title); err != nil {
		return nil, err
	}
	return Result{Success: true}, nil
}

func runSetLiveStream(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params titleParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	broadcast, err := env.Client.LiveBroadcast(ctx)
	if err != nil {
		return nil, err
	}

	changed, err := env.Client.SetBroadcastInfo(ctx, broadcast, params.Title, params.Description)
	if err != nil {
		return nil, err
	}
	if !changed {
		return Result{Success: true, Message: "live stream left unchanged"}, nil
	}
	return Result{Success: true}, nil
}

type currentStreamParams struct {
	Playlist                   []string `json:"playlist"`
	Language                   string   `json:"language"`
	LanguageSub                string   `json:"language-sub"`
	Tag                        []string `json:"tag"`
	Category                   string   `json:"category"`
	Subject                    string   `json:"subject"`
	SubjectBeforeTitle         bool     `json:"subject-before-title"`
	SubjectAfterTitle          bool     `json:"subject-after-title"`
	SubjectSeparator           string   `json:"subject-separator"`
	SubjectAddToTags           bool     `json:"subject-add-to-tags"`
	TagsAddDescription         bool     `json:"tags-add-description"`
	TagsDescriptionWithHashTag bool     `json:"tags-description-with-hashtag"`
	TagsDescriptionNewLine     bool     `json:"tags-description-new-line"`
	TagsDescriptionWhiteSpace  string   `json:"tags-description-white-space"`
	Title                      *string  `json:"title"`
	Description                *string  `json:"description"`
}

func (p currentStreamParams) settings() settings.CurrentStreamSettings {
	return settings.CurrentStreamSettings{
		Title:                      p.Title,
		Description:                p.Description,
		Language:                   p.Language,
		LanguageSub:                p.LanguageSub,
		Playlists:                  p.Playlist,
		Tags:                       p.Tag,
		Category:                   p.Category,
		Subject:                    p.Subject,
		SubjectAddToTags:           p.SubjectAddToTags,
		SubjectBeforeTitle:         p.SubjectBeforeTitle,
		SubjectAfterTitle:          p.SubjectAfterTitle,
		SubjectSeparator:           p.SubjectSeparator,
		TagsAddDescription:         p.TagsAddDescription,
		TagsDescriptionWithHashTag: p.TagsDescriptionWithHashTag,
		TagsDescriptionNewLine:     p.TagsDescriptionNewLine,
		TagsDescriptionWhiteSpace:  p.TagsDescriptionWhiteSpace,
	}
}

func runSetCurrentStream(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params currentStreamParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	broadcast, err := currentBroadcast(ctx, env)
	if err != nil {
		return nil, err
	}
	video, err := env.Client.Video(ctx, broadcast.Id)
	if err != nil {
		return nil, err
	}

	if _, err := SetCurrentStream(ctx, env.Client, env.config().RegionCode, video, params.settings()); err != nil {
		return nil, err
	}
	return Result{Success: true}, nil
}

// SetCurrentStream resolves the category name and the playlist names
// (creating missing playlists), computes the final settings, updates the
// video and adds it to every playlist not holding it yet. It returns the
// computed settings.
func SetCurrentStream(ctx context.Context, client youtubesvc.Client, regionCode string, video *youtube.Video, css settings.CurrentStreamSettings) (settings.CurrentStreamSettings, error) {
	utils.LogDebug("Raw current stream parameters: %+v", css)

	if css.Category != "" {
		id, err := client.CategoryID(ctx, css.Category, regionCode)
		if err != nil {
			return css, err
		}
		css.Category = id
	}

	if css.Playlists != nil {
		ids, err := client.PlaylistIDs(ctx, css.Playlists, true)
		if err != nil {
			return css, err
		}
		css.Playlists = ids
	}

	computed := settings.Compute(css)

	if _, err := client.UpdateVideo(ctx, video, computed); err != nil {
		return computed, err
	}

	if video.Id != "" {
		for _, playlistID := range computed.Playlists {
			if _, err := client.AddVideoToPlaylist(ctx, playlistID, video.Id); err != nil {
				return computed, fmt.Errorf("playlist %s: %w", playlistID, err)
			}
		}
	}
	return computed, nil
}
