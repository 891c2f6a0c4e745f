package actions

import (
	"context"
	"fmt"

	"github.com/gnzdotmx/ytmanager/internal/settings"
	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"google.golang.org/api/youtube/v3"
)

func runVerticalSaved(ctx context.Context, env *Env, _ map[string]any) (any, error) {
	lib, err := env.library()
	if err != nil {
		return nil, err
	}
	broadcast, err := currentBroadcast(ctx, env)
	if err != nil {
		return nil, err
	}

	name, ok, err := lib.FindLastVertical()
	if err != nil {
		return nil, err
	}
	if !ok {
		utils.LogInfo("No vertical found in %s", lib.Lib().VerticalsOptions.Path)
		return nil, nil
	}

	video, err := env.Client.Video(ctx, broadcast.Id)
	if err != nil {
		return nil, err
	}

	info := streamlib.StreamFromVideo(video, broadcast)
	info.ID = broadcast.Id
	lib.AddStream(info)

	stream, _ := lib.Stream(broadcast.Id)
	vertical, err := streamlib.NewVertical(stream, name)
	if err != nil {
		return nil, err
	}
	lib.AddVerticalToStream(stream.ID, vertical)
	if err := lib.Save(); err != nil {
		return nil, err
	}

	utils.LogSuccess("Vertical %s linked to stream %s", name, stream.ID)
	return stream.Verticals[name], nil
}

func runVerticalInfo(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params titleParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	lib, err := env.library()
	if err != nil {
		return nil, err
	}
	broadcast, err := currentBroadcast(ctx, env)
	if err != nil {
		return nil, err
	}

	stream, ok := lib.Stream(broadcast.Id)
	if !ok {
		return nil, fmt.Errorf("stream %s: %w", broadcast.Id, streamlib.ErrNotFound)
	}
	name, ok := streamlib.FirstVerticalName(stream)
	if !ok {
		return nil, fmt.Errorf("vertical of stream %s: %w", stream.ID, streamlib.ErrNotFound)
	}

	vertical := stream.Verticals[name]
	if params.Title != "" {
		vertical.Title = params.Title
	}
	if params.Description != "" {
		vertical.Description = params.Description
	}

	if err := lib.Save(); err != nil {
		return nil, err
	}
	return vertical, nil
}

func runVerticalsUpload(ctx context.Context, env *Env, _ map[string]any) (any, error) {
	lib, err := env.library()
	if err != nil {
		return nil, err
	}

	report := UploadVerticals(ctx, env.Client, lib)
	if err := lib.Save(); err != nil {
		return nil, err
	}
	return report, nil
}

type streamSettingsParams struct {
	VerticalPath       string `json:"vertical-path"`
	VerticalVisibility string `json:"vertical-visibility"`
	AddLinkToVideo     *bool  `json:"vertical-add-link-to-video"`
	LinkOffset         *int   `json:"vertical-link-offset"`
	TimestampsPath     string `json:"timestamps-path"`
	ThumbPath          string `json:"thumb-path"`
	PageDock           string `json:"page-dock"`
	WatchURL           string `json:"watch-url"`
}

func runStreamSettings(_ context.Context, env *Env, raw map[string]any) (any, error) {
	var params streamSettingsParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	lib, err := env.library()
	if err != nil {
		return nil, err
	}

	var update streamlib.OptionsUpdate
	if params.VerticalPath != "" {
		update.Path = &params.VerticalPath
	}
	if params.VerticalVisibility != "" {
		visibility, err := streamlib.ParseVisibility(params.VerticalVisibility)
		if err != nil {
			return nil, &utils.ValidationError{Field: "vertical-visibility", Message: err.Error(), Err: err}
		}
		update.Visibility = &visibility
	}
	update.AddLinkToVideo = params.AddLinkToVideo
	update.LinkOffset = params.LinkOffset

	options := lib.UpdateVerticalsOptions(update)

	if params.TimestampsPath != "" {
		lib.SetTimestampsPath(params.TimestampsPath)
	}
	if params.ThumbPath != "" {
		lib.SetThumbPath(params.ThumbPath)
	}
	if params.PageDock != "" {
		lib.SetPageDock(params.PageDock)
	}
	if params.WatchURL != "" {
		lib.SetWatchURL(params.WatchURL)
	}

	if err := lib.Save(); err != nil {
		return nil, err
	}
	return options, nil
}

type timestampsParams struct {
	TimestampTitle string `json:"timestamp-title"`
}

func videoDescription(video *youtube.Video) string {
	if video == nil || video.Snippet == nil {
		return ""
	}
	return video.Snippet.Description
}

func runSetTimestamps(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params timestampsParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	lib, err := env.library()
	if err != nil {
		return nil, err
	}
	path := lib.Lib().TimestampsPath
	if path == "" {
		return nil, &utils.ValidationError{Field: "timestampsPath", Message: "timestamps path is not set"}
	}

	broadcast, err := currentBroadcast(ctx, env)
	if err != nil {
		return nil, err
	}

	timestamps, err := utils.ReadTextFile(path)
	if err != nil {
		return nil, err
	}
	lib.AddTimestampsToStream(broadcast.Id, timestamps)
	if err := lib.Save(); err != nil {
		return nil, err
	}
	if stream, ok := lib.Stream(broadcast.Id); ok {
		timestamps = stream.Timestamps
	}

	video, err := env.Client.Video(ctx, broadcast.Id)
	if err != nil {
		return nil, err
	}

	description, changed := settings.AppendTimestamps(videoDescription(video), timestamps, params.TimestampTitle)
	if !changed {
		return Result{Success: true, Message: "timestamps already in description"}, nil
	}

	css := settings.CurrentStreamSettings{
		Description:     settings.String(description),
		Timestamps:      timestamps,
		TimestampsTitle: params.TimestampTitle,
	}
	if _, err := env.Client.UpdateVideo(ctx, video, css); err != nil {
		return nil, err
	}
	return Result{Success: true}, nil
}
