package actions

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/gnzdotmx/ytmanager/internal/utils"
)

type thumbnailParams struct {
	PathFile       string `json:"path-file"`
	PathDir        string `json:"path-dir"`
	AutoRecompress bool   `json:"auto-recompress-on-limit"`
}

// LoadThumbnail reads the thumbnail at file, or the newest image of dir,
// recompressing it when it exceeds limit and recompress is set. An
// oversized image is returned unchanged when recompress is not set.
func LoadThumbnail(file, dir string, limit int, recompress bool) ([]byte, error) {
	path, err := utils.ResolveFile(file, dir, utils.ImageExtensions)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateFileExtension(path, utils.ImageExtensions); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thumbnail: %w", err)
	}

	if len(data) <= limit {
		return data, nil
	}

	utils.LogWarning("Thumbnail size %d is bigger than the %d bytes API limit", len(data), limit)
	if !recompress {
		utils.LogInfo("Auto recompression disabled")
		return data, nil
	}

	data, err = utils.RecompressImage(data, limit)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Recompressed thumbnail to %d bytes", len(data))
	return data, nil
}

func runSetCurrentThumbnail(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params thumbnailParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	if params.PathFile == "" && params.PathDir == "" && env.Library != nil {
		params.PathDir = env.Library.Lib().ThumbPath
	}
	if params.PathFile == "" && params.PathDir == "" {
		return Result{Success: false, Message: "No file or dir specified"}, nil
	}

	broadcast, err := currentBroadcast(ctx, env)
	if err != nil {
		return nil, err
	}

	data, err := LoadThumbnail(params.PathFile, params.PathDir, env.config().ThumbnailSizeLimit, params.AutoRecompress)
	if err != nil {
		return nil, err
	}

	if err := env.Client.SetThumbnail(ctx, broadcast.Id, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return Result{Success: true}, nil
}
