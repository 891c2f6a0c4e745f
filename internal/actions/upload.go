package actions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	youtubesvc "github.com/gnzdotmx/ytmanager/internal/services/youtube"
	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
)

const (
	// DefaultVerticalCategory is used for verticals whose stream has no category
	DefaultVerticalCategory = "20"
	shortsHashtag           = "#shorts"
)

// Uploader publishes a local video file
type Uploader interface {
	UploadVideo(ctx context.Context, req youtubesvc.UploadRequest) (string, error)
}

// UploadedVertical identifies a vertical published during a batch
type UploadedVertical struct {
	StreamID string `json:"streamId"`
	Name     string `json:"name"`
	VideoID  string `json:"videoId"`
}

// UploadFailure identifies a vertical that could not be published
type UploadFailure struct {
	StreamID string `json:"streamId"`
	Name     string `json:"name"`
	Error    string `json:"error"`
}

// UploadReport summarizes an upload batch
type UploadReport struct {
	UploadedCount int                `json:"uploadedCount"`
	FailedCount   int                `json:"failedCount"`
	Uploaded      []UploadedVertical `json:"uploaded"`
	Failed        []UploadFailure    `json:"failed"`
	SaveErrors    []string           `json:"saveErrors,omitempty"`
}

// VideoLink builds the link to a stream at the given second
func VideoLink(watchURL, streamID string, seconds int) string {
	return fmt.Sprintf("%s%s&t=%ds", watchURL, streamID, max(seconds, 0))
}

// shortsDescription appends the #shorts hashtag unless already present in any case
func shortsDescription(description string) string {
	if strings.Contains(strings.ToLower(description), shortsHashtag) {
		return description
	}
	return description + " " + shortsHashtag
}

func uploadRequest(lib *streamlib.StreamLib, ref streamlib.VerticalRef) youtubesvc.UploadRequest {
	opts := lib.VerticalsOptions
	v := ref.Vertical

	description := v.Description
	if opts.AddLinkToVideo {
		description += "\n" + VideoLink(lib.WatchURL, ref.StreamID, v.StartTime+opts.OffsetLinkToVideoInSeconds)
	}

	category := v.CategoryID
	if category == "" {
		category = DefaultVerticalCategory
	}

	return youtubesvc.UploadRequest{
		Path:        filepath.Join(opts.Path, v.Name),
		Title:       v.Title,
		Description: shortsDescription(description),
		Tags:        v.Tags,
		CategoryID:  category,
		Privacy:     string(opts.Visibility),
	}
}

// UploadVerticals publishes every vertical not uploaded yet, one at a time.
// A failed upload is logged and counted without stopping the batch. The
// library is saved after each successful upload.
func UploadVerticals(ctx context.Context, uploader Uploader, lib *streamlib.Library) UploadReport {
	report := UploadReport{
		Uploaded: []UploadedVertical{},
		Failed:   []UploadFailure{},
	}

	if n := lib.BackfillVerticalCategories(); n > 0 {
		utils.LogVerbose("Copied stream category onto %d verticals", n)
	}

	refs := lib.UnuploadedVerticals()
	utils.LogInfo("%d verticals to upload", len(refs))

	for _, ref := range refs {
		name := ref.Vertical.Name
		fail := func(err error) {
			utils.LogError("Error uploading vertical %s: %v", name, err)
			report.Failed = append(report.Failed, UploadFailure{StreamID: ref.StreamID, Name: name, Error: err.Error()})
			report.FailedCount++
		}

		if err := ctx.Err(); err != nil {
			fail(err)
			continue
		}

		videoID, err := uploader.UploadVideo(ctx, uploadRequest(lib.Lib(), ref))
		if err != nil {
			fail(err)
			continue
		}
		if videoID == "" {
			fail(errors.New("upload returned no video id"))
			continue
		}

		if err := lib.MarkUploaded(ref.StreamID, name, videoID); err != nil {
			fail(err)
			continue
		}
		report.Uploaded = append(report.Uploaded, UploadedVertical{StreamID: ref.StreamID, Name: name, VideoID: videoID})
		report.UploadedCount++

		utils.Logger().Info().
			Str("stream", ref.StreamID).
			Str("vertical", name).
			Str("videoId", videoID).
			Msg("Uploaded vertical")

		if err := lib.Save(); err != nil {
			utils.LogError("Failed to save library after uploading %s: %v", name, err)
			report.SaveErrors = append(report.SaveErrors, err.Error())
		}
	}

	return report
}
