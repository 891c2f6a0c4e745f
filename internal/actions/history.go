package actions

import (
	"context"

	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
)

// RecordHistory stores the current stream in the library. Without a live
// broadcast there is nothing to record and no error.
func RecordHistory(ctx context.Context, env *Env) error {
	lib, err := env.library()
	if err != nil {
		return err
	}

	broadcast, err := env.Client.LiveBroadcast(ctx)
	if err != nil {
		return err
	}
	if broadcast.Id == "" {
		utils.LogVerbose("No live broadcast, history not recorded")
		return nil
	}

	video, err := env.Client.Video(ctx, broadcast.Id)
	if err != nil {
		return err
	}

	stream := streamlib.StreamFromVideo(video, broadcast)
	stream.ID = broadcast.Id
	lib.AddStream(stream)
	return lib.Save()
}
