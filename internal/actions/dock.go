package actions

import (
	"context"
	"fmt"

	"github.com/gnzdotmx/ytmanager/internal/utils"
)

const (
	// DefaultRefreshTime is the dock page refresh delay in seconds
	DefaultRefreshTime = 15
	liveChatURL        = "https://studio.youtube.com/live_chat?is_popout=1&v="
)

type dockParams struct {
	PathFile        string `json:"path-file"`
	WaitingRedirect bool   `json:"waiting-redirect"`
	RefreshTime     int    `json:"refresh-time"`
}

// DockPage renders the html page a streaming software dock points to. It
// redirects to the live chat of videoID, or only refreshes itself when
// waiting is set.
func DockPage(videoID string, refresh int, waiting bool) string {
	if refresh <= 0 {
		refresh = DefaultRefreshTime
	}
	content := fmt.Sprint(refresh)
	if !waiting {
		content += ";URL=" + liveChatURL + videoID
	}
	return `<html><head><meta http-equiv="refresh" content="` + content + `"></head></html>`
}

func runUpdateDockRedirect(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params dockParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	if params.PathFile == "" && env.Library != nil {
		params.PathFile = env.Library.Lib().PageDock
	}
	if params.PathFile == "" {
		return Result{Success: false, Message: "No path file specified"}, nil
	}

	broadcast, err := currentBroadcast(ctx, env)
	if err != nil {
		return nil, err
	}

	page := DockPage(broadcast.Id, params.RefreshTime, params.WaitingRedirect)
	if err := utils.WriteTextFile(params.PathFile, page); err != nil {
		return nil, err
	}

	utils.LogVerbose("Dock page written to %s", params.PathFile)
	return Result{Success: true}, nil
}
