package actions

import (
	"context"
)

type playlistsParams struct {
	Playlist []string `json:"playlist"`
}

type playlistParams struct {
	Playlist string `json:"playlist"`
}

func runGetPlaylists(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params playlistsParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}
	return env.Client.Playlists(ctx, params.Playlist)
}

// runGetPlaylist returns the id of the first playlist with the given
// title, or nothing when there is none.
func runGetPlaylist(ctx context.Context, env *Env, raw map[string]any) (any, error) {
	var params playlistParams
	if err := ParseParams(raw, &params); err != nil {
		return nil, err
	}

	playlists, err := env.Client.Playlists(ctx, []string{params.Playlist})
	if err != nil {
		return nil, err
	}
	if len(playlists) == 0 {
		return nil, nil
	}
	return playlists[0].ID, nil
}
