package actions

import (
	"fmt"

	"github.com/gnzdotmx/ytmanager/internal/streamlib"
)

func titleParam(required bool) ParamDef {
	return ParamDef{Name: "title", Type: TypeString, Description: "Title to set", Required: required}
}

var descriptionParam = ParamDef{Name: "description", Type: TypeString, Description: "Description to set"}

// Builtins returns every action of the tool in display order
func Builtins() []Action {
	return []Action{
		&action{
			def: Definition{
				Name:        "info",
				Summary:     "Get current stream info",
				Description: "Will return broadcast and video info",
				API:         &Route{Method: "GET", Path: "/stream/info"},
			},
			run: runInfo,
		},
		&action{
			def: Definition{
				Name:        "set-title",
				Summary:     "Set stream title",
				Description: "Set your stream title",
				Params:      []ParamDef{titleParam(true)},
				API:         &Route{Method: "PUT", Path: "/stream/title"},
			},
			run: runSetTitle,
		},
		&action{
			def: Definition{
				Name:        "set-live-stream",
				Summary:     "Set live stream info",
				Description: "Set your live stream title and description",
				Params:      []ParamDef{titleParam(false), descriptionParam},
				API:         &Route{Method: "PUT", Path: "/stream/live"},
			},
			run: runSetLiveStream,
		},
		&action{
			def: Definition{
				Name:        "get-playlists",
				Summary:     "Get playlists",
				Description: "Get playlists by name",
				Params: []ParamDef{
					{Name: "playlist", Type: TypeStringList, Description: "Playlist name", Required: true},
				},
				API: &Route{Method: "GET", Path: "/playlists"},
			},
			run: runGetPlaylists,
		},
		&action{
			def: Definition{
				Name:        "get-playlist",
				Summary:     "Get playlist id",
				Description: "Get playlist id by name",
				Params: []ParamDef{
					{Name: "playlist", Type: TypeString, Description: "Playlist name", Required: true},
				},
				API: &Route{Method: "GET", Path: "/playlist"},
			},
			run: runGetPlaylist,
		},
		&action{
			def: Definition{
				Name:        "vertical-saved",
				Summary:     "Link the last saved vertical to the current stream",
				Description: "Look for the newest vertical saved in the verticals folder and link it to the current stream",
				API:         &Route{Method: "GET", Path: "/verticals/saved"},
			},
			run: runVerticalSaved,
		},
		&action{
			def: Definition{
				Name:        "vertical-info",
				Summary:     "Update the vertical linked to the current stream",
				Description: "Update title and description of the vertical linked to the current stream",
				Params:      []ParamDef{titleParam(false), descriptionParam},
				API:         &Route{Method: "PUT", Path: "/verticals/info"},
			},
			run: runVerticalInfo,
		},
		&action{
			def: Definition{
				Name:        "verticals-upload",
				Summary:     "Upload your verticals",
				Description: "Upload every vertical of the library not uploaded yet",
				API:         &Route{Method: "POST", Path: "/verticals/upload"},
			},
			run: runVerticalsUpload,
		},
		&action{
			def: Definition{
				Name:        "stream-settings",
				Summary:     "Change stream settings",
				Description: "Change the settings stored in the stream library",
				Params: []ParamDef{
					{Name: "vertical-path", Type: TypeString, Description: "Change the lookup path for verticals"},
					{Name: "vertical-visibility", Type: TypeChoice, Description: "Set the visibility of the vertical", Alternatives: streamlib.Visibilities, EnvVar: "VERTICAL_VISIBILITY"},
					{Name: "vertical-add-link-to-video", Type: TypeBoolean, Description: "Add a video link to the vertical", EnvVar: "ADD_LINK_TO_VIDEO"},
					{Name: "vertical-link-offset", Type: TypeInteger, Description: "Offset of the video link in the vertical, in seconds", EnvVar: "VERTICAL_LINK_OFFSET"},
					{Name: "timestamps-path", Type: TypeString, Description: "File holding the stream timestamps"},
					{Name: "thumb-path", Type: TypeString, Description: "Default thumbnail directory"},
					{Name: "page-dock", Type: TypeString, Description: "Default dock redirect page"},
					{Name: "watch-url", Type: TypeString, Description: "Prefix of the links to a stream"},
				},
				API:     &Route{Method: "PUT", Path: "/settings"},
				Offline: true,
			},
			run: runStreamSettings,
		},
		&action{
			def: Definition{
				Name:        "set-current-stream",
				Summary:     "Set current stream",
				Description: "Set parameters to current stream",
				Params: []ParamDef{
					{Name: "playlist", Type: TypeStringList, Description: "Playlist name", EnvVar: "PLAYLIST"},
					{Name: "language", Type: TypeString, Description: "Language name", EnvVar: "LG"},
					{Name: "language-sub", Type: TypeString, Description: "Language subtitle name", EnvVar: "LGSUB"},
					{Name: "tag", Type: TypeStringList, Description: "Tag", EnvVar: "TAG"},
					{Name: "category", Type: TypeString, Description: "Category name", EnvVar: "CATEGORY"},
					{Name: "subject", Type: TypeString, Description: "Subject to use at different place", EnvVar: "SUBJECT"},
					{Name: "subject-before-title", Type: TypeBoolean, Description: "Add subject before title", EnvVar: "SUBJECT_BEFORE_TITLE"},
					{Name: "subject-after-title", Type: TypeBoolean, Description: "Add subject after title", EnvVar: "SUBJECT_AFTER_TITLE"},
					{Name: "subject-separator", Type: TypeString, Description: "Subject separator", EnvVar: "SUBJECT_SEPARATOR"},
					{Name: "subject-add-to-tags", Type: TypeBoolean, Description: "Add subject to tags", EnvVar: "SUBJECT_ADD_TAGS"},
					{Name: "tags-add-description", Type: TypeBoolean, Description: "Add tags to description", EnvVar: "TAGS_ADD_DESCRIPTION"},
					{Name: "tags-description-with-hashtag", Type: TypeBoolean, Description: "Add # to tags in description", EnvVar: "TAGS_DESCRIPTION_WITH_HASHTAG"},
					{Name: "tags-description-new-line", Type: TypeBoolean, Description: "Tags in description on new line", EnvVar: "TAGS_DESCRIPTION_NEW_LINE"},
					{Name: "tags-description-white-space", Type: TypeString, Description: "Tags space replacement in description", EnvVar: "TAGS_DESCRIPTION_WHITE_SPACE"},
					{Name: "title", Type: TypeString, Description: "Title to set", EnvVar: "TITLE"},
					{Name: "description", Type: TypeString, Description: "Description to set", EnvVar: "DESCRIPTION"},
				},
				API: &Route{Method: "PUT", Path: "/stream/current"},
			},
			run: runSetCurrentStream,
		},
		&action{
			def: Definition{
				Name:        "set-timestamps",
				Summary:     "Set timestamps",
				Description: "Store the timestamps file on the current stream and append it to the video description",
				Params: []ParamDef{
					{Name: "timestamp-title", Type: TypeString, Description: "Timestamps heading in description", EnvVar: "TIMESTAMP_TITLE"},
				},
				API: &Route{Method: "PUT", Path: "/stream/timestamps"},
			},
			run: runSetTimestamps,
		},
		&action{
			def: Definition{
				Name:        "set-current-thumbnail",
				Summary:     "Set current thumbnail",
				Description: "Set thumbnail to current stream",
				Params: []ParamDef{
					{Name: "path-file", Type: TypeString, Description: "File path of the thumbnail", EnvVar: "PATH_FILE"},
					{Name: "path-dir", Type: TypeString, Description: "Dir path of the thumbnail, the newest image is used", EnvVar: "PATH_DIR"},
					{Name: "auto-recompress-on-limit", Type: TypeBoolean, Description: "Recompress the image when over the size limit", EnvVar: "AUTO_RECOMPRESS_ON_LIMIT"},
				},
				API: &Route{Method: "PUT", Path: "/stream/thumbnail"},
			},
			run: runSetCurrentThumbnail,
		},
		&action{
			def: Definition{
				Name:        "update-dock-redirect",
				Summary:     "Update html redirect page dock to youtube chat",
				Description: "Write an html page redirecting to the live chat of the current stream",
				Params: []ParamDef{
					{Name: "path-file", Type: TypeString, Description: "File path of the page dock", EnvVar: "PATH_FILE"},
					{Name: "waiting-redirect", Type: TypeBoolean, Description: "Generate a html page redirecting to itself", EnvVar: "WAITING_REDIRECT"},
					{Name: "refresh-time", Type: TypeInteger, Description: "Refresh page after X seconds", EnvVar: "REFRESH_TIME", Default: DefaultRefreshTime},
				},
				API: &Route{Method: "PUT", Path: "/dock-redirect"},
			},
			run: runUpdateDockRedirect,
		},
	}
}

// DefaultRegistry returns a registry holding the builtin actions
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, a := range Builtins() {
		if err := r.Register(a); err != nil {
			panic(fmt.Sprintf("builtin action: %v", err))
		}
	}
	return r
}
