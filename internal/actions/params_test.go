package actions

import (
	"testing"

	"github.com/gnzdotmx/ytmanager/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"title":                         "title",
		"path-file":                     "pathFile",
		"tags-description-with-hashtag": "tagsDescriptionWithHashtag",
		"vertical-add-link-to-video":    "verticalAddLinkToVideo",
	}
	for in, want := range tests {
		assert.Equal(t, want, CamelCase(in), in)
	}
}

func TestNormalize(t *testing.T) {
	defs := []ParamDef{
		{Name: "title", Type: TypeString},
		{Name: "count", Type: TypeInteger, Default: 15},
		{Name: "flag", Type: TypeBoolean},
		{Name: "tag", Type: TypeStringList},
		{Name: "visibility", Type: TypeChoice, Alternatives: []string{"public", "private"}},
	}

	tests := []struct {
		name string
		raw  map[string]any
		want map[string]any
	}{
		{
			name: "defaults apply when absent",
			raw:  map[string]any{},
			want: map[string]any{"count": 15},
		},
		{
			name: "nil counts as absent",
			raw:  map[string]any{"title": nil, "count": nil},
			want: map[string]any{"count": 15},
		},
		{
			name: "query strings are converted",
			raw:  map[string]any{"count": "30", "flag": "true", "tag": "a, b,,c", "visibility": "private"},
			want: map[string]any{"count": 30, "flag": true, "tag": []string{"a", "b", "c"}, "visibility": "private"},
		},
		{
			name: "json values are converted",
			raw:  map[string]any{"count": float64(5), "flag": false, "tag": []any{"x", "y"}},
			want: map[string]any{"count": 5, "flag": false, "tag": []string{"x", "y"}},
		},
		{
			name: "typed values pass through",
			raw:  map[string]any{"title": "T", "count": 1, "tag": []string{"z"}},
			want: map[string]any{"title": "T", "count": 1, "tag": []string{"z"}},
		},
		{
			name: "empty list stays defined",
			raw:  map[string]any{"tag": ""},
			want: map[string]any{"count": 15, "tag": []string{}},
		},
		{
			name: "unknown keys are dropped",
			raw:  map[string]any{"_method": "PUT", "other": 1},
			want: map[string]any{"count": 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(defs, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		def   ParamDef
		value any
	}{
		{name: "required missing", def: ParamDef{Name: "p", Type: TypeString, Required: true}},
		{name: "required blank", def: ParamDef{Name: "p", Type: TypeString, Required: true}, value: "  "},
		{name: "required empty list", def: ParamDef{Name: "p", Type: TypeStringList, Required: true}, value: []string{}},
		{name: "bad integer", def: ParamDef{Name: "p", Type: TypeInteger}, value: "ten"},
		{name: "fractional integer", def: ParamDef{Name: "p", Type: TypeInteger}, value: 1.5},
		{name: "bad boolean", def: ParamDef{Name: "p", Type: TypeBoolean}, value: "maybe"},
		{name: "bad choice", def: ParamDef{Name: "p", Type: TypeChoice, Alternatives: []string{"a"}}, value: "b"},
		{name: "object for string", def: ParamDef{Name: "p", Type: TypeString}, value: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{}
			if tt.value != nil {
				raw["p"] = tt.value
			}
			_, err := Normalize([]ParamDef{tt.def}, raw)
			require.Error(t, err)

			var verr *utils.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "p", verr.Field)
		})
	}
}
