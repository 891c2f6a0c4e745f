// Package settings derives the final title, description and tags of the
// current stream from the operator supplied parameters.
package settings

import (
	"regexp"
	"slices"
	"strings"
)

const (
	// DefaultSubjectSeparator joins the subject and the title
	DefaultSubjectSeparator = " - "
	// DefaultTimestampsTitle is the heading written above the chapter list
	DefaultTimestampsTitle = "Timestamps :\n"
)

// CurrentStreamSettings is the parameter bag shared by the CLI and the REST
// server. Nil Title and Description mean "not provided"; a nil Tags slice is
// absent while an empty one is defined but empty.
type CurrentStreamSettings struct {
	Language    string   `json:"language,omitempty"`
	LanguageSub string   `json:"languageSub,omitempty"`
	Playlists   []string `json:"playlists,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`

	Subject            string `json:"subject,omitempty"`
	SubjectBeforeTitle bool   `json:"subjectBeforeTitle,omitempty"`
	SubjectAfterTitle  bool   `json:"subjectAfterTitle,omitempty"`
	SubjectSeparator   string `json:"subjectSeparator,omitempty"`
	SubjectAddToTags   bool   `json:"subjectAddToTags,omitempty"`

	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	// Snapshots of Title and Description before any rule ran
	TitleOriginal       *string `json:"titleOriginal,omitempty"`
	DescriptionOriginal *string `json:"descriptionOriginal,omitempty"`

	TagsAddDescription         bool   `json:"tagsAddDescription,omitempty"`
	TagsDescriptionWithHashTag bool   `json:"tagsDescriptionWithHashTag,omitempty"`
	TagsDescriptionNewLine     bool   `json:"tagsDescriptionNewLine,omitempty"`
	TagsDescriptionWhiteSpace  string `json:"tagsDescriptionWhiteSpace,omitempty"`

	TimestampsTitle string `json:"timestampsTitle,omitempty"`
	Timestamps      string `json:"timestamps,omitempty"`
}

// String returns a pointer to s
func String(s string) *string {
	return &s
}

// Value dereferences p, returning "" for nil
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	return String(*p)
}

// Compute applies the rules in order (snapshot, subject, tags into
// description) and returns a new value; in is not modified.
func Compute(in CurrentStreamSettings) CurrentStreamSettings {
	out := in
	out.Playlists = slices.Clone(in.Playlists)
	out.Tags = slices.Clone(in.Tags)
	out.Title = clonePtr(in.Title)
	out.Description = clonePtr(in.Description)

	out = snapshot(out)
	out = applySubject(out)
	out = applyTagsToDescription(out)
	return out
}

func snapshot(css CurrentStreamSettings) CurrentStreamSettings {
	css.TitleOriginal = clonePtr(css.Title)
	css.DescriptionOriginal = clonePtr(css.Description)
	return css
}

func applySubject(css CurrentStreamSettings) CurrentStreamSettings {
	if css.Subject == "" {
		return css
	}

	sep := css.SubjectSeparator
	if sep == "" {
		sep = DefaultSubjectSeparator
	}

	if css.SubjectBeforeTitle {
		css.Title = String(css.Subject + sep + Value(css.Title))
	}
	if css.SubjectAfterTitle {
		css.Title = String(Value(css.Title) + sep + css.Subject)
	}
	if css.SubjectAddToTags {
		tags := slices.Clone(css.Tags)
		if tags == nil {
			tags = []string{}
		}
		css.Tags = append(tags, strings.ToLower(css.Subject))
	}
	return css
}

// applyTagsToDescription runs whenever Tags is defined, even empty, in which
// case only the leading newline is added.
func applyTagsToDescription(css CurrentStreamSettings) CurrentStreamSettings {
	if !css.TagsAddDescription || css.Tags == nil {
		return css
	}

	var b strings.Builder
	b.WriteString(Value(css.Description))
	b.WriteString("\n")
	if css.TagsDescriptionNewLine {
		b.WriteString("\n")
	}

	hash := ""
	if css.TagsDescriptionWithHashTag {
		hash = "#"
	}
	for _, tag := range css.Tags {
		b.WriteString(" " + hash + strings.ReplaceAll(tag, " ", css.TagsDescriptionWhiteSpace))
	}

	css.Description = String(b.String())
	return css
}

var digitRe = regexp.MustCompile(`[0-9]`)

// AppendTimestamps adds the chapter block to a description. Nothing changes
// when timestamps is empty or the heading is already present, compared
// case-insensitively. The heading is written only when the first chapter
// line carries a digit.
func AppendTimestamps(description, timestamps, heading string) (string, bool) {
	if heading == "" {
		heading = DefaultTimestampsTitle
	}
	if timestamps == "" || strings.Contains(strings.ToLower(description), strings.ToLower(heading)) {
		return description, false
	}

	firstLine, _, _ := strings.Cut(timestamps, "\n")
	description += "\n\n"
	if digitRe.MatchString(firstLine) {
		description += heading
	}
	return description + timestamps, true
}
