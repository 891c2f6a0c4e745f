package actions

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gnzdotmx/ytmanager/internal/utils"
)

// ParamType is the value type of an action parameter
type ParamType string

const (
	TypeString     ParamType = "string"
	TypeInteger    ParamType = "integer"
	TypeBoolean    ParamType = "boolean"
	TypeStringList ParamType = "stringList"
	TypeChoice     ParamType = "choice"
)

func (t ParamType) valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeBoolean, TypeStringList, TypeChoice:
		return true
	default:
		return false
	}
}

// ParamDef declares one action parameter
type ParamDef struct {
	Name         string    `json:"name"`
	Type         ParamType `json:"type"`
	Description  string    `json:"description"`
	Required     bool      `json:"required,omitempty"`
	Default      any       `json:"defaultValue,omitempty"`
	Alternatives []string  `json:"alternatives,omitempty"`
	// EnvVar provides a fallback value on the command line
	EnvVar string `json:"environmentVariable,omitempty"`
}

// CamelCase converts a kebab-case parameter name, "path-file" becomes "pathFile"
func CamelCase(name string) string {
	parts := strings.Split(name, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// Normalize converts raw values to the declared types, applies defaults
// and checks required parameters and choices. Unknown keys are dropped.
// An absent value is a missing key or a nil.
func Normalize(defs []ParamDef, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(defs))
	for _, def := range defs {
		value, ok := raw[def.Name]
		if !ok || value == nil {
			if def.Default != nil {
				out[def.Name] = def.Default
				continue
			}
			if def.Required {
				return nil, &utils.ValidationError{Field: def.Name, Message: "is required"}
			}
			continue
		}

		converted, err := convert(def, value)
		if err != nil {
			return nil, err
		}
		if def.Required && isEmpty(converted) {
			return nil, &utils.ValidationError{Field: def.Name, Message: "is required"}
		}
		out[def.Name] = converted
	}
	return out, nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	default:
		return false
	}
}

func convert(def ParamDef, value any) (any, error) {
	invalid := func(err error) error {
		return &utils.ValidationError{
			Field:   def.Name,
			Message: fmt.Sprintf("invalid %s value %v", def.Type, value),
			Err:     err,
		}
	}

	switch def.Type {
	case TypeInteger:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v != math.Trunc(v) {
				return nil, invalid(nil)
			}
			return int(v), nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, invalid(err)
			}
			return n, nil
		}

	case TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, invalid(err)
			}
			return b, nil
		}

	case TypeStringList:
		switch v := value.(type) {
		case []string:
			return slices.Clone(v), nil
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				list = append(list, fmt.Sprint(item))
			}
			return list, nil
		case string:
			return splitList(v), nil
		}

	case TypeString:
		switch v := value.(type) {
		case string:
			return v, nil
		case bool, int, int64, float64:
			return fmt.Sprint(v), nil
		}

	case TypeChoice:
		s := fmt.Sprint(value)
		if err := utils.ValidateChoice(def.Name, s, def.Alternatives); err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, invalid(nil)
}

// splitList splits a comma separated value, dropping blank items
func splitList(s string) []string {
	list := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
