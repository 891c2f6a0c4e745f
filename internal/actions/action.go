// Package actions provides the operator commands shared by the CLI and the REST server
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/gnzdotmx/ytmanager/internal/config"
	youtubesvc "github.com/gnzdotmx/ytmanager/internal/services/youtube"
	"github.com/gnzdotmx/ytmanager/internal/streamlib"
)

var (
	// ErrLibraryRequired is returned by actions that need a loaded stream library
	ErrLibraryRequired = errors.New("library not loaded")
	// ErrNoBroadcast is returned when the channel has no live broadcast
	ErrNoBroadcast = errors.New("no live broadcast found")
	// ErrNothingToDo is returned when an action has no input to act on
	ErrNothingToDo = errors.New("nothing to do")
)

// Action defines the interface that all actions must implement
type Action interface {
	// Name returns the action's unique identifier
	Name() string

	// Definition returns the action's metadata and parameter schema
	Definition() Definition

	// Execute normalizes the raw parameters and runs the action
	Execute(ctx context.Context, env *Env, params map[string]any) (any, error)
}

// Definition describes an action for the CLI and the REST server
type Definition struct {
	Name        string     `json:"name"`
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	Params      []ParamDef `json:"parameters,omitempty"`
	// API is nil for actions not exposed over HTTP
	API *Route `json:"-"`
	// Offline actions only touch the library and need no platform client
	Offline bool `json:"-"`
}

// Route is the HTTP method and path of an action, relative to /api
type Route struct {
	Method string
	Path   string
}

// Env is the runtime an action executes against
type Env struct {
	Client  youtubesvc.Client
	Library *streamlib.Library
	Config  *config.Config
	// History records the current stream in the library before each action
	History bool
}

func (e *Env) config() *config.Config {
	if e.Config == nil {
		return config.Default()
	}
	return e.Config
}

func (e *Env) library() (*streamlib.Library, error) {
	if e.Library == nil {
		return nil, ErrLibraryRequired
	}
	return e.Library, nil
}

type runFunc func(ctx context.Context, env *Env, params map[string]any) (any, error)

type action struct {
	def Definition
	run runFunc
}

func (a *action) Name() string           { return a.def.Name }
func (a *action) Definition() Definition { return a.def }

func (a *action) Execute(ctx context.Context, env *Env, params map[string]any) (any, error) {
	normalized, err := Normalize(a.def.Params, params)
	if err != nil {
		return nil, err
	}
	return a.run(ctx, env, normalized)
}

// Registry stores all available actions in registration order
type Registry struct {
	actions map[string]Action
	order   []string
	sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
	}
}

// ValidateDefinition validates an action's parameter schema and route
func ValidateDefinition(def Definition) error {
	seen := make(map[string]bool, len(def.Params))
	for i, p := range def.Params {
		if p.Name == "" {
			return fmt.Errorf("parameter %d has empty name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("parameter %s is declared twice", p.Name)
		}
		seen[p.Name] = true

		if !p.Type.valid() {
			return fmt.Errorf("parameter %s has invalid type: %s", p.Name, p.Type)
		}
		if p.Type == TypeChoice && len(p.Alternatives) == 0 {
			return fmt.Errorf("choice parameter %s has no alternatives", p.Name)
		}
	}

	if def.API != nil {
		if def.API.Path == "" || def.API.Path[0] != '/' {
			return fmt.Errorf("invalid api path: %q", def.API.Path)
		}
		switch def.API.Method {
		case "GET", "POST", "PUT", "DELETE":
		default:
			return fmt.Errorf("invalid api method: %q", def.API.Method)
		}
	}
	return nil
}

// Register adds an action to the registry
func (r *Registry) Register(a Action) error {
	if a == nil {
		return fmt.Errorf("cannot register nil action")
	}

	name := a.Name()
	if name == "" {
		return fmt.Errorf("action name cannot be empty")
	}

	if err := ValidateDefinition(a.Definition()); err != nil {
		return fmt.Errorf("invalid definition for action %s: %w", name, err)
	}

	r.Lock()
	defer r.Unlock()

	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("action %s is already registered", name)
	}

	r.actions[name] = a
	r.order = append(r.order, name)
	return nil
}

// Get retrieves an action by name
func (r *Registry) Get(name string) (Action, error) {
	if name == "" {
		return nil, fmt.Errorf("action name cannot be empty")
	}

	r.RLock()
	defer r.RUnlock()

	a, exists := r.actions[name]
	if !exists {
		return nil, fmt.Errorf("action %s not found", name)
	}
	return a, nil
}

// List returns every registered action in registration order
func (r *Registry) List() []Action {
	r.RLock()
	defer r.RUnlock()

	list := make([]Action, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.actions[name])
	}
	return list
}

// Run executes the named action, first recording the current stream in
// the library when env.History is set.
func (r *Registry) Run(ctx context.Context, name string, env *Env, params map[string]any) (any, error) {
	a, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	if env.History {
		if err := RecordHistory(ctx, env); err != nil {
			return nil, fmt.Errorf("failed to record history: %w", err)
		}
	}
	return a.Execute(ctx, env, params)
}

// ParseParams converts a normalized parameter map to the typed struct of an action
func ParseParams(params map[string]any, target any) error {
	if params == nil {
		return fmt.Errorf("params cannot be nil")
	}
	if target == nil {
		return fmt.Errorf("target cannot be nil")
	}

	if reflect.ValueOf(target).Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer to a struct")
	}
	if reflect.ValueOf(target).Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to a struct")
	}

	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("error marshaling params: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("error unmarshaling params: %w", err)
	}

	return nil
}
