// Package api exposes the actions over a local REST server
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gnzdotmx/ytmanager/internal/actions"
	"github.com/gnzdotmx/ytmanager/internal/streamlib"
	"github.com/gnzdotmx/ytmanager/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	// Prefix is prepended to every action path
	Prefix = "/api"
	// MethodOverrideParam lets a GET request call a route of another method
	MethodOverrideParam = "_method"
)

const methodOverrideUsage = "Call any endpoint with GET by adding ?_method=PUT|POST|DELETE; " +
	"parameters are then read from the query string"

// Server dispatches HTTP requests to actions. Actions run one at a time
// since they share the stream library file.
type Server struct {
	registry    *actions.Registry
	env         *actions.Env
	loadLibrary func() *streamlib.Library
	mu          sync.Mutex
	now         func() time.Time
}

// Option configures a Server
type Option func(*Server)

// WithLibraryPath makes every request read the library at path, so the
// file written by other invocations is never overwritten with stale state
func WithLibraryPath(path string) Option {
	return func(s *Server) {
		s.loadLibrary = func() *streamlib.Library { return streamlib.Load(path) }
	}
}

// NewServer creates a server over the actions of registry. Without
// WithLibraryPath every request shares env.Library.
func NewServer(registry *actions.Registry, env *actions.Env, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		env:      env,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// requestEnv returns the env of one request, holding a freshly loaded
// library when a loader is set. The caller holds s.mu.
func (s *Server) requestEnv() *actions.Env {
	env := *s.env
	if s.loadLibrary != nil {
		env.Library = s.loadLibrary()
	}
	return &env
}

// Router returns the http handler of the server
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get(Prefix+"/endpoints", s.handleEndpoints)

	// path -> method -> action
	routes := make(map[string]map[string]actions.Action)
	var paths []string
	for _, a := range s.registry.List() {
		route := a.Definition().API
		if route == nil {
			continue
		}
		path := Prefix + route.Path
		if routes[path] == nil {
			routes[path] = make(map[string]actions.Action)
			paths = append(paths, path)
		}
		routes[path][route.Method] = a
	}

	for _, path := range paths {
		byMethod := routes[path]
		for method, a := range byMethod {
			if method != http.MethodGet {
				r.Method(method, path, s.actionHandler(a))
			}
		}
		r.Get(path, s.overrideHandler(byMethod))
	}

	return r
}

// overrideHandler serves GET on a path, dispatching to the route named by
// the _method query parameter when present.
func (s *Server) overrideHandler(byMethod map[string]actions.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		method := strings.ToUpper(r.URL.Query().Get(MethodOverrideParam))
		if method == "" {
			method = http.MethodGet
		}

		a, ok := byMethod[method]
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.actionHandler(a)(w, r)
	}
}

func (s *Server) actionHandler(a actions.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := extractParams(r, a.Definition().Params)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		s.mu.Lock()
		result, err := s.registry.Run(r.Context(), a.Name(), s.requestEnv(), params)
		s.mu.Unlock()

		if err != nil {
			utils.LogError("Error in action %s: %v", a.Name(), err)
			writeError(w, statusOf(err), err)
			return
		}

		if result == nil {
			result = actions.Result{Success: true}
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// extractParams reads the query string of GET requests and the JSON body
// of the others. Body keys are looked up by exact name, then in camelCase.
func extractParams(r *http.Request, defs []actions.ParamDef) (map[string]any, error) {
	params := make(map[string]any, len(defs))

	if r.Method == http.MethodGet {
		query := r.URL.Query()
		for _, def := range defs {
			values, ok := query[def.Name]
			if !ok || len(values) == 0 {
				continue
			}
			if def.Type == actions.TypeStringList {
				params[def.Name] = values
			} else {
				params[def.Name] = values[0]
			}
		}
		return params, nil
	}

	body := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, &utils.ValidationError{Field: "body", Message: "invalid JSON body", Err: err}
	}
	for _, def := range defs {
		if v, ok := body[def.Name]; ok {
			params[def.Name] = v
		} else if v, ok := body[actions.CamelCase(def.Name)]; ok {
			params[def.Name] = v
		}
	}
	return params, nil
}

func statusOf(err error) int {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, streamlib.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, streamlib.ErrNotFound), errors.Is(err, actions.ErrNoBroadcast):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.LogWarning("Failed to encode response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// Endpoint describes a route in the endpoint listing
type Endpoint struct {
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description"`
	Method      string             `json:"method"`
	Path        string             `json:"path"`
	Parameters  []actions.ParamDef `json:"parameters,omitempty"`
}

// Endpoints lists the fixed routes followed by one entry per exposed action
func (s *Server) Endpoints() []Endpoint {
	endpoints := []Endpoint{
		{Method: http.MethodGet, Path: "/health", Description: "Health check"},
		{Method: http.MethodGet, Path: Prefix + "/endpoints", Description: "List all endpoints"},
	}
	for _, a := range s.registry.List() {
		def := a.Definition()
		if def.API == nil {
			continue
		}
		endpoints = append(endpoints, Endpoint{
			Name:        def.Name,
			Description: def.Description,
			Method:      def.API.Method,
			Path:        Prefix + def.API.Path,
			Parameters:  def.Params,
		})
	}
	return endpoints
}

func (s *Server) handleEndpoints(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"endpoints": s.Endpoints(),
		"usage": map[string]string{
			"methodOverride": methodOverrideUsage,
		},
	})
}

// requestID fills a missing X-Request-Id header before middleware.RequestID reads it
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(middleware.RequestIDHeader) == "" {
			r.Header.Set(middleware.RequestIDHeader, uuid.NewString())
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request through the application logger
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			utils.Logger().Debug().
				Str("requestId", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// ListenAndServe serves handler on addr until ctx is done
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	utils.LogInfo("Server running at http://%s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		utils.LogInfo("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}
