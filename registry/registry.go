// Package registry keeps a named catalogue of schemas loaded from an OpenAPI
// or JSON Schema document, with hot reload when the file changes.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/openapi"
)

// ErrNotFound is returned when no schema is registered under a name.
var ErrNotFound = errors.New("registry: schema not found")

// Registry provides thread-safe access to named schemas.
type Registry struct {
	mu       sync.RWMutex
	schemas  map[string]goshape.Schema
	path     string
	opts     openapi.Options
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(names []string)
	onError  []func(err error)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates an empty registry. Schemas are added with Register.
func New(logger zerolog.Logger) *Registry {
	return &Registry{
		schemas: map[string]goshape.Schema{},
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Open creates a registry from the named schemas of the document at path.
func Open(path string, opts openapi.Options, logger zerolog.Logger) (*Registry, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	r := New(logger)
	r.path = absPath
	r.opts = opts
	schemas, err := r.load()
	if err != nil {
		return nil, err
	}
	r.schemas = schemas
	return r, nil
}

func (r *Registry) load() (map[string]goshape.Schema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}
	schemas, diag, err := openapi.ImportComponents(data, r.opts)
	if err != nil {
		return nil, fmt.Errorf("import schema document: %w", err)
	}
	for _, w := range diag.Warnings() {
		r.logger.Warn().Str("path", r.path).Msg(w)
	}
	return schemas, nil
}

// Register adds or replaces a schema.
func (r *Registry) Register(name string, s goshape.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = s
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) (goshape.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedNames(r.schemas)
}

// Parse validates v against the named schema.
func (r *Registry) Parse(ctx context.Context, name string, v any) (any, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return goshape.Parse(ctx, s, v)
}

// Reload reloads the document from disk. On failure the previous schemas are
// kept and the error is returned.
func (r *Registry) Reload() error {
	if r.path == "" {
		return errors.New("registry: not backed by a file")
	}
	r.logger.Info().Str("path", r.path).Msg("reloading schemas")

	schemas, err := r.load()
	if err != nil {
		r.logger.Error().Err(err).Msg("schema reload failed, keeping old schemas")
		r.mu.RLock()
		listeners := append([]func(error){}, r.onError...)
		r.mu.RUnlock()
		for _, fn := range listeners {
			fn(err)
		}
		return fmt.Errorf("reload schemas: %w", err)
	}

	r.mu.Lock()
	old := len(r.schemas)
	r.schemas = schemas
	listeners := append([]func([]string){}, r.onChange...)
	r.mu.Unlock()

	names := sortedNames(schemas)
	if old != len(names) {
		r.logger.Info().Int("old", old).Int("new", len(names)).Msg("schema count changed")
	}
	for _, fn := range listeners {
		fn(names)
	}

	r.logger.Info().Msg("schemas reloaded successfully")
	return nil
}

// OnChange registers a callback invoked with the new names after a reload.
func (r *Registry) OnChange(fn func(names []string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = append(r.onChange, fn)
}

// OnError registers a callback invoked when a reload fails.
func (r *Registry) OnError(fn func(err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = append(r.onError, fn)
}

// WatchFile starts watching the document for changes. Changes trigger
// Reload.
func (r *Registry) WatchFile() error {
	if r.path == "" {
		return errors.New("registry: not backed by a file")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory (more reliable for editors that do atomic saves)
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	r.watcher = watcher

	go r.watchLoop()

	r.logger.Info().Str("path", r.path).Msg("watching schema document for changes")
	return nil
}

// Stop stops watching for file changes.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		if r.watcher != nil {
			r.watcher.Close()
		}
	})
}

func (r *Registry) watchLoop() {
	filename := filepath.Base(r.path)

	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			// atomic save = create
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				r.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("schema document changed")

				if err := r.Reload(); err != nil {
					r.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Error().Err(err).Msg("file watcher error")

		case <-r.stopCh:
			return
		}
	}
}

func sortedNames(m map[string]goshape.Schema) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
