package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Index caches the repository's id-space per module so uniqueness and
// referential checks stay O(1) amortized instead of re-scanning directories
// on every validation. Long-running callers can attach a filesystem watcher
// to invalidate the cache when records change on disk.
type Index struct {
	repo *Repository

	mu      sync.Mutex
	modules map[string]map[string]struct{}
}

// NewIndex creates an empty index over the repository.
func NewIndex(r *Repository) *Index {
	return &Index{repo: r, modules: make(map[string]map[string]struct{})}
}

// Exists implements schema.Lookup against the cached id sets, loading a
// module's set on first use.
func (ix *Index) Exists(module, elementID string) (bool, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ids, ok := ix.modules[module]
	if !ok {
		var err error
		ids, err = ix.repo.ListIDs(module)
		if err != nil {
			return false, err
		}
		ix.modules[module] = ids
	}
	_, found := ids[elementID]
	return found, nil
}

// Invalidate drops all cached id sets; they reload lazily on next use.
func (ix *Index) Invalidate() {
	ix.mu.Lock()
	ix.modules = make(map[string]map[string]struct{})
	ix.mu.Unlock()
}

// Watch invalidates the index whenever the ui_elements tree changes on
// disk. It returns once the watcher is installed and stops when ctx is
// done. The repository root must already exist.
func (ix *Index) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	root := filepath.Join(ix.repo.Root(), elementsDir)
	if err := watcher.Add(root); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", root, err)
	}
	// Watch existing module subdirectories too; new ones are picked up
	// from create events on the parent.
	if modules, err := ix.repo.ListModules(); err == nil {
		for _, m := range modules {
			_ = watcher.Add(filepath.Join(root, m))
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Create) {
					// A new module directory: start watching it.
					_ = watcher.Add(ev.Name)
				}
				ix.Invalidate()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				ix.Invalidate()
			}
		}
	}()
	return nil
}
