package generator

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the source tree and metadata directory for changes and
// triggers regeneration. Events are debounced so a burst of saves produces
// one run.
type Watcher struct {
	gen          *Generator
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a file watcher for the generator's root and metadata
// directories.
func NewWatcher(gen *Generator) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		gen:          gen,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(gen.config.RootDir); err != nil {
		watcher.Close()
		return nil, err
	}
	if !isSubPath(gen.config.RootDir, gen.config.MetadataDir) {
		if err := w.addDirectoriesRecursively(gen.config.MetadataDir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the file watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh // Wait for goroutine to finish
		w.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	regenerateCh := make(chan struct{}, 1)
	changedFiles := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.shouldProcessEvent(event) {
				continue
			}
			changedFiles[event.Name] = true

			// Handle new directories - add them to watcher
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.shouldWatchDirectory(event.Name) {
						if err := w.addDirectoriesRecursively(event.Name); err != nil {
							log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
						}
					}
				}
			}

			// Reset debounce timer - properly stop and drain
			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case regenerateCh <- struct{}{}:
				default:
				}
			})

		case <-regenerateCh:
			w.triggerRegenerate(ctx, changedFiles)
			changedFiles = make(map[string]bool)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// triggerRegenerate reruns the full pipeline. Diagnostics are logged rather
// than terminating the watch loop, so authors can fix them and save again.
func (w *Watcher) triggerRegenerate(ctx context.Context, changedFiles map[string]bool) {
	if len(changedFiles) == 0 {
		return
	}

	log.Printf("Regenerating due to changes in %d file(s)...", len(changedFiles))
	start := time.Now()

	if err := w.gen.ReloadCatalog(); err != nil {
		log.Printf("Error reloading member catalog: %v", err)
		return
	}

	stats, diags, err := w.gen.Generate(ctx)
	if err != nil {
		log.Printf("Error during regeneration: %v", err)
		return
	}

	for _, msg := range diags.Messages() {
		log.Printf("Diagnostic: %s", msg)
	}
	if diags.HasErrors() {
		log.Printf("Regeneration finished with %d diagnostic(s)", diags.Len())
		return
	}
	log.Printf("Regeneration complete in %v (%d snippets, %d files written)",
		time.Since(start), stats.SnippetsExtracted, stats.FilesWritten)
}

// shouldProcessEvent checks if an event should trigger regeneration.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	// Only care about WRITE, CREATE, and REMOVE events
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}

	// Never react to our own output
	if isSubPath(w.gen.config.OutputDir, event.Name) {
		return false
	}

	// Metadata changes invalidate the catalog
	if isSubPath(w.gen.config.MetadataDir, event.Name) {
		return true
	}

	relPath, err := filepath.Rel(w.gen.config.RootDir, event.Name)
	if err != nil {
		return false
	}
	return w.gen.discovery.IsSourceUnit(relPath)
}

// shouldWatchDirectory checks if a directory should be watched.
func (w *Watcher) shouldWatchDirectory(path string) bool {
	if isSubPath(w.gen.config.OutputDir, path) {
		return false
	}
	relPath, err := filepath.Rel(w.gen.config.RootDir, path)
	if err != nil {
		return true
	}
	return !w.gen.discovery.shouldIgnore(filepath.ToSlash(relPath))
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Log but continue - don't fail the entire watch for one directory
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if !w.shouldWatchDirectory(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
			return nil // Continue anyway
		}
		return nil
	})
}

// isSubPath reports whether target lies inside (or equals) dir.
func isSubPath(dir, target string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
