package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/tslin/internal"
	tt "github.com/gnolang/tslin/internal/types"
)

const defaultSettleDelay = 100 * time.Millisecond

// Watcher re-lints a source file whenever it or its AST sidecar is written.
type Watcher struct {
	engine  LintEngine
	logger  *zap.Logger
	report  func(filename string, issues []tt.Issue)
	watcher *fsnotify.Watcher

	// settle is how long to wait after an event before linting, so that a
	// burst of writes is seen as one change.
	settle time.Duration
}

func NewWatcher(engine LintEngine, logger *zap.Logger, report func(string, []tt.Issue)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		engine:  engine,
		logger:  logger,
		report:  report,
		watcher: fw,
		settle:  defaultSettleDelay,
	}, nil
}

// Add watches path. Directories are watched recursively; for a file its
// parent directory is watched.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return w.watcher.Add(filepath.Dir(path))
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	return nil
}

// Run handles file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				w.logger.Error("Error watching new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	source, ok := w.sourceOf(event.Name)
	if !ok {
		return
	}

	time.Sleep(w.settle)
	issues, err := w.engine.Run(source)
	switch {
	case errors.Is(err, internal.ErrMissingAST):
		w.logger.Debug("Skipping file without AST", zap.String("file", source))
		return
	case errors.Is(err, fs.ErrNotExist):
		// removed before the settle delay ran out
		return
	case err != nil:
		w.logger.Error("Error linting file", zap.String("file", source), zap.Error(err))
		return
	}

	w.logger.Debug("Linted", zap.String("file", source), zap.Int("issues", len(issues)))
	w.report(source, issues)
}

// sourceOf maps a changed path to the source file to lint: either the path
// itself or the source its sidecar belongs to.
func (w *Watcher) sourceOf(name string) (string, bool) {
	if hasDesiredExtension(name) {
		return name, true
	}
	if source, ok := w.engine.SourceFor(name); ok && hasDesiredExtension(source) {
		return source, true
	}
	return "", false
}
