package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/tokenlint/internal/adapters/reporter"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
	"github.com/kamal-hamza/tokenlint/internal/core/services"
	"github.com/kamal-hamza/tokenlint/pkg/layout"
	"github.com/kamal-hamza/tokenlint/pkg/ui"
)

var watchQuiet bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate token folders as they change",
	Long: `Watch the registry and validate every token folder you touch.

This command monitors the chains directory, every assets directory and every
token folder. Newly created folders are picked up automatically. Changes are
collected for watch_debounce_ms (default 500ms) and then validated; violations
are reported but never stop the watcher.

Use --quiet to only print failures.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Only print violations")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt)
	defer stop()

	if !appLayout.Exists() {
		return fmt.Errorf("registry directory not found at %s", appLayout.ChainsPath())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	rep := reporter.NewText(cmd.OutOrStdout()).Quiet(watchQuiet)

	rw := newRegistryWatcher(appLayout, time.Duration(appConfig.WatchDebounceMS)*time.Millisecond, func(paths []string) {
		if !watchQuiet {
			fmt.Println(ui.FormatInfo(fmt.Sprintf("Changes detected in %d paths, validating...", len(paths))))
		}
		if err := revalidate(ctx, classifyService, validateService, rep, paths); err != nil {
			fmt.Println(ui.FormatError("Validation failed: " + err.Error()))
			logger.Errorw("revalidation error", "error", err)
		}
	})

	if err := rw.addTree(watcher); err != nil {
		return err
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Starting tokenlint watcher..."))
		fmt.Println(ui.FormatMuted("Watching: " + appLayout.ChainsPath()))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			rw.handle(watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("watcher error", "error", err)

		case <-ctx.Done():
			rw.stop()
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}

// registryWatcher collects changed paths and flushes them after a quiet period
type registryWatcher struct {
	layout   *layout.Layout
	debounce time.Duration
	run      func(paths []string)

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer

	// runMu keeps one revalidation at a time so reports never interleave
	runMu sync.Mutex
}

func newRegistryWatcher(l *layout.Layout, debounce time.Duration, run func(paths []string)) *registryWatcher {
	return &registryWatcher{
		layout:   l,
		debounce: debounce,
		run:      run,
		pending:  make(map[string]bool),
	}
}

// addTree watches the chains directory and every directory down to token folders
func (w *registryWatcher) addTree(watcher *fsnotify.Watcher) error {
	return w.addDir(watcher, w.layout.ChainsPath())
}

func (w *registryWatcher) addDir(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		depth := w.depth(path)
		if depth > 3 {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		logger.Debugw("watching", "path", path)
		return nil
	})
}

// depth counts segments below the chains directory: 1 chain, 2 assets, 3 token
func (w *registryWatcher) depth(path string) int {
	rel, err := filepath.Rel(w.layout.ChainsPath(), path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(filepath.ToSlash(rel), "/"))
}

func (w *registryWatcher) handle(watcher *fsnotify.Watcher, event fsnotify.Event) {
	// Filter out temporary/editor files
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") || strings.HasSuffix(base, "~") {
		return
	}

	if !(event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDir(watcher, event.Name); err != nil {
				logger.Warnw("failed to watch new directory", "path", event.Name, "error", err)
			}
		}
	}

	w.queue(w.layout.Rel(event.Name))
}

// queue adds a change-set path and restarts the debounce timer
func (w *registryWatcher) queue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true

	// Reset debounce timer
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// flush hands every pending path to run, sorted. A flush that fires while a
// run is in progress waits for it and then takes everything queued meanwhile.
func (w *registryWatcher) flush() {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	w.run(paths)
}

func (w *registryWatcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// revalidate checks every folder touched by paths and reports each result.
// Unlike validate, it keeps going after a failing folder.
func revalidate(ctx context.Context, classifier *services.ClassifyService, checker ports.FolderChecker, rep ports.Reporter, paths []string) error {
	classified, err := classifier.Execute(ctx, services.ClassifyRequest{Paths: paths})
	if err != nil {
		return err
	}
	if classified.Violation != nil {
		rep.Failed(classified.Violation)
		return nil
	}

	for _, key := range classified.Keys {
		rep.Checking(key)
		result, err := checker.Check(ctx, key)
		if err != nil {
			return err
		}
		if result.Passed() {
			rep.Passed(key)
		} else {
			rep.Failed(result.Violation)
		}
	}
	return nil
}
