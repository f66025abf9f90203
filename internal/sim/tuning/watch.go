package tuning

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 200 * time.Millisecond

// Watch reloads the settings file whenever it changes and calls onChange
// with each valid version. Invalid edits are logged and skipped, so the
// last good settings stay in effect. Watch blocks until ctx is done.
// It watches the parent directory since editors often replace the file.
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func(Settings)) error {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("settings watcher error", zap.Error(err))
		case <-pending:
			pending = nil
			s, err := Load(abs)
			if err != nil {
				log.Warn("settings reload rejected", zap.String("path", abs), zap.Error(err))
				continue
			}
			log.Info("settings reloaded", zap.String("path", abs))
			onChange(s)
		}
	}
}
