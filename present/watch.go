package present

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
)

// watcher calls onChange when one file is written.
// The parent directory is watched so editors that replace the file are noticed.
type watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	logger   *slog.Logger
}

func newWatcher(path string, onChange func(), logger *slog.Logger) (_ *watcher, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}
	return &watcher{
		watcher:  fsWatcher,
		path:     abs,
		onChange: onChange,
		logger:   logger,
	}, nil
}

func (w *watcher) run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("file changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
				w.onChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("failed to watch file", slog.String("error", err.Error()))
		}
	}
}
