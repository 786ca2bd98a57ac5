package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/slider"
	"github.com/k1LoW/slider/config"
	"github.com/k1LoW/slider/md"
)

var themeName string

// session holds what the deck commands share: the configuration, the resolved theme and the deck options.
type session struct {
	path   string
	fm     *md.Frontmatter
	cfg    *config.Config
	theme  *config.Theme
	opts   []slider.Option
	logger *slog.Logger
}

// newSession resolves the theme in the order --theme, the document header, the config file, the defaults.
func newSession(path string, logger *slog.Logger) (_ *session, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fm := md.ParseFrontmatter(string(b))
	var themePath string
	switch {
	case themeName != "":
		themePath = config.ResolveTheme(themeName, "")
	case fm != nil && fm.Theme != "":
		themePath = config.ResolveTheme(fm.Theme, filepath.Dir(path))
	case cfg.Theme != "":
		themePath = config.ResolveTheme(cfg.Theme, config.ConfigPath())
	}
	theme := config.DefaultTheme()
	if themePath != "" {
		theme, err = config.LoadTheme(themePath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded theme", slog.String("path", themePath))
	}

	timeout, err := cfg.CodeTimeoutDuration()
	if err != nil {
		return nil, err
	}
	return &session{
		path:   path,
		fm:     fm,
		cfg:    cfg,
		theme:  theme,
		logger: logger,
		opts: []slider.Option{
			slider.WithLogger(logger),
			slider.WithInterpreters(cfg.Interpreters),
			slider.WithCodeTimeout(timeout),
		},
	}, nil
}

// load loads the deck with the session options followed by opts.
func (s *session) load(ctx context.Context, opts ...slider.Option) (*slider.Deck, error) {
	return slider.Load(ctx, s.path, s.theme, append(append([]slider.Option{}, s.opts...), opts...)...)
}
