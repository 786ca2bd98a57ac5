package slider

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/slider/config"
	"github.com/k1LoW/slider/md"
)

// Load reads the document at path and returns a ready deck.
// The document and the theme background image are required; every slide image is resolved
// before Load returns and an image that fails to load is only logged.
func Load(ctx context.Context, path string, theme *config.Theme, opts ...Option) (_ *Deck, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	d, err := newDeck(theme, opts...)
	if err != nil {
		return nil, err
	}
	doc, err := md.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return d.load(ctx, doc, filepath.Dir(path))
}

// LoadDocument is like Load for an already parsed document. baseDir resolves relative image paths.
func LoadDocument(ctx context.Context, doc *md.Document, baseDir string, theme *config.Theme, opts ...Option) (_ *Deck, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	d, err := newDeck(theme, opts...)
	if err != nil {
		return nil, err
	}
	return d.load(ctx, doc, baseDir)
}

func (d *Deck) load(ctx context.Context, doc *md.Document, baseDir string) (*Deck, error) {
	client := newHTTPClient(d.logger)

	if d.theme.BackgroundImage != "" {
		bg, err := NewImage(ctx, client, resolvePath(baseDir, d.theme.BackgroundImage))
		if err != nil {
			return nil, fmt.Errorf("failed to load background image: %w", err)
		}
		d.background = bg.Image()
	}

	if fm := doc.Frontmatter; fm != nil {
		if d.title == "" {
			d.title = fm.Title
		}
		if !d.automaticSet {
			automatic, err := fm.AutomaticDuration()
			if err != nil {
				d.logger.Warn("failed to parse automatic", slog.String("error", err.Error()))
			}
			d.automatic = automatic
		}
	}

	groups := doc.Slides
	if len(groups) == 0 {
		// an empty document is one blank slide
		groups = [][]md.Block{{}}
	}
	d.slides = NewCompiler(d.theme, d.codeBoxes, d.interpreters).Compile(groups)

	if err := preloadImages(ctx, d.slides, baseDir, client, d.logger); err != nil {
		return nil, err
	}
	d.logger.Info("loaded deck", slog.Int("slides", len(d.slides)))
	return d, nil
}
