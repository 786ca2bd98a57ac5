package slider

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/errgroup"
)

const maxWorkers = 8

// imageToPreload is an image box with the slide it belongs to.
type imageToPreload struct {
	slideIndex int
	box        *ImageBox
	src        string
}

// preloadImages resolves every image box of slides before the first frame.
// An image that fails to load is logged and its box stays unresolved.
// Only cancellation of ctx is returned as an error.
func preloadImages(ctx context.Context, slides []*Slide, baseDir string, client *retryablehttp.Client, logger *slog.Logger) error {
	var imagesToPreload []imageToPreload
	for i, s := range slides {
		for _, b := range s.images() {
			imagesToPreload = append(imagesToPreload, imageToPreload{
				slideIndex: i,
				box:        b,
				src:        resolvePath(baseDir, b.Path),
			})
		}
	}
	if len(imagesToPreload) == 0 {
		return nil
	}

	imageCh := make(chan imageToPreload)
	g, ctx := errgroup.WithContext(ctx)
	numWorkers := min(maxWorkers, len(imagesToPreload))
	for range numWorkers {
		g.Go(func() error {
			for img := range imageCh {
				i, err := NewImage(ctx, client, img.src)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					logger.Warn("failed to load image", slog.Int("page", img.slideIndex+1), slog.String("src", img.src), slog.String("error", err.Error()))
					continue
				}
				// each box is owned by exactly one worker
				img.box.SetImage(i.Image())
				logger.Debug("loaded image", slog.Int("page", img.slideIndex+1), slog.String("src", img.src))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(imageCh)
		for _, img := range imagesToPreload {
			select {
			case imageCh <- img:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

// resolvePath resolves a document relative path. URLs and absolute paths are returned as is.
func resolvePath(baseDir, p string) string {
	if p == "" || isURL(p) || filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
