package slider

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/slider/version"
)

var userAgent = fmt.Sprintf("%s/%s", version.Name, version.Version)

// maxImageSize is the largest image body read from a URL.
const maxImageSize = 32 << 20

// Image is a decoded image and where it came from.
type Image struct {
	i       image.Image
	format  string
	src     string
	modTime time.Time // modification time of the image file, if applicable
}

// Image returns the decoded image.
func (i *Image) Image() image.Image {
	if i == nil {
		return nil
	}
	return i.i
}

// Format returns the name of the decoder, e.g. "png".
func (i *Image) Format() string {
	if i == nil {
		return ""
	}
	return i.format
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// newHTTPClient returns a retrying client for image URLs.
func newHTTPClient(logger *slog.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil
	if logger != nil {
		client.Logger = logger
	}
	return client
}

// NewImage loads and decodes the image at a file path or an http(s) URL.
// Decoded images are cached; files are reloaded when their modification time changes.
func NewImage(ctx context.Context, client *retryablehttp.Client, pathOrURL string) (_ *Image, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	var (
		r       io.Reader
		modTime time.Time
	)
	if isURL(pathOrURL) {
		if i, ok := images.load(pathOrURL, time.Time{}); ok {
			return i, nil
		}
		if _, err := url.Parse(pathOrURL); err != nil {
			return nil, fmt.Errorf("invalid URL %s: %w", pathOrURL, err)
		}
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL %s: %w", pathOrURL, err)
		}
		req.Header.Set("User-Agent", userAgent)
		res, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL %s: %w", pathOrURL, err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch image from URL %s: status code %d", pathOrURL, res.StatusCode)
		}
		r = io.LimitReader(res.Body, maxImageSize)
	} else {
		fi, err := os.Stat(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to stat image file %s: %w", pathOrURL, err)
		}
		modTime = fi.ModTime()
		if i, ok := images.load(pathOrURL, modTime); ok {
			return i, nil
		}
		f, err := os.Open(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open image file %s: %w", pathOrURL, err)
		}
		defer f.Close()
		r = f
	}
	i, err := newImageFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", pathOrURL, err)
	}
	i.src = pathOrURL
	i.modTime = modTime
	images.store(pathOrURL, i)
	return i, nil
}

func newImageFromReader(r io.Reader) (*Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Image{i: img, format: format}, nil
}
