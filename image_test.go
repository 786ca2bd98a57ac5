package slider

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewImageFromFile(t *testing.T) {
	clearCache()
	t.Cleanup(clearCache)
	ctx := t.Context()
	client := newHTTPClient(nil)

	p := writePNG(t, t.TempDir(), "a.png", 3, 2)
	i, err := NewImage(ctx, client, p)
	if err != nil {
		t.Fatal(err)
	}
	if b := i.Image().Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
	if i.Format() != "png" {
		t.Errorf("Format() = %q", i.Format())
	}

	cached, err := NewImage(ctx, client, p)
	if err != nil {
		t.Fatal(err)
	}
	if cached != i {
		t.Error("unchanged file was decoded again")
	}

	// a newer file replaces the cached image
	writePNG(t, filepath.Dir(p), "a.png", 5, 5)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(p, future, future); err != nil {
		t.Fatal(err)
	}
	reloaded, err := NewImage(ctx, client, p)
	if err != nil {
		t.Fatal(err)
	}
	if b := reloaded.Image().Bounds(); b.Dx() != 5 {
		t.Errorf("stale image: %v", b)
	}
}

func TestNewImageErrors(t *testing.T) {
	clearCache()
	t.Cleanup(clearCache)
	ctx := t.Context()
	client := newHTTPClient(nil)
	dir := t.TempDir()

	if _, err := NewImage(ctx, client, filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file: want error")
	}
	p := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(p, []byte("not an image"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewImage(ctx, client, p); err == nil {
		t.Error("broken file: want error")
	}
}

func TestNewImageFromURL(t *testing.T) {
	clearCache()
	t.Cleanup(clearCache)
	ctx := t.Context()
	client := newHTTPClient(nil)
	client.RetryMax = 0

	png, err := os.ReadFile(writePNG(t, t.TempDir(), "a.png", 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/a.png" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") != userAgent {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write(png)
	}))
	t.Cleanup(ts.Close)

	for range 2 {
		i, err := NewImage(ctx, client, ts.URL+"/a.png")
		if err != nil {
			t.Fatal(err)
		}
		if i.Image().Bounds().Dx() != 2 {
			t.Errorf("bounds = %v", i.Image().Bounds())
		}
	}
	if hits.Load() != 1 {
		t.Errorf("fetched %d times, want 1", hits.Load())
	}

	if _, err := NewImage(ctx, client, ts.URL+"/missing.png"); err == nil {
		t.Error("404: want error")
	}
}
