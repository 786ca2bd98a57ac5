package present

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

func browserContext(t *testing.T) context.Context {
	t.Helper()
	var found string
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			found = p
			break
		}
	}
	if found == "" {
		t.Skip("chrome is not available")
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(found),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, aCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cCancel := chromedp.NewContext(allocCtx)
	ctx, tCancel := context.WithTimeout(ctx, 30*time.Second)
	t.Cleanup(func() {
		tCancel()
		cCancel()
		aCancel()
	})
	return ctx
}

func TestBrowserNavigation(t *testing.T) {
	ctx := browserContext(t)
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, "---\ntitle: Talk\n---\n# One\n\n---\n\n# Two\n\n---\n\n# Three\n")
	p, ts := start(t, path)

	poll := func(expr string) chromedp.Action {
		return chromedp.Poll(expr, nil, chromedp.WithPollingTimeout(10*time.Second))
	}
	frameLoaded := `(() => { const f = document.getElementById("frame"); return f.complete && f.naturalWidth === 1280; })()`

	if err := chromedp.Run(ctx,
		chromedp.Navigate(ts.URL+"/"),
		chromedp.WaitVisible("#frame", chromedp.ByID),
		poll(`document.title === "Talk (1/3)"`),
		poll(frameLoaded),
	); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key   string
		want  int
		title string
	}{
		{kb.ArrowRight, 1, "Talk (2/3)"},
		{kb.End, 2, "Talk (3/3)"},
		{kb.ArrowLeft, 1, "Talk (2/3)"},
		{kb.Home, 0, "Talk (1/3)"},
	}
	for _, tt := range tests {
		before := p.State().Version
		if err := chromedp.Run(ctx,
			chromedp.KeyEvent(tt.key),
			poll(`document.title === "`+tt.title+`"`),
			poll(`document.getElementById("frame").src.includes("v=")`),
			poll(frameLoaded),
		); err != nil {
			t.Fatalf("%q: %v", tt.key, err)
		}
		s := p.State()
		if s.Slide != tt.want || s.Version <= before {
			t.Errorf("%q: state = %+v, want slide %d after version %d", tt.key, s, tt.want, before)
		}
	}
}
