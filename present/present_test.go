package present

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/k1LoW/slider"
	"github.com/k1LoW/slider/config"
	"github.com/k1LoW/slider/render"
)

var (
	rendererOnce sync.Once
	renderer     *render.Renderer
	rendererErr  error
)

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	rendererOnce.Do(func() {
		renderer, rendererErr = render.New(config.DefaultTheme())
	})
	if rendererErr != nil {
		t.Fatal(rendererErr)
	}
	return renderer
}

func writeDeck(t *testing.T, path, src string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(src), 0600); err != nil {
		t.Fatal(err)
	}
}

func loader(path string) Loader {
	return func(ctx context.Context) (*slider.Deck, error) {
		return slider.Load(ctx, path, config.DefaultTheme())
	}
}

// start runs the frame loop and an httptest server until the test ends.
func start(t *testing.T, path string, opts ...Option) (*Presenter, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	d, err := loader(path)(ctx)
	if err != nil {
		t.Fatal(err)
	}
	opts = append([]Option{WithLoader(loader(path)), WithFPS(50)}, opts...)
	p, err := New(d, testRenderer(t), opts...)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx)
	}()
	ts := httptest.NewServer(p.Handler())
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Error(err)
		}
		ts.Close()
	})
	return p, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// waitState reads states until cond holds.
func waitState(t *testing.T, conn *websocket.Conn, cond func(State) bool) State {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		if err := conn.SetReadDeadline(deadline); err != nil {
			t.Fatal(err)
		}
		var s State
		if err := conn.ReadJSON(&s); err != nil {
			t.Fatal(err)
		}
		if cond(s) {
			return s
		}
	}
}

func TestCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, "# One\n\n---\n\n# Two\n\n---\n\n# Three\n")
	_, ts := start(t, path)
	conn := dial(t, ts)

	first := waitState(t, conn, func(State) bool { return true })
	if first.Slide != 0 || first.Total != 3 || first.Version == 0 {
		t.Fatalf("initial state = %+v", first)
	}

	tests := []struct {
		cmd  Command
		want int
	}{
		{CommandNext, 1},
		{CommandLast, 2},
		{CommandPrev, 1},
		{CommandFirst, 0},
	}
	version := first.Version
	for _, tt := range tests {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.cmd)); err != nil {
			t.Fatal(err)
		}
		s := waitState(t, conn, func(s State) bool { return s.Version > version })
		if s.Slide != tt.want {
			t.Errorf("%s: slide = %d, want %d", tt.cmd, s.Slide, tt.want)
		}
		version = s.Version
	}
}

func TestSendUnknownCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, "# One\n")
	p, _ := start(t, path)
	if err := p.Send(context.Background(), "jump"); err == nil {
		t.Error("want error")
	}
}

func TestHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, "---\ntitle: My talk\n---\n# One\n")
	_, ts := start(t, path)

	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "<title>My talk</title>") {
		t.Errorf("page does not carry the title:\n%s", b)
	}

	res, err = http.Get(ts.URL + "/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if ct := res.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1280 || b.Dy() != 720 {
		t.Errorf("bounds = %v", b)
	}

	res, err = http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", res.StatusCode)
	}
}

func TestReloadKeepsActiveSlide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, "# One\n\n---\n\n# Two\n\n---\n\n# Three\n")
	p, ts := start(t, path)
	conn := dial(t, ts)
	waitState(t, conn, func(State) bool { return true })

	if err := p.Send(context.Background(), CommandLast); err != nil {
		t.Fatal(err)
	}
	waitState(t, conn, func(s State) bool { return s.Slide == 2 })

	writeDeck(t, path, "# One\n\n---\n\n# Two\n")
	p.Reload()
	s := waitState(t, conn, func(s State) bool { return s.Total == 2 })
	if s.Slide != 1 {
		t.Errorf("slide = %d, want 1", s.Slide)
	}
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	writeDeck(t, path, "# One\n")
	_, ts := start(t, path, WithWatch(path))
	conn := dial(t, ts)
	waitState(t, conn, func(State) bool { return true })

	writeDeck(t, path, "# One\n\n---\n\n# Two\n")
	s := waitState(t, conn, func(s State) bool { return s.Total == 2 })
	if s.Slide != 0 {
		t.Errorf("slide = %d", s.Slide)
	}
}

func TestNewOptions(t *testing.T) {
	d, err := slider.New([]*slider.Slide{slider.NewSlide(nil, nil)}, config.DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	r := testRenderer(t)
	if _, err := New(d, r, WithFPS(0)); err == nil {
		t.Error("fps 0: want error")
	}
	if _, err := New(d, r, WithWatch("deck.md")); err == nil {
		t.Error("watch without loader: want error")
	}
	p, err := New(d, r)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.State(); got.Version != 1 || got.Total != 1 {
		t.Errorf("State() = %+v", got)
	}
	if !bytes.HasPrefix(p.Frame(), []byte("\x89PNG")) {
		t.Error("no first frame")
	}
}
