// Package present hosts a deck for a browser: one goroutine owns the deck and renders frames,
// browsers fetch the frames over HTTP and send navigation commands over a WebSocket.
package present

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/slider"
	"github.com/k1LoW/slider/config"
	"github.com/k1LoW/slider/render"
	"golang.org/x/sync/errgroup"
)

type Command string

const (
	CommandNext  Command = "next"
	CommandPrev  Command = "prev"
	CommandRun   Command = "run"
	CommandFirst Command = "first"
	CommandLast  Command = "last"
)

func (c Command) valid() bool {
	switch c {
	case CommandNext, CommandPrev, CommandRun, CommandFirst, CommandLast:
		return true
	default:
		return false
	}
}

// State is sent to every client after each change.
type State struct {
	Version uint64 `json:"version"`
	Slide   int    `json:"slide"`
	Total   int    `json:"total"`
}

// Loader returns a freshly loaded deck.
type Loader func(ctx context.Context) (*slider.Deck, error)

type Presenter struct {
	deck     *slider.Deck
	renderer *render.Renderer
	loader   Loader
	watch    string
	fps      int
	logger   *slog.Logger
	upgrader websocket.Upgrader

	commands chan Command
	reloads  chan struct{}
	done     chan struct{}

	mu      sync.RWMutex
	frame   []byte
	title   string
	state   State
	clients map[string]*client
}

type Option func(*Presenter) error

func WithLogger(logger *slog.Logger) Option {
	return func(p *Presenter) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// WithFPS sets the frame loop rate.
func WithFPS(fps int) Option {
	return func(p *Presenter) error {
		if fps <= 0 {
			return fmt.Errorf("invalid fps: %d", fps)
		}
		p.fps = fps
		return nil
	}
}

// WithLoader sets how the deck is reloaded.
func WithLoader(loader Loader) Option {
	return func(p *Presenter) error {
		p.loader = loader
		return nil
	}
}

// WithWatch reloads the deck whenever the file at path is written.
// It requires WithLoader.
func WithWatch(path string) Option {
	return func(p *Presenter) error {
		p.watch = path
		return nil
	}
}

// New renders the first frame of d.
func New(d *slider.Deck, r *render.Renderer, opts ...Option) (_ *Presenter, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	p := &Presenter{
		deck:     d,
		renderer: r,
		fps:      config.DefaultFPS,
		logger:   slog.New(slog.DiscardHandler),
		commands: make(chan Command),
		reloads:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		clients:  map[string]*client{},
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.watch != "" && p.loader == nil {
		return nil, fmt.Errorf("watching %s requires a loader", p.watch)
	}
	if err := p.render(); err != nil {
		return nil, err
	}
	return p, nil
}

// State returns the state of the latest frame.
func (p *Presenter) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Frame returns the latest frame encoded as PNG.
func (p *Presenter) Frame() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.frame
}

// Send queues cmd for the frame loop. It blocks until the loop takes it or ctx is done.
func (p *Presenter) Send(ctx context.Context, cmd Command) error {
	if !cmd.valid() {
		return fmt.Errorf("unknown command: %q", cmd)
	}
	select {
	case p.commands <- cmd:
		return nil
	case <-p.done:
		return fmt.Errorf("presenter is stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload asks the frame loop to reload the deck.
func (p *Presenter) Reload() {
	select {
	case p.reloads <- struct{}{}:
	default:
	}
}

// Run runs the frame loop, and the file watcher when configured, until ctx is done.
func (p *Presenter) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if p.watch != "" {
		w, err := newWatcher(p.watch, p.Reload, p.logger)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return w.run(ctx)
		})
	}
	g.Go(func() error {
		return p.loop(ctx)
	})
	return g.Wait()
}

// Serve runs the frame loop and serves Handler on ln until ctx is done.
func (p *Presenter) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           p.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.Run(ctx)
	})
	g.Go(func() error {
		p.logger.Info("listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return errors.WithStack(err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (p *Presenter) loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(p.fps))
	defer ticker.Stop()
	defer close(p.done)
	last := time.Now()
	for {
		dirty := false
		select {
		case <-ctx.Done():
			p.closeClients()
			return nil
		case cmd := <-p.commands:
			dirty = p.apply(ctx, cmd)
		case <-p.reloads:
			dirty = p.reload(ctx)
		case now := <-ticker.C:
			before := p.deck.Active()
			p.deck.Tick(now.Sub(last))
			last = now
			dirty = p.deck.Active() != before
		}
		if !dirty {
			continue
		}
		if err := p.render(); err != nil {
			p.logger.Error("failed to render frame", slog.String("error", err.Error()))
		}
	}
}

func (p *Presenter) apply(ctx context.Context, cmd Command) bool {
	before := p.deck.Active()
	switch cmd {
	case CommandNext:
		p.deck.Next()
	case CommandPrev:
		p.deck.Prev()
	case CommandFirst:
		p.deck.Goto(0)
	case CommandLast:
		p.deck.Goto(p.deck.Len() - 1)
	case CommandRun:
		ok, err := p.deck.RunActiveCode(ctx)
		if err != nil {
			p.logger.Error("failed to run code", slog.Int("page", before+1), slog.String("error", err.Error()))
			return false
		}
		return ok
	}
	return p.deck.Active() != before
}

func (p *Presenter) reload(ctx context.Context) bool {
	d, err := p.loader(ctx)
	if err != nil {
		p.logger.Error("failed to reload deck", slog.String("error", err.Error()))
		return false
	}
	d.Goto(p.deck.Active())
	p.deck = d
	p.logger.Info("reloaded deck", slog.Int("slides", d.Len()))
	return true
}

func (p *Presenter) render() error {
	active := p.deck.Active()
	img := p.renderer.Frame(func(painter slider.Painter) {
		p.deck.DrawSlide(painter, active)
	})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.WithStack(err)
	}
	p.mu.Lock()
	p.frame = buf.Bytes()
	p.title = p.deck.Title()
	p.state = State{
		Version: p.state.Version + 1,
		Slide:   active,
		Total:   p.deck.Len(),
	}
	state := p.state
	clients := make([]*client, 0, len(p.clients))
	for _, c := range p.clients {
		clients = append(clients, c)
	}
	p.mu.Unlock()

	for _, c := range clients {
		if err := c.send(state); err != nil {
			p.logger.Warn("failed to send state", slog.String("client", c.id), slog.String("error", err.Error()))
		}
	}
	return nil
}
