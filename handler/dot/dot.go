package dot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
)

var (
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

var _ slog.Handler = (*Handler)(nil)

// Handler prints one mark per progress record and spins while code runs or requests are retried.
type Handler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	stdout  io.Writer
	state   *state
}

type state struct {
	mu     sync.Mutex
	prefix []byte
}

type Option func(*Handler)

// WithWriter replaces the colorable stdout.
func WithWriter(w io.Writer) Option {
	return func(h *Handler) {
		h.stdout = w
	}
}

func New(h slog.Handler, opts ...Option) (_ *Handler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	d := &Handler{
		handler: h,
		stdout:  colorable.NewColorableStdout(),
		state:   &state{},
	}
	for _, opt := range opts {
		opt(d)
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(d.stdout))
	if err := s.Color("yellow"); err != nil {
		return nil, err
	}
	s.Start()
	s.Disable()
	d.spinner = s
	return d, nil
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	if r.Message == "running code" || strings.HasPrefix(r.Message, "retrying") {
		if !h.spinner.Enabled() {
			h.spinner.Enable()
		}
		return nil
	}
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	if h.spinner.Enabled() {
		h.spinner.Disable()
		_, _ = h.stdout.Write(h.state.prefix)
	}
	switch {
	case r.Message == "exported page":
		return h.write([]byte(yellow(".")))
	case r.Message == "loaded image":
		return h.write([]byte(cyan("*")))
	case strings.Contains(r.Message, "failed to"):
		return h.write([]byte(red("!")))
	case r.Message == "export completed":
		_, _ = h.stdout.Write([]byte("\n"))
		h.state.prefix = nil
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, stdout: h.stdout, state: h.state}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{handler: h.handler.WithGroup(name), spinner: h.spinner, stdout: h.stdout, state: h.state}
}

// Stop stops the spinner goroutine.
func (h *Handler) Stop() {
	h.spinner.Stop()
}

func (h *Handler) write(s []byte) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	_, err = h.stdout.Write(s)
	if err != nil {
		return err
	}
	h.state.prefix = append(h.state.prefix, s...)
	return nil
}
