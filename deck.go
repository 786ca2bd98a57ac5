package slider

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/k1LoW/slider/config"
)

// Deck holds the compiled slides and the navigation state.
// A Deck is not safe for concurrent use; it is owned by one rendering loop.
type Deck struct {
	slides       []*Slide
	theme        *config.Theme
	codeBoxes    *CodeBoxBuilder
	background   image.Image
	automatic    time.Duration
	automaticSet bool
	active       int
	elapsed      time.Duration
	title        string
	interpreters map[string]string
	codeTimeout  time.Duration
	logger       *slog.Logger
}

type Option func(*Deck) error

func WithLogger(logger *slog.Logger) Option {
	return func(d *Deck) error {
		if logger != nil {
			d.logger = logger
		}
		return nil
	}
}

// WithAutomatic sets the auto-advance duration. Zero or negative means manual navigation.
func WithAutomatic(automatic time.Duration) Option {
	return func(d *Deck) error {
		d.automatic = automatic
		d.automaticSet = true
		return nil
	}
}

// WithBackground sets the background image drawn under every slide.
func WithBackground(img image.Image) Option {
	return func(d *Deck) error {
		d.background = img
		return nil
	}
}

func WithTitle(title string) Option {
	return func(d *Deck) error {
		d.title = title
		return nil
	}
}

// WithInterpreters overrides the command templates of supported languages.
// Entries for other languages are ignored.
func WithInterpreters(interpreters map[string]string) Option {
	return func(d *Deck) error {
		d.interpreters = interpreters
		return nil
	}
}

// WithCodeTimeout limits each code run. Zero means no limit.
func WithCodeTimeout(timeout time.Duration) Option {
	return func(d *Deck) error {
		if timeout < 0 {
			return fmt.Errorf("invalid code timeout: %s", timeout)
		}
		d.codeTimeout = timeout
		return nil
	}
}

// New returns a Deck of slides. The first slide is active.
func New(slides []*Slide, theme *config.Theme, opts ...Option) (*Deck, error) {
	d, err := newDeck(theme, opts...)
	if err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		return nil, errors.New("no slides")
	}
	d.slides = slides
	return d, nil
}

func newDeck(theme *config.Theme, opts ...Option) (*Deck, error) {
	if theme == nil {
		theme = config.DefaultTheme()
	}
	d := &Deck{
		theme:     theme,
		codeBoxes: NewCodeBoxBuilder(theme),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// Active returns the index of the active slide.
func (d *Deck) Active() int {
	return d.active
}

// Slide returns the i-th slide.
func (d *Deck) Slide(i int) (*Slide, error) {
	if i < 0 || i >= len(d.slides) {
		return nil, fmt.Errorf("slide index out of range: %d (total %d)", i, len(d.slides))
	}
	return d.slides[i], nil
}

// Slides returns every slide.
func (d *Deck) Slides() []*Slide {
	return d.slides
}

// Elapsed returns the time since the active slide became active.
func (d *Deck) Elapsed() time.Duration {
	return d.elapsed
}

// Title returns the deck title.
func (d *Deck) Title() string {
	return d.title
}

// Theme returns the deck theme.
func (d *Deck) Theme() *config.Theme {
	return d.theme
}

// Next activates the next slide. It is a no-op on the last slide.
func (d *Deck) Next() {
	if d.active < len(d.slides)-1 {
		d.elapsed = 0
		d.active++
	}
}

// Prev activates the previous slide. It is a no-op on the first slide.
func (d *Deck) Prev() {
	if d.active > 0 {
		d.elapsed = 0
		d.active--
	}
}

// Goto activates slide i, clamped to the valid range.
func (d *Deck) Goto(i int) {
	i = max(0, min(i, len(d.slides)-1))
	if i != d.active {
		d.elapsed = 0
		d.active = i
	}
}

// Tick advances the clock by delta and auto-advances once the active slide has been shown longer than the automatic duration.
func (d *Deck) Tick(delta time.Duration) {
	if d.automatic > 0 && d.elapsed > d.automatic {
		d.Next()
		return
	}
	d.elapsed += delta
}

// Draw ticks the clock and draws the active slide.
func (d *Deck) Draw(p Painter, delta time.Duration) {
	d.Tick(delta)
	d.DrawSlide(p, d.active)
}

// DrawSlide draws slide i without touching the navigation state.
func (d *Deck) DrawSlide(p Painter, i int) {
	if i < 0 || i >= len(d.slides) {
		return
	}
	vw, vh := p.Size()
	p.DrawRect(0, 0, vw, vh, d.theme.BackgroundColor)
	if d.background != nil {
		p.DrawImage(d.background, 0, 0, vw, vh)
	}
	d.slides[i].draw(p, func(width float64) float64 {
		return d.horizontalPosition(vw, width)
	})
	d.logger.Debug("rendered slide", slog.Int("page", i+1))
}

func (d *Deck) horizontalPosition(viewportWidth, width float64) float64 {
	switch d.theme.Align {
	case config.AlignLeft:
		return d.theme.HorizontalOffset
	case config.AlignRight:
		return viewportWidth - d.theme.HorizontalOffset - width
	default:
		return viewportWidth/2 - width/2
	}
}

// RunActiveCode runs the active slide's code and appends its output as a new text box.
// Every call appends another box. It reports whether a box was appended.
func (d *Deck) RunActiveCode(ctx context.Context) (bool, error) {
	s := d.slides[d.active]
	code := s.Code()
	if code == nil {
		return false, nil
	}
	if d.codeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.codeTimeout)
		defer cancel()
	}
	d.logger.Info("running code", slog.Int("page", d.active+1), slog.String("language", code.Language))
	out, err := code.Execute(ctx)
	if errors.Is(err, ErrCodeExecutionUnsupported) {
		return false, nil
	}
	if err != nil {
		d.logger.Error("failed to run code", slog.Int("page", d.active+1), slog.String("error", err.Error()))
		return false, err
	}
	s.AddTextBox(d.codeBoxes.Build("", out))
	d.logger.Info("ran code", slog.Int("page", d.active+1), slog.Int("bytes", len(out)))
	return true, nil
}
