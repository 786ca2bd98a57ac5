// Package render draws decks with github.com/tdewolff/canvas.
// One canvas unit (mm) is one viewport pixel.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/slider"
	"github.com/k1LoW/slider/config"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"
)

// ptPerUnit converts a size in viewport pixels to the point size canvas expects.
const ptPerUnit = 72.0 / 25.4

var _ slider.Painter = (*Painter)(nil)

// Renderer holds the loaded font families of a theme.
type Renderer struct {
	width, height float64
	families      map[slider.Font]*canvas.FontFamily
	logger        *slog.Logger

	mu    sync.Mutex
	faces map[faceKey]*canvas.FontFace
}

type faceKey struct {
	font  slider.Font
	size  float64
	color color.RGBA
}

type Option func(*Renderer)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New loads the fonts of theme. A font file that cannot be loaded is an error.
func New(theme *config.Theme, opts ...Option) (_ *Renderer, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if theme == nil {
		theme = config.DefaultTheme()
	}
	r := &Renderer{
		width:    theme.Width,
		height:   theme.Height,
		families: map[slider.Font]*canvas.FontFamily{},
		faces:    map[faceKey]*canvas.FontFace{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	sources := []struct {
		font    slider.Font
		path    string
		builtin []byte
	}{
		{slider.FontText, theme.Font, lmroman10regular.TTF},
		{slider.FontBold, theme.FontBold, lmroman10bold.TTF},
		{slider.FontItalic, theme.FontItalic, lmroman10italic.TTF},
		{slider.FontCode, theme.FontCode, lmmono10regular.TTF},
	}
	for _, src := range sources {
		data := src.builtin
		if src.path != "" {
			data, err = os.ReadFile(src.path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s font: %w", src.font, err)
			}
		}
		family := canvas.NewFontFamily(src.font.String())
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("failed to load %s font %s: %w", src.font, src.path, err)
		}
		r.families[src.font] = family
	}
	return r, nil
}

// Size returns the viewport size.
func (r *Renderer) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Renderer) face(font slider.Font, size float64, c color.Color) *canvas.FontFace {
	key := faceKey{font: font, size: size, color: color.RGBAModel.Convert(c).(color.RGBA)}
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.faces[key]; ok {
		return f
	}
	family, ok := r.families[font]
	if !ok {
		family = r.families[slider.FontText]
	}
	f := family.Face(size*ptPerUnit, key.color, canvas.FontRegular, canvas.FontNormal)
	r.faces[key] = f
	return f
}

// Canvas runs fn on a new viewport sized canvas.
func (r *Renderer) Canvas(fn func(p slider.Painter)) *canvas.Canvas {
	c := canvas.New(r.width, r.height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	fn(&Painter{r: r, ctx: ctx})
	return c
}

// Frame rasterizes one frame drawn by fn.
func (r *Renderer) Frame(fn func(p slider.Painter)) *image.RGBA {
	return rasterizer.Draw(r.Canvas(fn), canvas.DPMM(1.0), canvas.DefaultColorSpace)
}

// WritePNG encodes slide i of d as PNG.
func (r *Renderer) WritePNG(w io.Writer, d *slider.Deck, i int) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if _, err := d.Slide(i); err != nil {
		return err
	}
	img := r.Frame(func(p slider.Painter) {
		d.DrawSlide(p, i)
	})
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode slide %d: %w", i+1, err)
	}
	r.logger.Info("exported page", slog.Int("page", i+1))
	return nil
}

// Info is the PDF document information.
type Info struct {
	Title  string
	Author string
}

// WritePDF writes the slides at the given indices of d, one per page.
// All slides are written when indices is empty.
func (r *Renderer) WritePDF(w io.Writer, d *slider.Deck, indices []int, info Info) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if len(indices) == 0 {
		for i := range d.Len() {
			indices = append(indices, i)
		}
	}
	for _, i := range indices {
		if _, err := d.Slide(i); err != nil {
			return err
		}
	}
	writer := pdf.New(w, r.width, r.height, nil)
	writer.SetInfo(info.Title, "", "", info.Author, "slider")
	for n, i := range indices {
		if n > 0 {
			writer.NewPage(r.width, r.height)
		}
		c := r.Canvas(func(p slider.Painter) {
			d.DrawSlide(p, i)
		})
		c.RenderTo(writer)
		r.logger.Info("exported page", slog.Int("page", i+1))
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// Painter draws on one canvas.
type Painter struct {
	r   *Renderer
	ctx *canvas.Context
}

func (p *Painter) Size() (float64, float64) {
	return p.r.Size()
}

func (p *Painter) MeasureText(text string, font slider.Font, size float64) float64 {
	if text == "" {
		return 0
	}
	return p.r.face(font, size, color.Black).TextWidth(text)
}

func (p *Painter) DrawText(text string, x, y float64, font slider.Font, size float64, c color.Color) {
	if text == "" {
		return
	}
	face := p.r.face(font, size, c)
	line := canvas.NewTextLine(face, text, canvas.Left)
	p.ctx.DrawText(x, y+face.Metrics().Ascent, line)
}

func (p *Painter) DrawRect(x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	p.ctx.SetFillColor(c)
	p.ctx.SetStrokeColor(color.RGBA{})
	p.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// DrawImage scales img to w x h pixels before drawing it, so the aspect ratio is not kept.
func (p *Painter) DrawImage(img image.Image, x, y, w, h float64) {
	iw, ih := int(w+0.5), int(h+0.5)
	if img == nil || iw <= 0 || ih <= 0 {
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, iw, ih))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
	p.ctx.DrawImage(x, y, scaled, canvas.DPMM(1.0))
}
