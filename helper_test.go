package slider

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/k1LoW/slider/config"
)

const (
	viewportWidth  = 1280
	viewportHeight = 720
)

// op is a recorded drawing call of fakePainter.
type op struct {
	kind string // text, rect or image
	text string
	x, y float64
	w, h float64
	font Font
	size float64
}

// fakePainter advances every rune by half of the font size and records the calls.
type fakePainter struct {
	width, height float64
	ops           []op
}

func newFakePainter() *fakePainter {
	return &fakePainter{width: viewportWidth, height: viewportHeight}
}

func (p *fakePainter) Size() (float64, float64) {
	return p.width, p.height
}

func (p *fakePainter) MeasureText(text string, _ Font, size float64) float64 {
	return float64(len([]rune(text))) * size / 2
}

func (p *fakePainter) DrawText(text string, x, y float64, font Font, size float64, _ color.Color) {
	p.ops = append(p.ops, op{kind: "text", text: text, x: x, y: y, font: font, size: size})
}

func (p *fakePainter) DrawRect(x, y, w, h float64, _ color.Color) {
	p.ops = append(p.ops, op{kind: "rect", x: x, y: y, w: w, h: h})
}

func (p *fakePainter) DrawImage(_ image.Image, x, y, w, h float64) {
	p.ops = append(p.ops, op{kind: "image", x: x, y: y, w: w, h: h})
}

func (p *fakePainter) texts() []string {
	var texts []string
	for _, o := range p.ops {
		if o.kind == "text" {
			texts = append(texts, o.text)
		}
	}
	return texts
}

// testTheme returns a theme with round numbers.
func testTheme() *config.Theme {
	t := config.DefaultTheme()
	t.FontSizeText = 20
	t.FontSizeHeaderSlides = 30
	t.FontSizeHeaderTitle = 40
	t.LineHeight = 1.5
	t.HorizontalOffset = 40
	t.VerticalOffset = 10
	t.Bullet = "- "
	return t
}

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	th := testTheme()
	return NewCompiler(th, NewCodeBoxBuilder(th), nil)
}

// writePNG writes a w x h PNG into dir and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, buf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	return p
}
