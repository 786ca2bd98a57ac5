package slider

import (
	"image"
	"image/color"
)

// DrawBox is an element of a slide's display list.
type DrawBox interface {
	// WidthWithPadding returns the drawn width of the box including its padding.
	WidthWithPadding(p Painter) float64
	// Draw draws the box at hpos with its top at vpos and returns the next vertical position.
	Draw(p Painter, hpos, vpos float64) float64
}

var (
	_ DrawBox = (*TextBox)(nil)
	_ DrawBox = (*ImageBox)(nil)
)

// StyleKind selects the draw-time treatment of a TextBox.
type StyleKind int

const (
	StyleStandard StyleKind = iota
	StyleTitle
	StyleBlockquote
)

func (k StyleKind) String() string {
	switch k {
	case StyleTitle:
		return "title"
	case StyleBlockquote:
		return "blockquote"
	default:
		return "standard"
	}
}

// TextBoxStyle is a style tag. Size, Font and Color are used by StyleBlockquote only.
type TextBoxStyle struct {
	Kind  StyleKind
	Size  float64
	Font  Font
	Color color.Color
}

const quoteMark = "“"

// TextBox is a stack of text lines with an optional background.
type TextBox struct {
	Lines      []*TextLine
	Offset     float64     // vertical offset after the box, also used as inner padding
	Margin     float64     // horizontal offset from the viewport edges
	Background color.Color // nil means transparent
	Style      TextBoxStyle
}

// NewTextBox returns a TextBox.
func NewTextBox(lines []*TextLine, offset, margin float64, background color.Color, style TextBoxStyle) *TextBox {
	return &TextBox{
		Lines:      lines,
		Offset:     offset,
		Margin:     margin,
		Background: background,
		Style:      style,
	}
}

func (b *TextBox) leftPadding() float64 {
	if b.Style.Kind == StyleBlockquote {
		return b.Offset + b.Style.Size/2
	}
	return b.Offset
}

func (b *TextBox) rows(p Painter) []*row {
	vw, _ := p.Size()
	maxWidth := max(vw-2*b.Margin-b.leftPadding()-b.Offset, 1)
	var rows []*row
	for _, l := range b.Lines {
		rows = append(rows, l.wrap(p, maxWidth)...)
	}
	return rows
}

func contentWidth(rows []*row) float64 {
	var w float64
	for _, r := range rows {
		w = max(w, r.width)
	}
	return w
}

func (b *TextBox) WidthWithPadding(p Painter) float64 {
	return contentWidth(b.rows(p)) + b.leftPadding() + b.Offset
}

// Height returns the drawn height of the box including its padding.
func (b *TextBox) Height(p Painter) float64 {
	h := 2 * b.Offset
	for _, r := range b.rows(p) {
		h += r.height
	}
	return h
}

func (b *TextBox) Draw(p Painter, hpos, vpos float64) float64 {
	top := vpos
	if b.Style.Kind == StyleTitle {
		top += b.Offset
	}
	rows := b.rows(p)
	left := b.leftPadding()
	inner := contentWidth(rows)
	width := inner + left + b.Offset
	height := 2 * b.Offset
	for _, r := range rows {
		height += r.height
	}
	if b.Background != nil {
		p.DrawRect(hpos, top, width, height, b.Background)
	}
	if b.Style.Kind == StyleBlockquote {
		p.DrawText(quoteMark, hpos+b.Offset/2, top, b.Style.Font, b.Style.Size, b.Style.Color)
	}
	y := top + b.Offset
	for _, r := range rows {
		x := hpos + left
		switch r.align {
		case AlignLeft:
		case AlignRight:
			x += inner - r.width
		default:
			x += (inner - r.width) / 2
		}
		for _, pc := range r.pieces {
			tp := pc.partial
			// line boxes share the row bottom, glyphs are centered in their line box
			py := y + r.height - tp.height() + (tp.height()-tp.Size)/2
			p.DrawText(pc.text, x, py, tp.Font, tp.Size, tp.Color)
			x += pc.width
		}
		y += r.height
	}
	return top + height + b.Offset
}

// ImageBox is an image loaded before the first frame.
// An ImageBox whose image could not be loaded is skipped when drawn.
type ImageBox struct {
	Path   string
	Offset float64
	Margin float64
	img    image.Image
}

// NewImageBox returns an ImageBox without a loaded image.
func NewImageBox(path string, offset, margin float64) *ImageBox {
	return &ImageBox{Path: path, Offset: offset, Margin: margin}
}

// SetImage sets the loaded image.
func (b *ImageBox) SetImage(img image.Image) {
	b.img = img
}

// Image returns the loaded image or nil.
func (b *ImageBox) Image() image.Image {
	return b.img
}

// Resolved reports whether the image is loaded.
func (b *ImageBox) Resolved() bool {
	return b.img != nil
}

// size returns the image size scaled down to fit the viewport minus the margins.
func (b *ImageBox) size(p Painter) (float64, float64) {
	if b.img == nil {
		return 0, 0
	}
	bounds := b.img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	vw, vh := p.Size()
	scale := min(1, max(vw-2*b.Margin, 1)/w, max(vh-2*b.Margin, 1)/h)
	return w * scale, h * scale
}

func (b *ImageBox) WidthWithPadding(p Painter) float64 {
	w, _ := b.size(p)
	return w
}

func (b *ImageBox) Draw(p Painter, hpos, vpos float64) float64 {
	if b.img == nil {
		return vpos
	}
	w, h := b.size(p)
	if w == 0 || h == 0 {
		return vpos
	}
	p.DrawImage(b.img, hpos, vpos+b.Offset, w, h)
	return vpos + b.Offset + h
}
