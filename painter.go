package slider

import (
	"image"
	"image/color"
)

// Font selects one of the four theme faces.
type Font int

const (
	FontText Font = iota
	FontBold
	FontItalic
	FontCode
)

func (f Font) String() string {
	switch f {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontCode:
		return "code"
	default:
		return "text"
	}
}

// Painter measures and draws on one frame.
// Coordinates are in viewport pixels with the origin at the top left corner.
type Painter interface {
	// Size returns the viewport size.
	Size() (width, height float64)
	// MeasureText returns the advance width of text.
	MeasureText(text string, font Font, size float64) float64
	// DrawText draws a single line of text whose em box starts at (x, y).
	DrawText(text string, x, y float64, font Font, size float64, c color.Color)
	// DrawRect fills a rectangle.
	DrawRect(x, y, w, h float64, c color.Color)
	// DrawImage draws img scaled to w x h.
	DrawImage(img image.Image, x, y, w, h float64)
}
