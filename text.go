package slider

import (
	"image/color"
	"strings"
	"unicode"

	"github.com/k1LoW/slider/config"
)

// Align is the horizontal alignment of a line inside its box.
type Align string

const (
	AlignLeft   Align = config.AlignLeft
	AlignRight  Align = config.AlignRight
	AlignCenter Align = config.AlignCenter
)

// TextPartial is a run of text sharing one style.
type TextPartial struct {
	Text       string
	Font       Font
	Size       float64
	Color      color.Color
	LineHeight float64
}

// height is the line box height of the partial.
func (tp *TextPartial) height() float64 {
	return tp.Size * tp.LineHeight
}

// TextLine is one logical line. It may wrap into several rows when drawn.
type TextLine struct {
	Align    Align
	Partials []*TextPartial
}

// String returns the plain text of the line.
func (l *TextLine) String() string {
	var b strings.Builder
	for _, p := range l.Partials {
		b.WriteString(p.Text)
	}
	return b.String()
}

// piece is a measured word (with its trailing spaces) of a partial.
type piece struct {
	partial *TextPartial
	text    string
	width   float64
}

// row is one wrapped, measured visual line.
type row struct {
	align  Align
	pieces []piece
	width  float64
	height float64
}

// wrap splits the line into rows no wider than maxWidth.
// A word wider than maxWidth gets a row of its own.
func (l *TextLine) wrap(p Painter, maxWidth float64) []*row {
	var (
		rows []*row
		cur  = &row{align: l.Align}
	)
	flush := func() {
		if len(cur.pieces) == 0 {
			return
		}
		last := &cur.pieces[len(cur.pieces)-1]
		trimmed := strings.TrimRightFunc(last.text, unicode.IsSpace)
		if trimmed != last.text && (trimmed != "" || len(cur.pieces) > 1) {
			cur.width -= last.width
			last.text = trimmed
			last.width = p.MeasureText(trimmed, last.partial.Font, last.partial.Size)
			cur.width += last.width
		}
		rows = append(rows, cur)
		cur = &row{align: l.Align}
	}
	for _, tp := range l.Partials {
		for _, w := range splitWords(tp.Text) {
			// leading spaces are kept on the first row only, e.g. code indentation
			if len(cur.pieces) == 0 && len(rows) > 0 {
				w = strings.TrimLeftFunc(w, unicode.IsSpace)
				if w == "" {
					continue
				}
			}
			width := p.MeasureText(w, tp.Font, tp.Size)
			visible := p.MeasureText(strings.TrimRightFunc(w, unicode.IsSpace), tp.Font, tp.Size)
			if len(cur.pieces) > 0 && cur.width+visible > maxWidth {
				flush()
				w = strings.TrimLeftFunc(w, unicode.IsSpace)
				if w == "" {
					continue
				}
				width = p.MeasureText(w, tp.Font, tp.Size)
			}
			cur.pieces = append(cur.pieces, piece{partial: tp, text: w, width: width})
			cur.width += width
			cur.height = max(cur.height, tp.height())
		}
	}
	flush()
	return rows
}

// splitWords splits s after each run of spaces, keeping the spaces with the preceding word.
func splitWords(s string) []string {
	var (
		words []string
		start int
		space bool
	)
	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if space && !isSpace {
			words = append(words, s[start:i])
			start = i
		}
		space = isSpace
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}
