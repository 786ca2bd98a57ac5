package slider

// Slide is a compiled slide: its display list and the first runnable code block, if any.
type Slide struct {
	boxes []DrawBox
	code  *ExecutableCode
}

// NewSlide returns a Slide. code may be nil.
func NewSlide(boxes []DrawBox, code *ExecutableCode) *Slide {
	return &Slide{boxes: boxes, code: code}
}

// Boxes returns the display list in drawing order.
func (s *Slide) Boxes() []DrawBox {
	return s.boxes
}

// Code returns the slide's executable code or nil.
func (s *Slide) Code() *ExecutableCode {
	return s.code
}

// AddTextBox appends b to the display list.
func (s *Slide) AddTextBox(b *TextBox) {
	s.boxes = append(s.boxes, b)
}

// Title returns the text of the first title box of the slide, or "".
func (s *Slide) Title() string {
	for _, b := range s.boxes {
		tb, ok := b.(*TextBox)
		if !ok || tb.Style.Kind != StyleTitle || len(tb.Lines) == 0 {
			continue
		}
		return tb.Lines[0].String()
	}
	return ""
}

// images returns the image boxes of the slide.
func (s *Slide) images() []*ImageBox {
	var images []*ImageBox
	for _, b := range s.boxes {
		if ib, ok := b.(*ImageBox); ok {
			images = append(images, ib)
		}
	}
	return images
}

// draw draws the boxes top to bottom. hpos computes a box's left edge from its width.
func (s *Slide) draw(p Painter, hpos func(width float64) float64) {
	var vpos float64
	for _, b := range s.boxes {
		vpos = b.Draw(p, hpos(b.WidthWithPadding(p)), vpos)
	}
}
