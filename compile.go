package slider

import (
	"fmt"
	"image/color"

	"github.com/k1LoW/slider/config"
	"github.com/k1LoW/slider/md"
)

// Compiler turns the block groups of a document into slides.
type Compiler struct {
	theme        *config.Theme
	codeBoxes    *CodeBoxBuilder
	interpreters map[string]string
}

// NewCompiler returns a Compiler. interpreters overrides the command template of supported languages.
func NewCompiler(theme *config.Theme, codeBoxes *CodeBoxBuilder, interpreters map[string]string) *Compiler {
	return &Compiler{
		theme:        theme,
		codeBoxes:    codeBoxes,
		interpreters: interpreters,
	}
}

// Compile compiles every group into a slide. An empty group is an empty slide.
func (c *Compiler) Compile(groups [][]md.Block) []*Slide {
	slides := make([]*Slide, 0, len(groups))
	for _, blocks := range groups {
		slides = append(slides, c.CompileSlide(blocks))
	}
	return slides
}

// CompileSlide compiles the blocks of one slide.
func (c *Compiler) CompileSlide(blocks []md.Block) *Slide {
	return NewSlide(
		c.drawBoxes(blocks, nil, TextBoxStyle{Kind: StyleStandard}),
		c.firstExecutableCode(blocks),
	)
}

// firstExecutableCode returns the first top-level code block in a supported language.
func (c *Compiler) firstExecutableCode(blocks []md.Block) *ExecutableCode {
	for _, b := range blocks {
		cb, ok := b.(*md.CodeBlock)
		if !ok || cb.Language == "" {
			continue
		}
		code := NewExecutableCode(cb.Language, cb.Code)
		if code == nil {
			continue
		}
		if cmd, ok := c.interpreterFor(cb.Language, code.Language); ok {
			code = code.WithCommand(cmd)
		}
		return code
	}
	return nil
}

func (c *Compiler) interpreterFor(tag, name string) (string, bool) {
	if cmd, ok := c.interpreters[tag]; ok && cmd != "" {
		return cmd, true
	}
	if cmd, ok := c.interpreters[name]; ok && cmd != "" {
		return cmd, true
	}
	return "", false
}

func (c *Compiler) textBox(lines []*TextLine, background color.Color, style TextBoxStyle) *TextBox {
	return NewTextBox(lines, c.theme.VerticalOffset, c.theme.HorizontalOffset, background, style)
}

func (c *Compiler) drawBoxes(blocks []md.Block, background color.Color, style TextBoxStyle) []DrawBox {
	var (
		boxes   []DrawBox
		pending []*TextLine
	)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		boxes = append(boxes, c.textBox(pending, background, style))
		pending = nil
	}
	align := Align(c.theme.Align)
	for _, block := range blocks {
		switch b := block.(type) {
		case *md.Heading:
			if b.Level == 1 {
				flush()
				title := &TextLine{
					Align:    align,
					Partials: c.partials(b.Spans, FontText, c.theme.FontSizeHeaderTitle, c.theme.HeadingColor),
				}
				boxes = append(boxes, c.textBox([]*TextLine{title}, background, TextBoxStyle{Kind: StyleTitle}))
				continue
			}
			pending = append(pending, &TextLine{
				Align:    align,
				Partials: c.partials(b.Spans, FontText, c.theme.FontSizeHeaderSlides, c.theme.HeadingColor),
			})
		case *md.Paragraph:
			if img, ok := firstImage(b.Spans); ok {
				flush()
				boxes = append(boxes, NewImageBox(img.Path, 0, c.theme.HorizontalOffset))
				continue
			}
			pending = append(pending, &TextLine{
				Align:    align,
				Partials: c.partials(b.Spans, FontText, c.theme.FontSizeText, c.theme.TextColor),
			})
		case *md.UnorderedList:
			pending = append(pending, c.listLines(b.Items, func(int) string { return c.theme.Bullet })...)
		case *md.OrderedList:
			pending = append(pending, c.listLines(b.Items, func(i int) string { return fmt.Sprintf("%d. ", i+1) })...)
		case *md.Blockquote:
			flush()
			boxes = append(boxes, c.drawBoxes(b.Blocks, c.theme.BlockquoteBackgroundColor, TextBoxStyle{
				Kind:  StyleBlockquote,
				Size:  c.theme.FontSizeHeaderTitle * 2,
				Font:  FontText,
				Color: c.theme.TextColor,
			})...)
		case *md.CodeBlock:
			flush()
			boxes = append(boxes, c.codeBoxes.Build(b.Language, b.Code))
		case *md.HorizontalRule, *md.RawBlock:
		default:
		}
	}
	flush()
	return boxes
}

// firstImage reports whether the paragraph starts with an image.
func firstImage(spans []md.Span) (*md.Image, bool) {
	if len(spans) == 0 {
		return nil, false
	}
	img, ok := spans[0].(*md.Image)
	return img, ok
}

// listLines returns one left aligned line per simple item. Items with nested blocks are skipped.
func (c *Compiler) listLines(items []md.ListItem, bullet func(i int) string) []*TextLine {
	var lines []*TextLine
	for i, item := range items {
		simple, ok := item.(*md.SimpleItem)
		if !ok {
			continue
		}
		partials := []*TextPartial{c.partial(bullet(i), FontText, c.theme.FontSizeText, c.theme.TextColor)}
		partials = append(partials, c.partials(simple.Spans, FontText, c.theme.FontSizeText, c.theme.TextColor)...)
		lines = append(lines, &TextLine{Align: AlignLeft, Partials: partials})
	}
	return lines
}

// partials maps spans to styled runs. Emphasis and Strong switch the font, other styles are inherited.
func (c *Compiler) partials(spans []md.Span, font Font, size float64, col color.Color) []*TextPartial {
	var partials []*TextPartial
	for _, span := range spans {
		switch s := span.(type) {
		case *md.Text:
			partials = append(partials, c.partial(s.Value, font, size, col))
		case *md.Code:
			partials = append(partials, c.partial(s.Value, FontCode, size, c.theme.TextColor))
		case *md.Emphasis:
			partials = append(partials, c.partials(s.Spans, FontItalic, size, col)...)
		case *md.Strong:
			partials = append(partials, c.partials(s.Spans, FontBold, size, col)...)
		case *md.Image, *md.Link, *md.Break, *md.RawSpan:
		default:
		}
	}
	return partials
}

func (c *Compiler) partial(text string, font Font, size float64, col color.Color) *TextPartial {
	return &TextPartial{
		Text:       text,
		Font:       font,
		Size:       size,
		Color:      col,
		LineHeight: c.theme.LineHeight,
	}
}
