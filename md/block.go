package md

// Block is a block-level element of a document.
// The set of implementations is closed; consumers switch on the concrete type.
type Block interface {
	block()
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level int    `json:"level"`
	Spans []Span `json:"spans,omitempty"`
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Spans []Span `json:"spans,omitempty"`
}

// UnorderedList is a bullet list.
type UnorderedList struct {
	Items []ListItem `json:"items,omitempty"`
}

// OrderedList is a numbered list. Start is the number of the first item in the source.
type OrderedList struct {
	Start int        `json:"start"`
	Items []ListItem `json:"items,omitempty"`
}

// Blockquote holds nested blocks.
type Blockquote struct {
	Blocks []Block `json:"blocks,omitempty"`
}

// CodeBlock is a fenced or indented code block. Language is empty when the block has no info string.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

// HorizontalRule is a thematic break. It separates slides.
type HorizontalRule struct{}

// RawBlock is any construct slider does not render (HTML blocks, tables, ...).
type RawBlock struct {
	Kind string `json:"kind"`
}

func (*Heading) block()        {}
func (*Paragraph) block()      {}
func (*UnorderedList) block()  {}
func (*OrderedList) block()    {}
func (*Blockquote) block()     {}
func (*CodeBlock) block()      {}
func (*HorizontalRule) block() {}
func (*RawBlock) block()       {}

// ListItem is an item of a list.
type ListItem interface {
	listItem()
}

// SimpleItem is an item made of a single paragraph.
type SimpleItem struct {
	Spans []Span `json:"spans,omitempty"`
}

// ComplexItem is an item with several blocks, e.g. nested lists or multiple paragraphs.
type ComplexItem struct {
	Blocks []Block `json:"blocks,omitempty"`
}

func (*SimpleItem) listItem()  {}
func (*ComplexItem) listItem() {}

// Span is an inline element.
type Span interface {
	span()
}

// Text is literal text.
type Text struct {
	Value string `json:"value"`
}

// Code is a code span.
type Code struct {
	Value string `json:"value"`
}

// Emphasis is *emphasized* content.
type Emphasis struct {
	Spans []Span `json:"spans,omitempty"`
}

// Strong is **strong** content.
type Strong struct {
	Spans []Span `json:"spans,omitempty"`
}

// Image is an inline image.
type Image struct {
	Alt   string `json:"alt,omitempty"`
	Path  string `json:"path"`
	Title string `json:"title,omitempty"`
}

// Link is a link or an autolink.
type Link struct {
	Spans []Span `json:"spans,omitempty"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Break is a hard line break.
type Break struct{}

// RawSpan is inline raw HTML.
type RawSpan struct {
	Value string `json:"value"`
}

func (*Text) span()     {}
func (*Code) span()     {}
func (*Emphasis) span() {}
func (*Strong) span()   {}
func (*Image) span()    {}
func (*Link) span()     {}
func (*Break) span()    {}
func (*RawSpan) span()  {}

// PlainText returns the concatenated text content of spans.
func PlainText(spans []Span) string {
	var s string
	for _, span := range spans {
		switch v := span.(type) {
		case *Text:
			s += v.Value
		case *Code:
			s += v.Value
		case *Emphasis:
			s += PlainText(v.Spans)
		case *Strong:
			s += PlainText(v.Spans)
		case *Link:
			s += PlainText(v.Spans)
		case *Image:
			s += v.Alt
		default:
		}
	}
	return s
}
