package md

import (
	"bytes"
	"os"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Document is a parsed deck source.
type Document struct {
	Frontmatter *Frontmatter `json:"frontmatter,omitempty"`
	Slides      [][]Block    `json:"slides"`
}

// ParseFile reads and parses the document at f.
func ParseFile(f string) (_ *Document, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes the metadata header, sanitizes, tokenizes and segments b into slides.
func Parse(b []byte) (*Document, error) {
	src := string(b)
	doc := &Document{
		Frontmatter: ParseFrontmatter(src),
	}
	doc.Slides = Segment(Tokenize([]byte(Sanitize(src))))
	return doc, nil
}

// Tokenize parses sanitized markdown into blocks.
func Tokenize(b []byte) []Block {
	md := goldmark.New()
	reader := text.NewReader(b)
	doc := md.Parser().Parse(reader)
	return toBlocks(b, doc)
}

func toBlocks(b []byte, n ast.Node) []Block {
	var blocks []Block
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		blocks = append(blocks, toBlock(b, c))
	}
	return blocks
}

func toBlock(b []byte, n ast.Node) Block {
	switch v := n.(type) {
	case *ast.Heading:
		return &Heading{Level: v.Level, Spans: toSpans(b, v)}
	case *ast.Paragraph:
		return &Paragraph{Spans: toSpans(b, v)}
	case *ast.TextBlock:
		return &Paragraph{Spans: toSpans(b, v)}
	case *ast.List:
		items := toListItems(b, v)
		if v.IsOrdered() {
			return &OrderedList{Start: v.Start, Items: items}
		}
		return &UnorderedList{Items: items}
	case *ast.Blockquote:
		return &Blockquote{Blocks: toBlocks(b, v)}
	case *ast.FencedCodeBlock:
		return &CodeBlock{
			Language: string(v.Language(b)),
			Code:     linesValue(b, v.Lines()),
		}
	case *ast.CodeBlock:
		return &CodeBlock{Code: linesValue(b, v.Lines())}
	case *ast.ThematicBreak:
		return &HorizontalRule{}
	default:
		return &RawBlock{Kind: n.Kind().String()}
	}
}

func toListItems(b []byte, l *ast.List) []ListItem {
	var items []ListItem
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		li, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		switch {
		case li.ChildCount() == 0:
			items = append(items, &SimpleItem{})
		case li.ChildCount() == 1 && isParagraphLike(li.FirstChild()):
			items = append(items, &SimpleItem{Spans: toSpans(b, li.FirstChild())})
		default:
			items = append(items, &ComplexItem{Blocks: toBlocks(b, li)})
		}
	}
	return items
}

func isParagraphLike(n ast.Node) bool {
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return true
	default:
		return false
	}
}

func toSpans(b []byte, n ast.Node) []Span {
	var spans []Span
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			value := string(v.Value(b))
			if v.SoftLineBreak() && !v.HardLineBreak() {
				value += " "
			}
			if value != "" {
				spans = append(spans, &Text{Value: value})
			}
			if v.HardLineBreak() {
				spans = append(spans, &Break{})
			}
		case *ast.String:
			spans = append(spans, &Text{Value: string(v.Value)})
		case *ast.CodeSpan:
			spans = append(spans, &Code{Value: inlineValue(b, v)})
		case *ast.Emphasis:
			if v.Level >= 2 {
				spans = append(spans, &Strong{Spans: toSpans(b, v)})
			} else {
				spans = append(spans, &Emphasis{Spans: toSpans(b, v)})
			}
		case *ast.Image:
			spans = append(spans, &Image{
				Alt:   inlineValue(b, v),
				Path:  string(v.Destination),
				Title: string(v.Title),
			})
		case *ast.Link:
			spans = append(spans, &Link{
				Spans: toSpans(b, v),
				URL:   string(v.Destination),
				Title: string(v.Title),
			})
		case *ast.AutoLink:
			spans = append(spans, &Link{
				Spans: []Span{&Text{Value: string(v.Label(b))}},
				URL:   string(v.URL(b)),
			})
		case *ast.RawHTML:
			var raw strings.Builder
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				raw.Write(seg.Value(b))
			}
			spans = append(spans, &RawSpan{Value: raw.String()})
		default:
		}
	}
	return spans
}

// inlineValue concatenates the text of n's descendants.
func inlineValue(b []byte, n ast.Node) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Value(b))
		case *ast.String:
			buf.Write(v.Value)
		default:
			buf.WriteString(inlineValue(b, c))
		}
	}
	return buf.String()
}

func linesValue(b []byte, lines *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(b))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
