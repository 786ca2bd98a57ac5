package slider

import (
	"image/color"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/k1LoW/slider/config"
)

const tabWidth = 4

// CodeBoxBuilder renders code and command output as text boxes.
type CodeBoxBuilder struct {
	theme *config.Theme
	style *chroma.Style
}

// NewCodeBoxBuilder returns a builder using the theme's code style.
func NewCodeBoxBuilder(theme *config.Theme) *CodeBoxBuilder {
	return &CodeBoxBuilder{
		theme: theme,
		style: styles.Get(theme.CodeTheme),
	}
}

// Build returns one text box holding text, one line per physical line.
// An empty or unknown language produces plain text in the theme's text color.
func (b *CodeBoxBuilder) Build(lang, text string) *TextBox {
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	text = strings.TrimRight(text, "\n")
	var lines []*TextLine
	if lexer := lookupLexer(lang); lexer != nil {
		lines = b.highlight(lexer, text)
	}
	if lines == nil {
		lines = b.plain(text)
	}
	return NewTextBox(lines, b.theme.VerticalOffset, b.theme.HorizontalOffset, b.theme.CodeBackgroundColor, TextBoxStyle{Kind: StyleStandard})
}

func lookupLexer(lang string) chroma.Lexer {
	if lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

func (b *CodeBoxBuilder) plain(text string) []*TextLine {
	var lines []*TextLine
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, &TextLine{
			Align:    AlignLeft,
			Partials: []*TextPartial{b.partial(l, FontCode, b.theme.TextColor)},
		})
	}
	return lines
}

func (b *CodeBoxBuilder) highlight(lexer chroma.Lexer, text string) []*TextLine {
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}
	var lines []*TextLine
	for _, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		line := &TextLine{Align: AlignLeft}
		for _, tok := range tokens {
			value := strings.TrimRight(tok.Value, "\n")
			if value == "" {
				continue
			}
			entry := b.style.Get(tok.Type)
			var c color.Color = b.theme.TextColor
			if entry.Colour.IsSet() {
				c = color.RGBA{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue(), A: 0xff}
			}
			font := FontCode
			switch {
			case entry.Bold == chroma.Yes:
				font = FontBold
			case entry.Italic == chroma.Yes:
				font = FontItalic
			}
			line.Partials = append(line.Partials, b.partial(value, font, c))
		}
		if len(line.Partials) == 0 {
			// keep blank lines
			line.Partials = append(line.Partials, b.partial(" ", FontCode, b.theme.TextColor))
		}
		lines = append(lines, line)
	}
	return lines
}

func (b *CodeBoxBuilder) partial(text string, font Font, c color.Color) *TextPartial {
	if text == "" {
		text = " "
	}
	return &TextPartial{
		Text:       text,
		Font:       font,
		Size:       b.theme.FontSizeText,
		Color:      c,
		LineHeight: b.theme.LineHeight,
	}
}
