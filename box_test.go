package slider

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func line(align Align, texts ...string) *TextLine {
	l := &TextLine{Align: align}
	for _, s := range texts {
		l.Partials = append(l.Partials, &TextPartial{Text: s, Font: FontText, Size: 20, LineHeight: 1.5})
	}
	return l
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a b  c", []string{"a ", "b  ", "c"}},
		{"  indented", []string{"  ", "indented"}},
		{"trailing ", []string{"trailing "}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitWords(tt.in)); diff != "" {
			t.Errorf("splitWords(%q): %s", tt.in, diff)
		}
	}
}

func TestTextBoxWrap(t *testing.T) {
	p := newFakePainter()
	// margin 40, padding 10: 100 pixels are left for text
	p.width = 200
	b := NewTextBox([]*TextLine{line(AlignCenter, "aaaa bbbb cccc")}, 10, 40, nil, TextBoxStyle{})

	rows := b.rows(p)
	var got []string
	for _, r := range rows {
		s := ""
		for _, pc := range r.pieces {
			s += pc.text
		}
		got = append(got, s)
	}
	if diff := cmp.Diff([]string{"aaaa bbbb", "cccc"}, got); diff != "" {
		t.Error(diff)
	}
	if rows[0].width != 90 || rows[1].width != 40 {
		t.Errorf("row widths = %v, %v", rows[0].width, rows[1].width)
	}
	if got := b.WidthWithPadding(p); got != 110 {
		t.Errorf("WidthWithPadding() = %v, want 110", got)
	}
	if got := b.Height(p); got != 80 {
		t.Errorf("Height() = %v, want 80", got)
	}
}

func TestTextBoxLongWord(t *testing.T) {
	p := newFakePainter()
	p.width = 200
	b := NewTextBox([]*TextLine{line(AlignLeft, "a verylongword b")}, 10, 40, nil, TextBoxStyle{})
	rows := b.rows(p)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1].pieces[0].text != "verylongword" {
		t.Errorf("row 2 = %q", rows[1].pieces[0].text)
	}
}

func TestTextBoxDraw(t *testing.T) {
	tests := []struct {
		name     string
		style    TextBoxStyle
		wantNext float64
		wantTop  float64
	}{
		{"standard", TextBoxStyle{Kind: StyleStandard}, 90, 0},
		{"title gets a gap", TextBoxStyle{Kind: StyleTitle}, 100, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePainter()
			p.width = 200
			b := NewTextBox([]*TextLine{line(AlignCenter, "aaaa bbbb cccc")}, 10, 40, testTheme().BackgroundColor, tt.style)
			next := b.Draw(p, 0, 0)
			if next != tt.wantNext {
				t.Errorf("Draw() = %v, want %v", next, tt.wantNext)
			}
			want := []op{
				{kind: "rect", x: 0, y: tt.wantTop, w: 110, h: 80},
				{kind: "text", text: "aaaa ", x: 10, y: tt.wantTop + 15, size: 20},
				{kind: "text", text: "bbbb", x: 60, y: tt.wantTop + 15, size: 20},
				{kind: "text", text: "cccc", x: 35, y: tt.wantTop + 45, size: 20},
			}
			if diff := cmp.Diff(want, p.ops, cmp.AllowUnexported(op{})); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestTextBoxAlign(t *testing.T) {
	p := newFakePainter()
	b := NewTextBox([]*TextLine{
		line(AlignLeft, "aaaa"),
		line(AlignRight, "bb"),
		line(AlignCenter, "cc"),
	}, 10, 40, nil, TextBoxStyle{})
	b.Draw(p, 100, 0)
	var xs []float64
	for _, o := range p.ops {
		xs = append(xs, o.x)
	}
	// content is 40 wide starting at 110
	if diff := cmp.Diff([]float64{110, 130, 120}, xs); diff != "" {
		t.Error(diff)
	}
}

func TestTextBoxBlockquote(t *testing.T) {
	p := newFakePainter()
	style := TextBoxStyle{Kind: StyleBlockquote, Size: 80, Font: FontText}
	b := NewTextBox([]*TextLine{line(AlignLeft, "q")}, 10, 40, nil, style)
	if got := b.WidthWithPadding(p); got != 10+40+10+10 {
		t.Errorf("WidthWithPadding() = %v", got)
	}
	b.Draw(p, 0, 0)
	if diff := cmp.Diff([]string{quoteMark, "q"}, p.texts()); diff != "" {
		t.Error(diff)
	}
	if p.ops[0].size != 80 {
		t.Errorf("quote mark size = %v", p.ops[0].size)
	}
	if p.ops[1].x != 50 {
		t.Errorf("text x = %v, want 50", p.ops[1].x)
	}
}

func TestImageBox(t *testing.T) {
	p := newFakePainter()

	t.Run("unresolved image is skipped", func(t *testing.T) {
		b := NewImageBox("missing.png", 0, 40)
		if got := b.WidthWithPadding(p); got != 0 {
			t.Errorf("WidthWithPadding() = %v", got)
		}
		if got := b.Draw(p, 0, 12); got != 12 {
			t.Errorf("Draw() = %v, want 12", got)
		}
		if len(p.ops) != 0 {
			t.Errorf("unexpected ops %v", p.ops)
		}
	})

	t.Run("small image keeps its size", func(t *testing.T) {
		b := NewImageBox("a.png", 0, 40)
		b.SetImage(image.NewRGBA(image.Rect(0, 0, 200, 100)))
		if got := b.WidthWithPadding(p); got != 200 {
			t.Errorf("WidthWithPadding() = %v", got)
		}
		if got := b.Draw(p, 0, 5); got != 105 {
			t.Errorf("Draw() = %v, want 105", got)
		}
	})

	t.Run("large image is scaled to fit", func(t *testing.T) {
		p := newFakePainter()
		b := NewImageBox("a.png", 0, 40)
		b.SetImage(image.NewRGBA(image.Rect(0, 0, 2000, 100)))
		if got := b.WidthWithPadding(p); got != 1200 {
			t.Errorf("WidthWithPadding() = %v", got)
		}
		if got := b.Draw(p, 0, 5); got != 65 {
			t.Errorf("Draw() = %v, want 65", got)
		}
		want := []op{{kind: "image", x: 0, y: 5, w: 1200, h: 60}}
		if diff := cmp.Diff(want, p.ops, cmp.AllowUnexported(op{})); diff != "" {
			t.Error(diff)
		}
	})
}
