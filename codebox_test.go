package slider

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCodeBoxBuilderPlain(t *testing.T) {
	th := testTheme()
	b := NewCodeBoxBuilder(th)
	box := b.Build("", "a\n\tb\n\nc\n")

	var got []string
	for _, l := range box.Lines {
		got = append(got, l.String())
		if l.Align != AlignLeft {
			t.Errorf("align = %q", l.Align)
		}
		for _, p := range l.Partials {
			if p.Font != FontCode || p.Size != th.FontSizeText {
				t.Errorf("partial %q: font %v size %v", p.Text, p.Font, p.Size)
			}
		}
	}
	if diff := cmp.Diff([]string{"a", "    b", " ", "c"}, got); diff != "" {
		t.Error(diff)
	}
	if box.Background == nil || box.Style.Kind != StyleStandard {
		t.Errorf("box = %+v", box)
	}
}

func TestCodeBoxBuilderUnknownLanguage(t *testing.T) {
	b := NewCodeBoxBuilder(testTheme())
	box := b.Build("no-such-language", "x := 1")
	if len(box.Lines) != 1 || len(box.Lines[0].Partials) != 1 {
		t.Fatalf("got %d lines", len(box.Lines))
	}
	if got := box.Lines[0].String(); got != "x := 1" {
		t.Errorf("got %q", got)
	}
}

func TestCodeBoxBuilderHighlight(t *testing.T) {
	b := NewCodeBoxBuilder(testTheme())
	src := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"
	box := b.Build("go", src)

	var got []string
	for _, l := range box.Lines {
		got = append(got, l.String())
	}
	want := []string{"package main", " ", "func main() {", "    println(\"hi\")", "}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if len(box.Lines[0].Partials) < 2 {
		t.Errorf("first line was not tokenized: %d partials", len(box.Lines[0].Partials))
	}
}
