package slider

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/k1LoW/slider/md"
)

func newTestDeck(t *testing.T, n int, opts ...Option) *Deck {
	t.Helper()
	var slides []*Slide
	for range n {
		slides = append(slides, NewSlide(nil, nil))
	}
	d, err := New(slides, testTheme(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNewWithoutSlides(t *testing.T) {
	if _, err := New(nil, testTheme()); err == nil {
		t.Error("want error")
	}
}

func TestNavigation(t *testing.T) {
	d := newTestDeck(t, 3)
	if d.Active() != 0 || d.Elapsed() != 0 {
		t.Fatalf("initial state: %d %v", d.Active(), d.Elapsed())
	}

	d.Prev()
	if d.Active() != 0 {
		t.Errorf("Prev() on the first slide moved to %d", d.Active())
	}

	d.Tick(time.Second)
	d.Next()
	if d.Active() != 1 || d.Elapsed() != 0 {
		t.Errorf("after Next(): %d %v", d.Active(), d.Elapsed())
	}
	d.Next()
	d.Tick(time.Second)
	d.Next()
	if d.Active() != 2 {
		t.Errorf("Next() on the last slide moved to %d", d.Active())
	}
	if d.Elapsed() != time.Second {
		t.Errorf("a no-op Next() reset the clock: %v", d.Elapsed())
	}
	d.Prev()
	if d.Active() != 1 || d.Elapsed() != 0 {
		t.Errorf("after Prev(): %d %v", d.Active(), d.Elapsed())
	}

	d.Goto(10)
	if d.Active() != 2 {
		t.Errorf("Goto(10) = %d", d.Active())
	}
	d.Goto(-1)
	if d.Active() != 0 {
		t.Errorf("Goto(-1) = %d", d.Active())
	}
}

func TestTickAutomatic(t *testing.T) {
	d := newTestDeck(t, 3, WithAutomatic(2*time.Second))
	for range 3 {
		d.Tick(time.Second)
	}
	// 3s elapsed, the advance happens on the next tick
	if d.Active() != 0 {
		t.Fatalf("advanced early to %d", d.Active())
	}
	d.Tick(time.Second)
	if d.Active() != 1 || d.Elapsed() != 0 {
		t.Errorf("after auto-advance: %d %v", d.Active(), d.Elapsed())
	}
	d.Tick(time.Second)
	if d.Active() != 1 || d.Elapsed() != time.Second {
		t.Errorf("advanced twice: %d %v", d.Active(), d.Elapsed())
	}
}

func TestTickManual(t *testing.T) {
	for _, automatic := range []time.Duration{0, -time.Second} {
		d := newTestDeck(t, 2, WithAutomatic(automatic))
		for range 100 {
			d.Tick(time.Second)
		}
		if d.Active() != 0 || d.Elapsed() != 100*time.Second {
			t.Errorf("automatic %v: %d %v", automatic, d.Active(), d.Elapsed())
		}
	}
}

func TestDraw(t *testing.T) {
	c := newTestCompiler(t)
	slides := c.Compile([][]md.Block{
		{&md.Heading{Level: 1, Spans: []md.Span{&md.Text{Value: "One"}}}},
		{para("two")},
	})
	d, err := New(slides, c.theme)
	if err != nil {
		t.Fatal(err)
	}
	p := newFakePainter()
	d.Draw(p, 16*time.Millisecond)
	if p.ops[0].kind != "rect" || p.ops[0].w != viewportWidth || p.ops[0].h != viewportHeight {
		t.Errorf("first op must clear the frame: %+v", p.ops[0])
	}
	if got := strings.Join(p.texts(), ""); got != "One" {
		t.Errorf("drawn text = %q", got)
	}
	if d.Elapsed() != 16*time.Millisecond {
		t.Errorf("Elapsed() = %v", d.Elapsed())
	}
	// the title box is 80 wide with its padding, centered at 600
	if x := p.ops[1].x; x != 610 {
		t.Errorf("title x = %v, want 610", x)
	}
}

func TestHorizontalPosition(t *testing.T) {
	tests := []struct {
		align string
		want  float64
	}{
		{"left", 40},
		{"right", 1280 - 40 - 100},
		{"center", 590},
		{"justify", 590},
	}
	for _, tt := range tests {
		th := testTheme()
		th.Align = tt.align
		d, err := New([]*Slide{NewSlide(nil, nil)}, th)
		if err != nil {
			t.Fatal(err)
		}
		if got := d.horizontalPosition(viewportWidth, 100); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.align, got, tt.want)
		}
	}
}

func TestRunActiveCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
	ctx := context.Background()
	c := newTestCompiler(t)
	slides := c.Compile([][]md.Block{
		{para("no code")},
		{&md.CodeBlock{Language: "sh", Code: "echo hello"}},
	})
	d, err := New(slides, c.theme)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := d.RunActiveCode(ctx)
	if err != nil || ok {
		t.Errorf("slide without code: %v %v", ok, err)
	}
	if n := len(slides[0].Boxes()); n != 1 {
		t.Errorf("slide without code has %d boxes", n)
	}

	d.Next()
	for i := range 2 {
		ok, err := d.RunActiveCode(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("no output appended")
		}
		boxes := slides[1].Boxes()
		if len(boxes) != 2+i {
			t.Fatalf("got %d boxes, want %d", len(boxes), 2+i)
		}
		out := boxes[len(boxes)-1].(*TextBox)
		if got := out.Lines[0].String(); got != "hello" {
			t.Errorf("output = %q", got)
		}
	}
}

func TestRunActiveCodeTimeout(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
	c := newTestCompiler(t)
	slides := c.Compile([][]md.Block{{&md.CodeBlock{Language: "sh", Code: "sleep 5"}}})
	d, err := New(slides, c.theme, WithCodeTimeout(100*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.RunActiveCode(context.Background()); err == nil {
		t.Error("want timeout error")
	}
	if n := len(slides[0].Boxes()); n != 1 {
		t.Errorf("got %d boxes, want 1", n)
	}
}
