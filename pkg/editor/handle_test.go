package editor

import (
	"errors"
	"strings"
	"testing"
)

type failingEditor struct{ Memory }

func (f *failingEditor) Init(string) error { return errors.New("boom") }

func TestHandleLoadsOnceAndSeedsBuffer(t *testing.T) {
	h := NewHandle("r1-description-editor", NewMemory, DefaultConfig())
	h.SetContent("buffered")
	if h.Loaded() {
		t.Fatalf("new handle should be unloaded")
	}

	if err := h.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := h.Load(); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if h.Inits() != 1 {
		t.Fatalf("expected a single init, got %d", h.Inits())
	}
	if h.Content() != "buffered" {
		t.Fatalf("expected buffered text in editor, got %q", h.Content())
	}
	if got := h.editor.(*Memory).Target(); got != "r1-description-editor" {
		t.Fatalf("editor attached to %q", got)
	}

	h.SetContent("live")
	h.Destroy()
	if h.Loaded() || h.Content() != "live" {
		t.Fatalf("destroy should unload and keep content, got loaded=%v content=%q", h.Loaded(), h.Content())
	}
}

func TestHandleInitFailure(t *testing.T) {
	h := NewHandle("x", func(Config) Editor { return &failingEditor{} }, Config{})
	if err := h.Load(); err == nil || !strings.Contains(err.Error(), "init x") {
		t.Fatalf("expected wrapped init error, got %v", err)
	}
	if h.Loaded() {
		t.Fatalf("failed load must leave the handle unloaded")
	}
}

func TestRichSanitisesContent(t *testing.T) {
	withLinks := NewRich(Config{Plugins: []string{"link"}})
	withLinks.SetContent(`<p onclick="x()">Bio <a href="https://example.org">ferme</a></p><script>alert(1)</script>`)
	got := withLinks.Content()
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	if !strings.Contains(got, "<a ") {
		t.Fatalf("links should survive with the link plugin: %q", got)
	}

	noLinks := NewRich(Config{})
	noLinks.SetContent(`<p>Bio <a href="https://example.org">ferme</a></p>`)
	if strings.Contains(noLinks.Content(), "<a") {
		t.Fatalf("links should be stripped without the link plugin: %q", noLinks.Content())
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy(""); err != nil || s != StrategyFlagSwap {
		t.Fatalf("empty strategy should default to flag swap, got %q %v", s, err)
	}
	if s, err := ParseStrategy("destroy-recreate"); err != nil || s != StrategyDestroyRecreate {
		t.Fatalf("unexpected %q %v", s, err)
	}
	if _, err := ParseStrategy("teleport"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

type side struct {
	loaded  bool
	content string
}

func prepare(t *testing.T, s side, target string) *Handle {
	t.Helper()
	h := NewHandle(target, NewMemory, Config{})
	h.SetContent(s.content)
	if s.loaded {
		if err := h.Load(); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	return h
}

func TestExchangeStrategiesAgree(t *testing.T) {
	cases := []struct {
		name string
		a, b side
	}{
		{"neither loaded", side{false, "a"}, side{false, ""}},
		{"only first loaded", side{true, "<p>a</p>"}, side{false, ""}},
		{"only second loaded", side{false, ""}, side{true, "<p>b</p>"}},
		{"both loaded", side{true, "<p>a</p>"}, side{true, "<p>b</p>"}},
	}

	for _, tc := range cases {
		for _, strategy := range []Strategy{StrategyFlagSwap, StrategyDestroyRecreate} {
			t.Run(tc.name+"/"+string(strategy), func(t *testing.T) {
				a := prepare(t, tc.a, "r1")
				b := prepare(t, tc.b, "r2")

				if err := Exchange(a, b, strategy); err != nil {
					t.Fatalf("exchange: %v", err)
				}
				if a.Loaded() != tc.b.loaded || b.Loaded() != tc.a.loaded {
					t.Fatalf("loaded flags not exchanged: a=%v b=%v", a.Loaded(), b.Loaded())
				}
				if a.Content() != tc.b.content || b.Content() != tc.a.content {
					t.Fatalf("content not exchanged: a=%q b=%q", a.Content(), b.Content())
				}

				if err := Exchange(a, b, strategy); err != nil {
					t.Fatalf("second exchange: %v", err)
				}
				if a.Loaded() != tc.a.loaded || a.Content() != tc.a.content ||
					b.Loaded() != tc.b.loaded || b.Content() != tc.b.content {
					t.Fatalf("double exchange is not the identity")
				}
			})
		}
	}
}

func TestFlagSwapNeverInitialisesTwice(t *testing.T) {
	a := prepare(t, side{true, "x"}, "r1")
	b := prepare(t, side{false, ""}, "r2")
	for i := 0; i < 4; i++ {
		if err := Exchange(a, b, StrategyFlagSwap); err != nil {
			t.Fatalf("exchange: %v", err)
		}
	}
	if a.Inits() != 1 || b.Inits() != 1 {
		t.Fatalf("expected one init per slot, got a=%d b=%d", a.Inits(), b.Inits())
	}
}

func TestExchangeKeepsUnloadedBufferVerbatim(t *testing.T) {
	const draft = "draft <b>x</b><script>alert(1)</script> "
	for _, strategy := range []Strategy{StrategyFlagSwap, StrategyDestroyRecreate} {
		t.Run(string(strategy), func(t *testing.T) {
			a := NewHandle("r1", NewRich, Config{})
			a.SetContent("<p>ripe</p>")
			if err := a.Load(); err != nil {
				t.Fatalf("load: %v", err)
			}
			b := NewHandle("r2", NewRich, Config{})
			b.SetContent(draft)

			if err := Exchange(a, b, strategy); err != nil {
				t.Fatalf("exchange: %v", err)
			}
			if a.Loaded() || a.Content() != draft {
				t.Fatalf("unloaded side should hold the raw draft, got loaded=%v %q", a.Loaded(), a.Content())
			}
			if err := Exchange(a, b, strategy); err != nil {
				t.Fatalf("second exchange: %v", err)
			}
			if b.Loaded() || b.Content() != draft {
				t.Fatalf("draft changed after a double exchange: %q", b.Content())
			}
			if !a.Loaded() || a.Content() != "<p>ripe</p>" {
				t.Fatalf("loaded side changed: %q", a.Content())
			}
		})
	}
}
