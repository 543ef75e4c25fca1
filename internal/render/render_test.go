package render

import (
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	got := DefaultOptions()
	want := Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
	if got != want {
		t.Errorf("DefaultOptions() = %+v, want %+v", got, want)
	}
}

func TestOptionsBuilders(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want func(Options) bool
	}{
		{"width", DefaultOptions().WithWidth(120), func(o Options) bool { return o.Width == 120 && o.Style == StyleDark }},
		{"width minimum", DefaultOptions().WithWidth(3), func(o Options) bool { return o.Width == 10 }},
		{"style", DefaultOptions().WithStyle(StyleLight), func(o Options) bool { return o.Style == StyleLight && o.Width == 80 }},
		{"emoji off", DefaultOptions().WithEmoji(false), func(o Options) bool { return !o.EnableEmoji }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.want(tt.opts) {
				t.Errorf("unexpected options %+v", tt.opts)
			}
		})
	}
}

func TestMarkdown_Replies(t *testing.T) {
	plain := DefaultOptions().WithStyle(StyleNoTTY)

	tests := []struct {
		name     string
		input    string
		opts     Options
		contains string
	}{
		{"canned reply", "Great question! I can help you with that.", plain, "Great question! I can help you with that."},
		{"code", "Try `go test ./...` first.", plain, "go test ./..."},
		{"list", "- one\n- two", plain, "two"},
		{"table", "| A | B |\n|---|---|\n| 1 | 2 |", plain, "A"},
		// ANSI codes split styled text, so only single words are checked
		{"dark heading", "# Hello World", DefaultOptions(), "Hello"},
		{"narrow", "Interesting! Here's what I think about it...", plain.WithWidth(20), "Interesting!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Markdown(tt.input, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output should contain %q, got: %q", tt.contains, out)
			}
		})
	}
}

func TestMarkdownWithWidth_Wraps(t *testing.T) {
	out, err := MarkdownWithWidth("I've processed your request and I'm ready to suggest a solution.", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(strings.TrimSpace(out), "\n") == 0 {
		t.Errorf("expected wrapped output at width 20, got: %q", out)
	}
}

func TestMarkdown_Emoji(t *testing.T) {
	plain := DefaultOptions().WithStyle(StyleNoTTY)

	out, err := Markdown("Done :tada:", plain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, ":tada:") {
		t.Errorf("shortcode should be converted, got: %q", out)
	}

	out, err = Markdown("Done :tada:", plain.WithEmoji(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, ":tada:") {
		t.Errorf("shortcode should stay as text, got: %q", out)
	}
}

func TestReply(t *testing.T) {
	out := Reply("Great question! I can **help** you with that.", DefaultOptions().WithStyle(StyleNoTTY))
	if !strings.Contains(out, "help") {
		t.Errorf("reply should contain text, got: %q", out)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("reply should be trimmed, got: %q", out)
	}
}

func TestReply_FallsBackToRawText(t *testing.T) {
	text := "plain *text*"
	if out := Reply(text, DefaultOptions().WithStyle("no/such/style.json")); out != text {
		t.Errorf("Reply() = %q, want raw text %q", out, text)
	}
}

func TestIsBuiltinStyle(t *testing.T) {
	for _, s := range MarkdownStyles() {
		if !IsBuiltinStyle(s.Name) {
			t.Errorf("%s should be built in", s.Name)
		}
		if _, err := newRenderer(DefaultOptions().WithStyle(s.Name)); err != nil {
			t.Errorf("style %s failed to load: %v", s.Name, err)
		}
	}
	if IsBuiltinStyle("/tmp/custom.json") {
		t.Error("file paths are not built in")
	}
}
