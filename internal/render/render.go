package render

import "strings"

// Markdown renders markdown for the terminal using a pooled renderer.
func Markdown(content string, opts Options) (string, error) {
	r, err := renderers.checkout(opts)
	if err != nil {
		return "", err
	}
	defer renderers.release(opts, r)

	return r.Render(content)
}

// MarkdownWithWidth renders with default options at the given width
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// Reply renders an assistant reply for a chat bubble. Rendering errors fall
// back to the raw text, and glamour's surrounding blank lines are trimmed.
func Reply(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
