package listing

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in descriptions is escaped because WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderDescription converts a markdown description to HTML. If rendering
// fails the escaped source is returned.
func RenderDescription(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return html.EscapeString(md)
	}
	return buf.String()
}
