package api

import (
	"bytes"

	"github.com/yuin/goldmark"

	"github.com/promptshelf/promptshelf/internal/errors"
)

// renderMarkdown converts a markdown payload to HTML for console preview.
func renderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", errors.NewInternal(err)
	}
	return buf.String(), nil
}
