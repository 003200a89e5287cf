// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/olegiv/folio/internal/model"
)

// htmlSanitizer strips dangerous markup from user-generated content while
// keeping the safe formatting tags.
var htmlSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts markdown source to sanitized HTML.
func RenderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized above
}

// SanitizeHTML cleans user-supplied HTML for display.
func SanitizeHTML(source string) template.HTML {
	return template.HTML(htmlSanitizer.Sanitize(source)) //nolint:gosec // sanitized above
}

// RenderBody returns display HTML for a record per its persisted format.
// HTML records already carry their rendered body; markdown records render
// on the way out.
func RenderBody(d *model.ContentDetail) (template.HTML, error) {
	if d.ContentFormat == model.FormatHTML {
		return SanitizeHTML(d.HTML), nil
	}
	return RenderMarkdown(d.Content)
}
