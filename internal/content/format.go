// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content maps between persisted content formats and the editor
// kinds the write form offers, and assembles submission payloads.
package content

import "github.com/olegiv/folio/internal/model"

// EditorKind is the editing surface a write form presents.
type EditorKind int

const (
	// PlainMarkup edits raw markdown source.
	PlainMarkup EditorKind = iota
	// RichHTML edits rendered HTML in a rich-text surface.
	RichHTML
)

func (k EditorKind) String() string {
	if k == RichHTML {
		return "rich"
	}
	return "markdown"
}

// Format returns the persisted format a submission from this editor
// carries. The format follows the active editor, never the record's past.
func (k EditorKind) Format() model.Format {
	if k == RichHTML {
		return model.FormatHTML
	}
	return model.FormatMarkdown
}

// KindForFormat returns the editor a record of the given format opens in.
// HTML records lost their markdown source at the moment they were first
// saved as HTML, so they can only reopen in the rich editor.
func KindForFormat(f model.Format) EditorKind {
	if f == model.FormatHTML {
		return RichHTML
	}
	return PlainMarkup
}

// KindForRecord returns the editor an existing record opens in for editing.
func KindForRecord(d *model.ContentDetail) EditorKind {
	return KindForFormat(d.ContentFormat)
}

// CanToggle reports whether the write form may switch from the current
// editor to the requested one. Markdown may move to rich, and a rich form
// may move back only while the record is still markdown-formatted; once a
// record persists as HTML the markdown editor is gone for good.
func CanToggle(current, requested EditorKind, persisted model.Format) bool {
	if current == requested {
		return true
	}
	if requested == RichHTML {
		return true
	}
	return persisted == model.FormatMarkdown
}
