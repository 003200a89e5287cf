// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strings"

	"github.com/olegiv/folio/internal/form"
	"github.com/olegiv/folio/internal/model"
)

// Assemble builds the write-endpoint payload from the form. The submitted
// content format is derived from the editor the text was composed in, and
// the content field carries that editor's source: raw markdown from the
// plain editor, rendered HTML from the rich one.
func Assemble(typ model.ContentType, kind EditorKind, s form.State) model.SubmissionPayload {
	p := model.SubmissionPayload{
		Title:         strings.TrimSpace(s.Title.Value),
		Content:       s.Content.Value,
		Tags:          s.Tags.Value,
		ContentFormat: kind.Format(),
		EditSummary:   strings.TrimSpace(s.EditSummary.Value),
	}
	if typ == model.TypeQuote {
		p.AuthorName = strings.TrimSpace(s.Author.Value)
		p.AuthorID = s.AuthorID.Value
		p.PieceName = strings.TrimSpace(s.Piece.Value)
		p.PieceID = s.PieceID.Value
	}
	return p
}

// AssembleUpdate builds the payload for editing an existing record.
func AssembleUpdate(typ model.ContentType, kind EditorKind, id string, s form.State) model.SubmissionPayload {
	p := Assemble(typ, kind, s)
	p.ID = id
	return p
}
