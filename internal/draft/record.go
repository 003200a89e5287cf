// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package draft tracks unsubmitted write-form work: a Clean/Dirty/Persisted
// state machine per form, debounced autosave into an expiring store, and a
// navigation guard derived from the state.
package draft

import (
	"fmt"

	"github.com/olegiv/folio/internal/form"
	"github.com/olegiv/folio/internal/model"
)

// Record is the persisted shape of a draft. It carries exactly the fields
// a reopened create form needs to hydrate.
type Record struct {
	Title         string      `json:"title"`
	Tags          []model.Tag `json:"tags,omitempty"`
	Content       string      `json:"content"`
	AnswerContent string      `json:"answer_content,omitempty"`
}

// FromForm captures the draft-relevant fields of a form state.
func FromForm(s form.State) Record {
	return Record{
		Title:         s.Title.Value,
		Tags:          s.Tags.Value,
		Content:       s.Content.Value,
		AnswerContent: s.AnswerContent.Value,
	}
}

// ApplyTo hydrates a form state from the record.
func (r Record) ApplyTo(s *form.State) {
	s.Set(form.FieldTitle, r.Title)
	s.Set(form.FieldContent, r.Content)
	s.Set(form.FieldAnswerContent, r.AnswerContent)
	s.SetTags(r.Tags)
}

// Key builds the store key for a user's draft of the given content type.
func Key(typ model.ContentType, userID string) string {
	return fmt.Sprintf("draft:%s:%s", typ, userID)
}
