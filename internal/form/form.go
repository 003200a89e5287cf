// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package form holds the write-form field state shared by the draft
// manager and the submission assembler.
package form

import (
	"sort"

	"github.com/olegiv/folio/internal/model"
)

// Field names as the backend reports them in validation errors.
const (
	FieldTitle         = "title"
	FieldContent       = "content"
	FieldTags          = "tags"
	FieldAnswerContent = "answer_content"
	FieldEditSummary   = "edit_summary"
	FieldAuthor        = "author"
	FieldPiece         = "piece"
)

// Value is one text field with its validation state.
type Value struct {
	Value     string
	IsInvalid bool
	ErrorMsg  string
}

// Tags is the tag selector field with its validation state.
type Tags struct {
	Value     []model.Tag
	IsInvalid bool
	ErrorMsg  string
}

// State is the full field set of a write form. Author and piece fields are
// used by quote forms only.
type State struct {
	Title         Value
	Content       Value
	AnswerContent Value
	EditSummary   Value
	Author        Value
	AuthorID      Value
	Piece         Value
	PieceID       Value
	Tags          Tags
}

// Set assigns a text field by name and clears its validation state.
// Unknown names are ignored.
func (s *State) Set(field, value string) {
	if v := s.lookup(field); v != nil {
		*v = Value{Value: value}
	}
}

// SetTags replaces the tag set and clears its validation state.
func (s *State) SetTags(tags []model.Tag) {
	s.Tags = Tags{Value: tags}
}

// Get returns the current value of a text field by name.
func (s *State) Get(field string) string {
	if v := s.lookup(field); v != nil {
		return v.Value
	}
	return ""
}

// SlugSet returns the sorted tag slug names, the identity used by the
// edit-mode dirty check.
func (s State) SlugSet() []string {
	slugs := make([]string, 0, len(s.Tags.Value))
	for _, t := range s.Tags.Value {
		slugs = append(slugs, t.SlugName)
	}
	sort.Strings(slugs)
	return slugs
}

// AnyContent reports whether any of title, tags, content or answer content
// is non-empty. This is the create-mode dirtiness rule.
func (s State) AnyContent() bool {
	return s.Title.Value != "" ||
		len(s.Tags.Value) > 0 ||
		s.Content.Value != "" ||
		s.AnswerContent.Value != ""
}

// DirtyAgainst reports whether title, content or the tag slug set differs
// from the snapshot taken at load. This is the edit-mode dirtiness rule.
func (s State) DirtyAgainst(snapshot State) bool {
	if s.Title.Value != snapshot.Title.Value || s.Content.Value != snapshot.Content.Value {
		return true
	}
	a, b := s.SlugSet(), snapshot.SlugSet()
	if len(a) != len(b) {
		return true
	}
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}

// ApplyFieldErrors maps the backend's ordered validation list onto the
// fields and returns the name of the first invalid field — the anchor the
// re-rendered form scrolls to. Unknown field names are skipped.
func (s *State) ApplyFieldErrors(errs []model.FieldError) string {
	anchor := ""
	for _, fe := range errs {
		if anchor == "" {
			anchor = fe.Field
		}
		switch fe.Field {
		case FieldTags:
			s.Tags.IsInvalid = true
			s.Tags.ErrorMsg = fe.Message
		default:
			if v := s.lookup(fe.Field); v != nil {
				v.IsInvalid = true
				v.ErrorMsg = fe.Message
			}
		}
	}
	return anchor
}

func (s *State) lookup(field string) *Value {
	switch field {
	case FieldTitle:
		return &s.Title
	case FieldContent:
		return &s.Content
	case FieldAnswerContent:
		return &s.AnswerContent
	case FieldEditSummary:
		return &s.EditSummary
	case FieldAuthor:
		return &s.Author
	case "author_id":
		return &s.AuthorID
	case FieldPiece:
		return &s.Piece
	case "piece_id":
		return &s.PieceID
	default:
		return nil
	}
}
