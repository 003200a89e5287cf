// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types exchanged with the content backend.
package model

import "time"

// ContentType selects one of the two content collections the backend serves.
type ContentType string

const (
	TypeArticle ContentType = "article"
	TypeQuote   ContentType = "quote"
)

// BasePath returns the public listing path for the content type.
func (t ContentType) BasePath() string {
	if t == TypeQuote {
		return "/quotes"
	}
	return "/articles"
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	return t == TypeArticle || t == TypeQuote
}

// Format is the persisted content format of a record.
// Markdown records keep their raw source editable; HTML records are edited
// through their rendered HTML field.
type Format int

const (
	FormatMarkdown Format = 0
	FormatHTML     Format = 1
)

// Valid reports whether f is a known persisted format.
func (f Format) Valid() bool {
	return f == FormatMarkdown || f == FormatHTML
}

// Pin and status values as persisted by the backend.
const (
	PinNone   = 1
	PinPinned = 2

	StatusNormal = 1
	StatusClosed = 2
)

// Tag is a content tag reference.
type Tag struct {
	TagID        string `json:"tag_id,omitempty"`
	SlugName     string `json:"slug_name"`
	DisplayName  string `json:"display_name,omitempty"`
	OriginalText string `json:"original_text,omitempty"`
	ParsedText   string `json:"parsed_text,omitempty"`
}

// UserRef identifies the user shown as the last operator of a list item.
type UserRef struct {
	ID          string `json:"id,omitempty"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// AuthorRef is the quote author attribution shown on quote cards.
type AuthorRef struct {
	ID         string `json:"id"`
	AuthorName string `json:"author_name"`
	Avatar     string `json:"avatar"`
}

// PieceRef is the quote piece (source work) attribution shown on quote cards.
type PieceRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Avatar string `json:"avatar"`
}

// ContentSummary is one row of a listing page.
type ContentSummary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	URLTitle         string    `json:"url_title"`
	Description      string    `json:"description"`
	Thumbnails       []string  `json:"thumbnails,omitempty"`
	Tags             []Tag     `json:"tags"`
	Pin              int       `json:"pin"`
	Status           int       `json:"status"`
	VoteCount        int       `json:"vote_count"`
	AnswerCount      int       `json:"answer_count"`
	ViewCount        int       `json:"view_count"`
	AcceptedAnswerID string    `json:"accepted_answer_id"`
	Operator         UserRef   `json:"operator"`
	OperationType    string    `json:"operation_type"`
	OperatedAt       time.Time `json:"operated_at"`

	// Quote-only attribution references.
	Author *AuthorRef `json:"quote_author_basic_info,omitempty"`
	Piece  *PieceRef  `json:"quote_piece_basic_info,omitempty"`
}

// LeadImage returns the first lead-image candidate for the item, or "" when
// the item has none. Quote cards use the piece avatar, article cards the
// first thumbnail.
func (s ContentSummary) LeadImage() string {
	if s.Piece != nil && s.Piece.Avatar != "" {
		return s.Piece.Avatar
	}
	if len(s.Thumbnails) > 0 {
		return s.Thumbnails[0]
	}
	return ""
}

// Pinned reports whether the item carries the pinned marker.
func (s ContentSummary) Pinned() bool { return s.Pin == PinPinned }

// Closed reports whether the item has been closed.
func (s ContentSummary) Closed() bool { return s.Status == StatusClosed }

// HasTag reports whether the item carries the given tag id.
func (s ContentSummary) HasTag(tagID string) bool {
	for _, t := range s.Tags {
		if t.TagID == tagID {
			return true
		}
	}
	return false
}

// ContentPage is one fetched page of a listing.
type ContentPage struct {
	Items []ContentSummary `json:"list"`
	Count int              `json:"count"`
}

// ContentDetail is the full record loaded for the detail and edit views.
type ContentDetail struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	URLTitle      string     `json:"url_title"`
	Content       string     `json:"content"`
	HTML          string     `json:"html"`
	ContentFormat Format     `json:"content_format"`
	Tags          []Tag      `json:"tags"`
	ViewCount     int        `json:"view_count"`
	AnswerCount   int        `json:"answer_count"`
	Status        int        `json:"status"`
	UserInfo      UserRef    `json:"user_info"`
	Author        *AuthorRef `json:"quote_author_basic_info,omitempty"`
	Piece         *PieceRef  `json:"quote_piece_basic_info,omitempty"`
	CreatedAt     time.Time  `json:"create_time"`
	UpdatedAt     time.Time  `json:"update_time"`
}

// EditorSource returns the editable source of truth for the record per its
// persisted format: raw markdown for markdown records, rendered HTML for
// HTML records.
func (d ContentDetail) EditorSource() string {
	if d.ContentFormat == FormatHTML {
		return d.HTML
	}
	return d.Content
}

// SubmissionPayload is the write-endpoint body for both content types.
// Author and piece fields are only populated for quote submissions.
type SubmissionPayload struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Tags          []Tag  `json:"tags"`
	ContentFormat Format `json:"content_format"`
	EditSummary   string `json:"edit_summary,omitempty"`

	AuthorName string `json:"author,omitempty"`
	AuthorID   string `json:"author_id,omitempty"`
	PieceID    string `json:"piece_id,omitempty"`
	PieceName  string `json:"piece_name,omitempty"`
}

// WriteResult is the backend's answer to a create or update call.
type WriteResult struct {
	ID            string `json:"id"`
	URLTitle      string `json:"url_title"`
	WaitForReview bool   `json:"wait_for_review"`
}

// NameRef is a typeahead candidate for quote author and piece selection.
type NameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SimilarItem is a similar-title suggestion for the write form.
type SimilarItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URLTitle string `json:"url_title"`
}
