// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package view builds the render models for the listing pages: card
// variants, attribution lines, pagination and the empty state.
package view

import (
	"fmt"

	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/routes"
)

// Lead image display size on with-image cards.
const (
	LeadImageWidth  = 216
	LeadImageHeight = 144
)

// CardVariant selects the card layout for one listing row.
type CardVariant int

const (
	// TextOnly is the plain card used when no lead image candidate exists.
	TextOnly CardVariant = iota
	// WithImage is the card with a lead image beside the text.
	WithImage
)

// Card is one listing row ready for the template.
type Card struct {
	Variant     CardVariant
	ID          string
	Title       string
	URL         string
	Description string
	LeadImage   string
	Pinned      bool
	Closed      bool
	Tags        []TagChip
	Attribution string
	AuthorURL   string
	PieceURL    string
	VoteCount   int
	AnswerCount int
	ViewCount   int
	Operator    model.UserRef
	OperatedAt  string
}

// HasImage reports whether the card renders the with-image variant.
func (c Card) HasImage() bool { return c.Variant == WithImage }

// TagChip is one tag link on a card.
type TagChip struct {
	Slug        string
	DisplayName string
	URL         string
}

// NewCard builds the card model for one listing item. The variant follows
// the lead image: quote cards lead with the piece avatar, article cards
// with the first thumbnail, and items with neither render text-only.
func NewCard(s model.ContentSummary, typ model.ContentType, paths *routes.Factory) Card {
	c := Card{
		Variant:     TextOnly,
		ID:          s.ID,
		Title:       s.Title,
		URL:         paths.ContentLanding(typ, s.ID, s.Title, s.URLTitle),
		Description: s.Description,
		Pinned:      s.Pinned(),
		Closed:      s.Closed(),
		VoteCount:   s.VoteCount,
		AnswerCount: s.AnswerCount,
		ViewCount:   s.ViewCount,
		Operator:    s.Operator,
		OperatedAt:  s.OperatedAt.Format("2006-01-02 15:04"),
	}
	if img := s.LeadImage(); img != "" {
		c.Variant = WithImage
		c.LeadImage = img
	}
	for _, t := range s.Tags {
		name := t.DisplayName
		if name == "" {
			name = t.SlugName
		}
		c.Tags = append(c.Tags, TagChip{
			Slug:        t.SlugName,
			DisplayName: name,
			URL:         paths.TagLanding(t),
		})
	}
	if s.Author != nil || s.Piece != nil {
		c.Attribution = AttributionLine(s.Author, s.Piece)
		if s.Author != nil {
			c.AuthorURL = paths.AuthorLanding(s.Author.ID)
		}
		if s.Piece != nil {
			c.PieceURL = paths.PieceLanding(s.Piece.ID)
		}
	}
	return c
}

// AttributionLine renders the quote byline: author, then the piece title
// in guillemets, dash-separated when both are present.
func AttributionLine(author *model.AuthorRef, piece *model.PieceRef) string {
	switch {
	case author != nil && piece != nil:
		return fmt.Sprintf("%s - «%s»", author.AuthorName, piece.Title)
	case author != nil:
		return author.AuthorName
	case piece != nil:
		return fmt.Sprintf("«%s»", piece.Title)
	default:
		return ""
	}
}
