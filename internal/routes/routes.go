// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package routes builds the public landing URLs for content, tags and
// quote attribution pages.
package routes

import (
	"net/url"

	"github.com/olegiv/folio/internal/model"
)

// PermalinkStyle controls whether landing URLs carry the slugged title
// after the record id.
type PermalinkStyle int

const (
	// PermalinkIDOnly yields /articles/{id}.
	PermalinkIDOnly PermalinkStyle = iota
	// PermalinkWithTitle yields /articles/{id}/{url_title}.
	PermalinkWithTitle
)

// Factory builds site paths under one permalink style.
type Factory struct {
	style PermalinkStyle
}

// NewFactory creates a path factory.
func NewFactory(style PermalinkStyle) *Factory {
	return &Factory{style: style}
}

// ContentLanding returns the landing path for a content record. A record
// without a backend url_title gets one slugged from its title; only when
// both are empty does the path fall back to the id-only form.
func (f *Factory) ContentLanding(typ model.ContentType, id, title, urlTitle string) string {
	base := typ.BasePath() + "/" + url.PathEscape(id)
	slug := urlTitle
	if slug == "" {
		slug = Slugify(title)
	}
	if f.style == PermalinkWithTitle && slug != "" {
		return base + "/" + url.PathEscape(slug)
	}
	return base
}

// ArticleLanding returns the landing path for an article.
func (f *Factory) ArticleLanding(id, title, urlTitle string) string {
	return f.ContentLanding(model.TypeArticle, id, title, urlTitle)
}

// QuoteLanding returns the landing path for a quote.
func (f *Factory) QuoteLanding(id, title, urlTitle string) string {
	return f.ContentLanding(model.TypeQuote, id, title, urlTitle)
}

// TagLanding returns the listing path filtered by a tag. Links carry the
// backend tag id when the reference has one, with the slug appended for
// readability; slug-only references fall back to filtering by slug.
func (f *Factory) TagLanding(tag model.Tag) string {
	if tag.TagID != "" {
		p := "/tags/" + url.PathEscape(tag.TagID)
		if tag.SlugName != "" {
			p += "/" + url.PathEscape(tag.SlugName)
		}
		return p
	}
	return "/tags/" + url.PathEscape(tag.SlugName)
}

// AuthorLanding returns the quote-author page path.
func (f *Factory) AuthorLanding(id string) string {
	return "/quote-authors/" + url.PathEscape(id)
}

// PieceLanding returns the quote-piece page path.
func (f *Factory) PieceLanding(id string) string {
	return "/quote-pieces/" + url.PathEscape(id)
}

// WritePath returns the create-form path for a content type.
func (f *Factory) WritePath(typ model.ContentType) string {
	return typ.BasePath() + "/write"
}

// EditPath returns the edit-form path for a record.
func (f *Factory) EditPath(typ model.ContentType, id string) string {
	return typ.BasePath() + "/" + url.PathEscape(id) + "/edit"
}
