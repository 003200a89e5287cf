// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package routes

import (
	"testing"

	"github.com/olegiv/folio/internal/model"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"Café au Lait", "cafe-au-lait"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"Special!@#Characters", "specialcharacters"},
		{"--Leading and Trailing--", "leading-and-trailing"},
		{"Тест кириллицы", "test-kirillitsy"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello", "hello-world", "a1-b2"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "-lead", "trail-", "two--hyphens", "UPPER", "spa ce"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestContentLanding(t *testing.T) {
	withTitle := NewFactory(PermalinkWithTitle)
	if got := withTitle.ArticleLanding("a1", "My Article", "my-article"); got != "/articles/a1/my-article" {
		t.Errorf("ArticleLanding = %q", got)
	}
	if got := withTitle.ArticleLanding("a1", "Hello World", ""); got != "/articles/a1/hello-world" {
		t.Errorf("missing url title must slug the title: %q", got)
	}
	if got := withTitle.QuoteLanding("q1", "", ""); got != "/quotes/q1" {
		t.Errorf("no title at all must fall back to id-only: %q", got)
	}

	idOnly := NewFactory(PermalinkIDOnly)
	if got := idOnly.ArticleLanding("a1", "My Article", "my-article"); got != "/articles/a1" {
		t.Errorf("id-only style = %q", got)
	}
}

func TestOtherPaths(t *testing.T) {
	f := NewFactory(PermalinkWithTitle)
	if got := f.TagLanding(model.Tag{TagID: "t1", SlugName: "stoicism"}); got != "/tags/t1/stoicism" {
		t.Errorf("TagLanding = %q", got)
	}
	if got := f.TagLanding(model.Tag{SlugName: "stoicism"}); got != "/tags/stoicism" {
		t.Errorf("slug-only TagLanding = %q", got)
	}
	if got := f.AuthorLanding("au1"); got != "/quote-authors/au1" {
		t.Errorf("AuthorLanding = %q", got)
	}
	if got := f.PieceLanding("p1"); got != "/quote-pieces/p1" {
		t.Errorf("PieceLanding = %q", got)
	}
	if got := f.WritePath(model.TypeQuote); got != "/quotes/write" {
		t.Errorf("WritePath = %q", got)
	}
	if got := f.EditPath(model.TypeArticle, "a1"); got != "/articles/a1/edit" {
		t.Errorf("EditPath = %q", got)
	}
}
