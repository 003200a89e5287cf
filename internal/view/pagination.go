// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"fmt"
	"net/url"
)

// Pagination holds the page links rendered under a listing.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []PaginationPage
	BaseURL     string
	QueryString string
}

// PaginationPage represents a single page link.
type PaginationPage struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// BuildPagination creates the page links for a listing. baseURL is the
// path without query string; queryParams are preserved on every link
// except the page parameter, which each link sets itself.
func BuildPagination(currentPage, totalItems, perPage int, baseURL string, queryParams url.Values) Pagination {
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		PrevPage:    currentPage - 1,
		NextPage:    currentPage + 1,
		BaseURL:     baseURL,
	}

	if queryParams != nil {
		params := make(url.Values)
		for k, v := range queryParams {
			if k != "page" && len(v) > 0 && v[0] != "" {
				params[k] = v
			}
		}
		if len(params) > 0 {
			p.QueryString = params.Encode()
		}
	}

	// Show max 5 pages around current with ellipsis.
	start := currentPage - 2
	end := currentPage + 2
	if start < 1 {
		start = 1
		end = 5
	}
	if end > totalPages {
		end = totalPages
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	if start > 1 {
		p.Pages = append(p.Pages, PaginationPage{Number: 1, URL: p.PageURL(1)})
		if start > 2 {
			p.Pages = append(p.Pages, PaginationPage{IsEllipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, PaginationPage{
			Number:    i,
			URL:       p.PageURL(i),
			IsCurrent: i == currentPage,
		})
	}
	if end < totalPages {
		if end < totalPages-1 {
			p.Pages = append(p.Pages, PaginationPage{IsEllipsis: true})
		}
		p.Pages = append(p.Pages, PaginationPage{Number: totalPages, URL: p.PageURL(totalPages)})
	}

	return p
}

// PageURL returns the URL for a specific page number.
func (p Pagination) PageURL(page int) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// PrevURL returns the URL for the previous page.
func (p Pagination) PrevURL() string { return p.PageURL(p.PrevPage) }

// NextURL returns the URL for the next page.
func (p Pagination) NextURL() string { return p.PageURL(p.NextPage) }

// ShouldShow returns true if pagination should be displayed.
func (p Pagination) ShouldShow() bool { return p.TotalPages > 1 }
