// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package backend is the typed REST client for the content API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/query"
)

// apiPrefix is the mount point of the backend API.
const apiPrefix = "/answer/api/v1"

// maxBodySize caps response bodies read from the backend.
const maxBodySize = 8 << 20 // 8MB

// Client talks to the content backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a backend client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the response wrapper every backend endpoint uses.
type envelope struct {
	Code   int                `json:"code"`
	Reason string             `json:"reason"`
	Msg    string             `json:"msg"`
	List   []model.FieldError `json:"list"`
	Data   json.RawMessage    `json:"data"`
}

// ContentPage fetches one listing page for the given content type.
func (c *Client) ContentPage(ctx context.Context, typ model.ContentType, q query.ListQuery) (*model.ContentPage, error) {
	var page model.ContentPage
	if err := c.get(ctx, string(typ)+"/page", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ContentDetail fetches a full record. A 404 from the backend is not an
// error: it yields (nil, nil) so callers can render a missing state.
func (c *Client) ContentDetail(ctx context.Context, typ model.ContentType, id string) (*model.ContentDetail, error) {
	v := url.Values{"id": {id}}
	var detail model.ContentDetail
	err := c.get(ctx, string(typ)+"/info", v, &detail)
	if err != nil {
		var se *StatusError
		if AsStatusError(err, &se) && se.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

// Create submits a new record and returns the backend's write result.
func (c *Client) Create(ctx context.Context, typ model.ContentType, payload model.SubmissionPayload) (*model.WriteResult, error) {
	var res model.WriteResult
	if err := c.send(ctx, http.MethodPost, string(typ), payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Update modifies an existing record. The payload must carry the record id
// and an edit summary.
func (c *Client) Update(ctx context.Context, typ model.ContentType, payload model.SubmissionPayload) (*model.WriteResult, error) {
	if payload.ID == "" {
		return nil, fmt.Errorf("update %s: missing id", typ)
	}
	var res model.WriteResult
	if err := c.send(ctx, http.MethodPut, string(typ), payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SimilarByTitle returns similar-title suggestions for the write form.
func (c *Client) SimilarByTitle(ctx context.Context, typ model.ContentType, title string) ([]model.SimilarItem, error) {
	v := url.Values{"title": {title}}
	var items []model.SimilarItem
	if err := c.get(ctx, string(typ)+"/similar", v, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SimilarAuthors returns quote author typeahead candidates.
func (c *Client) SimilarAuthors(ctx context.Context, title string) ([]model.NameRef, error) {
	v := url.Values{"title": {title}}
	var refs []model.NameRef
	if err := c.get(ctx, "quote/author/similar", v, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// SimilarPieces returns quote piece typeahead candidates.
func (c *Client) SimilarPieces(ctx context.Context, title string) ([]model.NameRef, error) {
	v := url.Values{"title": {title}}
	var refs []model.NameRef
	if err := c.get(ctx, "quote/piece/similar", v, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// SiteInfoVal returns the static informational content stored under key.
func (c *Client) SiteInfoVal(ctx context.Context, key string) (string, error) {
	v := url.Values{"key": {key}}
	var out struct {
		Content string `json:"content"`
	}
	if err := c.get(ctx, "siteinfo/val", v, &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + apiPrefix + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request %s: %w", endpoint, err)
	}
	return c.do(req, out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s body: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+"/"+endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building request %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("reading %s response: %w", req.URL.Path, err)
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; the status check below covers them.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(env.List) > 0 {
			return &model.ValidationError{Fields: env.List}
		}
		return &StatusError{
			Code:   resp.StatusCode,
			Reason: env.Reason,
			Msg:    env.Msg,
			Path:   req.URL.Path,
		}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}
