// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio/internal/content"
	"github.com/olegiv/folio/internal/draft"
	"github.com/olegiv/folio/internal/form"
	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/query"
	"github.com/olegiv/folio/internal/render"
)

// WriteData is the write-form render model for both create and edit.
type WriteData struct {
	IsEdit          bool
	IsQuote         bool
	Action          string
	AutosaveURL     string
	SimilarURL      string
	Form            form.State
	TagInput        string
	Editor          string
	RichEditor      bool
	CanToggleEditor bool
	Guard           bool
	Anchor          string
}

// WriteNew renders the create form, hydrated from the stored draft when
// one survives.
func (h *Handler) WriteNew(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		h.renderMissing(w, r)
		return
	}

	m := h.drafts.Create(r.Context(), typ, h.draftOwner(r))
	h.renderWriteForm(w, r, typ, m.Form(), content.PlainMarkup, false, m.Guard(), "", "")
}

// WriteSubmit handles the create form: discard, editor toggle, or submit.
func (h *Handler) WriteSubmit(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		h.renderMissing(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.flashAndRedirect(w, r, h.paths.WritePath(typ), "Invalid form data", "error")
		return
	}

	owner := h.draftOwner(r)
	m := h.drafts.Create(r.Context(), typ, owner)

	if r.PostFormValue("discard") != "" {
		m.Discard()
		h.drafts.Release(typ, owner)
		h.flashAndRedirect(w, r, typ.BasePath(), "Draft discarded", "info")
		return
	}

	applyPostedFields(m, r, typ)
	kind := postedEditor(r)

	if r.PostFormValue("toggle_editor") != "" {
		// Nothing is persisted yet in create mode under the markdown
		// format, so the toggle is free in both directions.
		toggled := content.RichHTML
		if kind == content.RichHTML {
			toggled = content.PlainMarkup
		}
		h.renderWriteForm(w, r, typ, m.Form(), toggled, false, m.Guard(), "", "")
		return
	}

	payload := content.Assemble(typ, kind, m.Form())
	res, err := h.client.Create(r.Context(), typ, payload)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			f := m.Form()
			anchor := f.ApplyFieldErrors(verr.Fields)
			h.renderWriteForm(w, r, typ, f, kind, false, m.Guard(), anchor, "")
			return
		}
		h.renderError(w, r, "create failed", "type", typ, "error", err)
		return
	}

	m.CompleteSubmit()
	h.drafts.Release(typ, owner)
	h.invalidateFirstPage(r, typ)

	msg := "Published"
	if res.WaitForReview {
		msg = "Submitted for review"
	}
	h.flashAndRedirect(w, r, h.paths.ContentLanding(typ, res.ID, payload.Title, res.URLTitle), msg, "success")
}

// WriteEdit renders the edit form for an existing record. The editor kind
// follows the record's persisted format: an HTML record reopens in the
// rich editor with its rendered body, never the markdown source it no
// longer has. A just-loaded form matches its record, so it opens
// unguarded.
func (h *Handler) WriteEdit(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		h.renderMissing(w, r)
		return
	}
	id := chi.URLParam(r, "id")

	d, err := h.client.ContentDetail(r.Context(), typ, id)
	if err != nil {
		h.renderError(w, r, "loading record for edit", "id", id, "error", err)
		return
	}
	if d == nil {
		h.renderMissing(w, r)
		return
	}

	m := draft.NewEdit(formFromDetail(d), h.logger)
	kind := content.KindForRecord(d)
	h.renderWriteForm(w, r, typ, m.Form(), kind, true, m.Guard(), "", id)
}

// WriteUpdate handles the edit form submission with a PUT to the backend.
// Posted fields run through an edit-mode draft manager compared against
// the loaded record, so the guard releases when the form matches what is
// already published.
func (h *Handler) WriteUpdate(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		h.renderMissing(w, r)
		return
	}
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.flashAndRedirect(w, r, h.paths.EditPath(typ, id), "Invalid form data", "error")
		return
	}

	d, err := h.client.ContentDetail(r.Context(), typ, id)
	if err != nil {
		h.renderError(w, r, "loading record for edit", "id", id, "error", err)
		return
	}
	if d == nil {
		h.renderMissing(w, r)
		return
	}

	m := draft.NewEdit(formFromDetail(d), h.logger)
	var posted form.State
	readPostedFields(&posted, r, typ)
	m.Apply(posted)
	kind := postedEditor(r)

	if r.PostFormValue("toggle_editor") != "" {
		// The trapdoor: a record already persisted as HTML has no
		// markdown source left to reopen.
		requested := content.RichHTML
		if kind == content.RichHTML {
			requested = content.PlainMarkup
		}
		if content.CanToggle(kind, requested, d.ContentFormat) {
			kind = requested
		}
		h.renderWriteForm(w, r, typ, m.Form(), kind, true, m.Guard(), "", id)
		return
	}

	payload := content.AssembleUpdate(typ, kind, id, m.Form())
	res, err := h.client.Update(r.Context(), typ, payload)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			f := m.Form()
			anchor := f.ApplyFieldErrors(verr.Fields)
			h.renderWriteForm(w, r, typ, f, kind, true, m.Guard(), anchor, id)
			return
		}
		h.renderError(w, r, "update failed", "id", id, "error", err)
		return
	}

	h.invalidateFirstPage(r, typ)

	msg := "Saved"
	if res.WaitForReview {
		msg = "Submitted for review"
	}
	h.flashAndRedirect(w, r, h.paths.ContentLanding(typ, res.ID, payload.Title, res.URLTitle), msg, "success")
}

func (h *Handler) renderWriteForm(w http.ResponseWriter, r *http.Request, typ model.ContentType,
	f form.State, kind content.EditorKind, isEdit, guard bool, anchor, id string) {
	action := h.paths.WritePath(typ)
	if isEdit {
		action = h.paths.EditPath(typ, id)
	}
	data := WriteData{
		IsEdit:          isEdit,
		IsQuote:         typ == model.TypeQuote,
		Action:          action,
		AutosaveURL:     "/api/drafts" + typ.BasePath(),
		SimilarURL:      "/api" + typ.BasePath() + "/similar",
		Form:            f,
		TagInput:        tagInput(f.Tags.Value),
		Editor:          kind.String(),
		RichEditor:      kind == content.RichHTML,
		CanToggleEditor: !isEdit || kind == content.PlainMarkup,
		Guard:           guard,
		Anchor:          anchor,
	}
	title := "Write"
	if isEdit {
		title = "Edit"
	}
	if err := h.renderer.Render(w, r, "write", render.TemplateData{Title: title, Data: data}); err != nil {
		h.logger.Error("rendering write form", "error", err)
	}
}

// applyPostedFields routes posted form values through the draft manager so
// the state machine sees the same mutations the form did.
func applyPostedFields(m *draft.Manager, r *http.Request, typ model.ContentType) {
	m.SetField(form.FieldTitle, r.PostFormValue(form.FieldTitle))
	m.SetField(form.FieldContent, r.PostFormValue(form.FieldContent))
	m.SetField(form.FieldAnswerContent, r.PostFormValue(form.FieldAnswerContent))
	m.SetTags(parseTags(r.PostFormValue(form.FieldTags)))
	if typ == model.TypeQuote {
		m.SetField(form.FieldAuthor, r.PostFormValue(form.FieldAuthor))
		m.SetField("author_id", r.PostFormValue("author_id"))
		m.SetField(form.FieldPiece, r.PostFormValue(form.FieldPiece))
		m.SetField("piece_id", r.PostFormValue("piece_id"))
	}
}

// readPostedFields fills a bare form state from the posted values.
func readPostedFields(f *form.State, r *http.Request, typ model.ContentType) {
	f.Set(form.FieldTitle, r.PostFormValue(form.FieldTitle))
	f.Set(form.FieldContent, r.PostFormValue(form.FieldContent))
	f.Set(form.FieldEditSummary, r.PostFormValue(form.FieldEditSummary))
	f.SetTags(parseTags(r.PostFormValue(form.FieldTags)))
	if typ == model.TypeQuote {
		f.Set(form.FieldAuthor, r.PostFormValue(form.FieldAuthor))
		f.Set("author_id", r.PostFormValue("author_id"))
		f.Set(form.FieldPiece, r.PostFormValue(form.FieldPiece))
		f.Set("piece_id", r.PostFormValue("piece_id"))
	}
}

// postedEditor reads the hidden editor field.
func postedEditor(r *http.Request) content.EditorKind {
	if r.PostFormValue("editor") == content.RichHTML.String() {
		return content.RichHTML
	}
	return content.PlainMarkup
}

// formFromDetail seeds the edit form from the loaded record.
func formFromDetail(d *model.ContentDetail) form.State {
	var f form.State
	f.Set(form.FieldTitle, d.Title)
	f.Set(form.FieldContent, d.EditorSource())
	f.SetTags(d.Tags)
	return f
}

// invalidateFirstPage drops the cached first page of the default listing
// so a successful write shows up without waiting out the TTL.
func (h *Handler) invalidateFirstPage(r *http.Request, typ model.ContentType) {
	q := query.ListQuery{Page: 1, PageSize: query.DefaultPageSize, Order: query.DefaultOrder}
	h.listings.Invalidate(r.Context(), typ, q)
}
