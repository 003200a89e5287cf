// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// FieldError is one entry of the ordered validation error list a write
// endpoint returns. The backend guarantees the order; the first entry
// drives which field the re-rendered form anchors to.
type FieldError struct {
	Field   string `json:"error_field"`
	Message string `json:"error_msg"`
}

// ValidationError carries the full field error list of a rejected write.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// First returns the leading field error, which picks the scroll anchor.
func (e *ValidationError) First() (FieldError, bool) {
	if len(e.Fields) == 0 {
		return FieldError{}, false
	}
	return e.Fields[0], true
}
