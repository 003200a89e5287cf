// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx backend response that carried no field error
// list. Validation failures are surfaced as *model.ValidationError instead.
type StatusError struct {
	Code   int
	Reason string
	Msg    string
	Path   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("backend %s: %d %s", e.Path, e.Code, e.Reason)
	}
	return fmt.Sprintf("backend %s: %d", e.Path, e.Code)
}

// NotFound reports whether the error represents a missing record.
func (e *StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}

// AsStatusError unwraps err into a *StatusError if possible.
func AsStatusError(err error, target **StatusError) bool {
	return errors.As(err, target)
}
