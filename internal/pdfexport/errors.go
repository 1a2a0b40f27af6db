package pdfexport

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when there are no pages to render.
var ErrEmptyDocument = errors.New("pdfexport: document has no pages")

// RenderError reports a failure of the PDF drawing primitive during a
// specific operation.
type RenderError struct {
	Op  string // e.g. "page 3", "Output"
	Err error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdfexport.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdfexport.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func newRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}
