// Package errors defines the structured error values used throughout figgrid.
// All errors except DOCUMENT_INVALID are figure-local: they are collected
// against the figure that produced them and never abort document processing.
package errors

import "fmt"

// ErrorCode identifies a figgrid error class.
type ErrorCode string

const (
	ErrRowDecode        ErrorCode = "ROW_DECODE"        // layout-row offset cells malformed
	ErrFieldDecode      ErrorCode = "FIELD_DECODE"      // field description cell unparsable
	ErrValidation       ErrorCode = "VALIDATION"        // grid invariant violated (gap, overlap, width)
	ErrFigureProcessing ErrorCode = "FIGURE_PROCESSING" // unexpected failure processing one figure
	ErrTableCaption     ErrorCode = "TABLE_CAPTION"     // caption does not match figure conventions
	ErrTableHeader      ErrorCode = "TABLE_HEADER"      // header row has unsupported column names
	ErrIrregularTable   ErrorCode = "IRREGULAR_TABLE"   // varying row lengths where regularity is required
	ErrDocumentInvalid  ErrorCode = "DOCUMENT_INVALID"  // fatal: document meta missing or unparsable
)

// FigureError is a structured error carrying a code and optional details.
// It implements the error interface but is usually accumulated as a value,
// keyed by figure number, rather than returned up the call stack.
type FigureError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *FigureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewRowDecode reports a layout-row candidate whose offset cells are malformed.
func NewRowDecode(rowIdx int, msg string) *FigureError {
	return &FigureError{
		Code:    ErrRowDecode,
		Message: fmt.Sprintf("row %d: %s", rowIdx, msg),
		Details: map[string]any{"row": rowIdx},
	}
}

// NewFieldDecode reports a field description cell that could not be parsed.
func NewFieldDecode(rowIdx int, text string) *FigureError {
	return &FigureError{
		Code:    ErrFieldDecode,
		Message: fmt.Sprintf("row %d: cannot parse field description %q", rowIdx, text),
		Details: map[string]any{"row": rowIdx, "text": text},
	}
}

// NewValidation reports a non-fatal grid invariant violation.
func NewValidation(msg string) *FigureError {
	return &FigureError{
		Code:    ErrValidation,
		Message: msg,
	}
}

// NewFigureProcessing wraps an unexpected failure local to one figure.
func NewFigureProcessing(figureNr int, cause any) *FigureError {
	return &FigureError{
		Code:    ErrFigureProcessing,
		Message: fmt.Sprintf("figure %d: processing failed: %v", figureNr, cause),
		Details: map[string]any{"figure_nr": figureNr},
	}
}

// NewTableCaption reports a table caption that does not match figure conventions.
func NewTableCaption(caption, msg string) *FigureError {
	return &FigureError{
		Code:    ErrTableCaption,
		Message: fmt.Sprintf("%s: %q", msg, caption),
		Details: map[string]any{"caption": caption},
	}
}

// NewTableHeader reports a header row with column names outside the valid set.
func NewTableHeader(caption string, names []string) *FigureError {
	return &FigureError{
		Code:    ErrTableHeader,
		Message: fmt.Sprintf("unsupported header names %v", names),
		Details: map[string]any{"caption": caption, "names": names},
	}
}

// NewIrregularTable reports a table with varying row lengths.
func NewIrregularTable(lengths []int) *FigureError {
	return &FigureError{
		Code:    ErrIrregularTable,
		Message: fmt.Sprintf("varying row lengths %v", lengths),
		Details: map[string]any{"lengths": lengths},
	}
}

// NewDocumentInvalid reports a fatal document-level failure. This is the only
// error class that propagates to the caller.
func NewDocumentInvalid(msg string) *FigureError {
	return &FigureError{
		Code:    ErrDocumentInvalid,
		Message: msg,
	}
}

// Is checks if an error is a FigureError with the given code.
func Is(err error, code ErrorCode) bool {
	if fErr, ok := err.(*FigureError); ok {
		return fErr.Code == code
	}
	return false
}
