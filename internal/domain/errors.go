package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentNotFound signals a selection of a document id that no record carries.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrViewerNotFound signals a navigation request for a document without an open viewer.
	ErrViewerNotFound = errors.New("viewer not found")
	// ErrNotInitialized signals use of a session before Initialize.
	ErrNotInitialized = errors.New("session not initialized")
	// ErrInvalidDirection signals a navigation direction other than -1 or +1.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrSessionClosed signals that the session event loop has stopped.
	ErrSessionClosed = errors.New("session closed")
	// ErrAssetNotFound signals a document asset that could not be fetched.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrInvalidRecord signals a record that cannot be used at all (no doc_id).
	ErrInvalidRecord = errors.New("invalid record")
)

// RecordError wraps ErrInvalidRecord with the position of the offending record.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s at line %d: %v", ErrInvalidRecord.Error(), e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return ErrInvalidRecord }

// NewRecordError creates a record error for the given line.
func NewRecordError(line int, err error) error {
	return &RecordError{Line: line, Err: err}
}
