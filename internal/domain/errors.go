package domain

import "errors"

var (
	// ErrDuplicateIdentity is returned when registering an email that already exists.
	ErrDuplicateIdentity = errors.New("email already registered")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated covers missing, expired and otherwise invalid bearer tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnknownTopic    = errors.New("unknown quiz topic")
	// ErrUnsupportedDocumentType is returned for uploads that are not pdf, docx or txt.
	ErrUnsupportedDocumentType = errors.New("unsupported document type")
	ErrNotFound                = errors.New("not found")
	// ErrRenderFailure signals that a report could not be rendered in the requested format.
	ErrRenderFailure = errors.New("report render failure")
	ErrInvalidInput  = errors.New("invalid input")
)
