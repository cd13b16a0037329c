package service

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrSessionNotFound  = errors.New("edit session not found")
	ErrInvalidDocument  = errors.New("invalid document")
	ErrInvalidEdit      = errors.New("invalid edit")
)
