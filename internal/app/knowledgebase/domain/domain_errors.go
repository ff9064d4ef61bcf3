package domain

import "errors"

// Lookup and edit-session errors.
var (
	// ErrKnowledgeBaseNotFound indicates that no knowledge base has the given ID.
	ErrKnowledgeBaseNotFound = errors.New("knowledge base not found")

	// ErrMissingID indicates an update request without a resource identifier.
	ErrMissingID = errors.New("knowledge base id is required")

	// ErrMissingResource indicates an update request without a resource payload.
	ErrMissingResource = errors.New("knowledge base payload is required")

	// ErrInvalidUpdateMask indicates a mask naming a field that cannot be updated.
	ErrInvalidUpdateMask = errors.New("invalid update mask")

	// ErrImmutableField indicates an edit to a field fixed at creation.
	ErrImmutableField = errors.New("field cannot be changed after creation")
)

// Validation errors for KnowledgeBase.
var (
	ErrEmptyDisplayName   = errors.New("knowledge base display name cannot be empty")
	ErrDisplayNameTooLong = errors.New("knowledge base display name exceeds maximum length of 255 characters")
	ErrDescriptionTooLong = errors.New("knowledge base description exceeds maximum length")

	// ErrInvalidChunking indicates negative chunk sizes or an overlap not smaller than the chunk size.
	ErrInvalidChunking = errors.New("indexer chunk overlap must be smaller than chunk size")

	// ErrInvalidProvider indicates a oneof provider with zero or several variants set.
	ErrInvalidProvider = errors.New("provider must set exactly one variant")
)
