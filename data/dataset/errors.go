package dataset

import "errors"

// Errors returned while reading splits and building features.
// They are always wrapped with file, line or label context; match with errors.Is.
var (
	ErrNotFound          = errors.New("split file not found")
	ErrDataFormat        = errors.New("malformed record")
	ErrUnknownLabel      = errors.New("label not in vocabulary")
	ErrUnknownTask       = errors.New("no processor registered for task")
	ErrInvalidVocabulary = errors.New("invalid label vocabulary")
	ErrInvalidExample    = errors.New("invalid example")
	ErrShape             = errors.New("feature vector shape mismatch")
)
