package domain

import "errors"

var (
	// ErrCorpusNotFound signals a missing corpus source file.
	ErrCorpusNotFound = errors.New("corpus file not found")
	// ErrCorpusInvalid signals a corpus file that cannot be loaded (bad columns, no usable rows).
	ErrCorpusInvalid = errors.New("corpus file invalid")
	// ErrInvalidInput signals a rejected caller-supplied value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
)
