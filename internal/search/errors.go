package search

import "errors"

var (
	ErrLengthMismatch    = errors.New("search: word length mismatch")
	ErrEmptyVocabulary   = errors.New("search: vocabulary is empty")
	ErrEmptySecrets      = errors.New("search: secret list is empty")
	ErrWorkerFailure     = errors.New("search: worker failed")
	ErrIncompleteResults = errors.New("search: guess missing from merged results")
	ErrUnknownMode       = errors.New("search: unknown scoring mode")
)
