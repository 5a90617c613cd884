package domain

import "errors"

var (
	// ErrNotUnderstood means the language model answer could not be read as a preference record.
	ErrNotUnderstood = errors.New("request not understood")
	// ErrCompletion means the language model call itself failed.
	ErrCompletion = errors.New("completion failed")
	// ErrNoLocation means neither a city code nor coordinates were extracted.
	ErrNoLocation = errors.New("no city code or coordinates")
)
