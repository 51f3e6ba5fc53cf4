package screening

// This file is part of the package tests (package screening) and provides
// helpers that allow tests in the external package to access internal
// package constructs.

// NewAnswerError constructs an answer-wrapped error using package-internal constructor.
func NewAnswerError(msg string, cause error) error {
	return newAnswerError(msg, cause)
}

// NewIncompleteError constructs an incomplete-answers error using package-internal constructor.
func NewIncompleteError(msg string) error {
	return newIncompleteError(msg)
}
