package engine

import "errors"

// Fatal error classes. A fatal error aborts the whole call with no
// partial output; non-fatal conditions travel as docmodel.Warning
// values alongside a still-produced result.
var (
	// ErrInputValidation covers a malformed or empty paragraph/slide
	// stream and invalid configuration.
	ErrInputValidation = errors.New("input validation failed")

	// ErrTemplateValidation means the destination template lacks the
	// required master slide layout.
	ErrTemplateValidation = errors.New("template validation failed")

	// ErrConversion is an unexpected structural shape encountered
	// mid-transform.
	ErrConversion = errors.New("conversion failed")
)
