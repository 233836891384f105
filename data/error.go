package data

import "github.com/ardnew/kata/kata"

// Predefined errors (sentinel values).
var (
	ErrMixedArray      = kata.NewError("array mixes objects and scalars")
	ErrUnsupportedType = kata.NewError("unsupported value type")
	ErrUnknownFormat   = kata.NewError("unknown data format")
	ErrDecode          = kata.NewError("failed to decode data")
	ErrOpen            = kata.NewError("failed to open data file")
	ErrAssignment      = kata.NewError("invalid assignment")
	ErrEvaluate        = kata.NewError("failed to evaluate expression")
)
