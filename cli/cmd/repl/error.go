package repl

import "github.com/ardnew/kata/kata"

// Predefined errors (sentinel values).
var (
	ErrOutOfBounds = kata.NewError("history index out of range")
	ErrNoContext   = kata.NewError("no template context")
	ErrCompile     = kata.NewError("compile template")
	ErrRender      = kata.NewError("render template")
)
