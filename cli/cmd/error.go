package cmd

import "github.com/ardnew/kata/kata"

// Predefined errors (sentinel values).
var (
	ErrReadTemplate  = kata.NewError("read template")
	ErrWriteOutput   = kata.NewError("write output")
	ErrLoadData      = kata.NewError("load data")
	ErrStdinReused   = kata.NewError("standard input named more than once")
	ErrCompile       = kata.NewError("compile template")
	ErrRender        = kata.NewError("render template")
	ErrCheck         = kata.NewError("template has errors")
	ErrUnknownFormat = kata.NewError("unknown output format")
	ErrJSONMarshal   = kata.NewError("marshal JSON")
	ErrYAMLMarshal   = kata.NewError("marshal YAML")
	ErrWriteConfig   = kata.NewError("write configuration file")
	ErrFileExists    = kata.NewError("file exists (use --force to overwrite)")
)
