// Package kata compiles and renders text templates.
//
// A template is literal text with embedded directives. [Compile] turns it
// into a tree of [Instruction] values in one forward pass, and
// [Template.Render] walks that tree against a [Context] to produce output.
//
// # Syntax
//
//	Template   → (Text | Directive)*
//	Directive  → Parameter | ForEach
//	Parameter  → '{{' Path '}}'
//	ForEach    → '{{' 'foreach' Name 'in' Key '}}' Template '{{' 'end' '}}'
//	Path       → Name ('.' Name)*
//
// Names stop at a space or '}'. Spaces inside the delimiters and around
// keywords are optional; tabs and newlines are not skipped. Text outside
// directives is copied byte for byte. There are no expressions, conditionals,
// includes or escapes.
//
// # Example
//
//	t := kata.MustCompile("{{ foreach r in results }}- {{ r.title }}\n{{ end }}")
//
//	c := kata.NewContext()
//	kata.SetObjects(c, "results", []result{{"A"}, {"B"}})
//
//	out, err := t.Render(c) // "- A\n- B\n"
//
// where result implements [Object]:
//
//	func (r result) Decompose(c *kata.Context) { c.SetString("title", r.title) }
//
// # Values
//
// Each name in a context is bound to a [Value] of one [Kind]. A parameter
// referring to a String renders its text; the other kinds render as fixed
// placeholders such as "[string_arr]". Only StringArray and ObjectArray
// values can be iterated.
//
// Paths descend through nested contexts bound with [Context.SetObject] or
// introduced by a loop over objects. Every segment that meets a nested
// context must be bound in it, or rendering fails with CannotResolve; a
// segment that meets any other kind stops the walk.
//
// # Errors
//
// Compilation fails with a [*ParseError] carrying the byte offset of the
// failure. Rendering fails with a [*RenderError] naming the offending path
// or key. Both match their kind's sentinel with [errors.Is], such as
// [ErrExpected] or [ErrCannotIterate].
package kata
