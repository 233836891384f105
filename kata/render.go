package kata

import (
	"log/slog"
	"strings"
)

// Render evaluates t against c and returns the output text.
//
// Rendering stops at the first failure, which is returned as a
// [*RenderError]; no partial output is returned with it. The context c is
// only read. A nil c renders like an empty context.
func (t *Template) Render(c *Context) (string, error) {
	if c == nil {
		c = NewContext()
	}

	var out strings.Builder

	err := renderTo(&out, t.instrs, c)
	if err != nil {
		t.logger.Trace("render failed", slog.Any("error", err))

		return "", err
	}

	t.logger.Trace("render complete", slog.Int("output_bytes", out.Len()))

	return out.String(), nil
}

func renderTo(out *strings.Builder, instrs []Instruction, c *Context) error {
	for _, instr := range instrs {
		var err error

		switch in := instr.(type) {
		case Text:
			out.WriteString(in.Literal)

		case Parameter:
			err = renderParameter(out, in, c)

		case ForEach:
			err = renderForEach(out, in, c)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func renderParameter(out *strings.Builder, in Parameter, c *Context) error {
	v, ok := resolve(c, in.Path)
	if !ok {
		return &RenderError{Kind: CannotResolve, Path: in.Path}
	}

	out.WriteString(v.String())

	return nil
}

func renderForEach(out *strings.Builder, in ForEach, c *Context) error {
	v, ok := resolve(c, strings.Split(in.Source, pathSep))
	if !ok {
		return &RenderError{Kind: CannotIterate, Key: in.Source}
	}

	switch v.kind {
	case KindStringArray:
		for _, s := range v.strs {
			sub := c.derive(in.Binding, Value{kind: KindString, str: s})

			err := renderTo(out, in.Body, sub)
			if err != nil {
				return err
			}
		}

	case KindObjectArray:
		for _, obj := range v.objs {
			// The decomposed context lives only as long as this iteration.
			ref := Value{kind: KindSubContextRef, sub: decompose(obj)}

			err := renderTo(out, in.Body, c.derive(in.Binding, ref))
			if err != nil {
				return err
			}
		}

	default:
		return &RenderError{Kind: CannotIterate, Key: in.Source}
	}

	return nil
}

// resolve walks path from c. Each segment after the first descends into a
// nested context; a missing name at any step fails the lookup. A text or
// array value ends the walk early and is the result, whatever segments
// remain.
func resolve(c *Context, path []string) (Value, bool) {
	if len(path) == 0 {
		return Value{}, false
	}

	v, ok := c.Lookup(path[0])
	if !ok {
		return Value{}, false
	}

	for _, seg := range path[1:] {
		sub, nested := v.Context()
		if !nested {
			break
		}

		v, ok = sub.Lookup(seg)
		if !ok {
			return Value{}, false
		}
	}

	return v, true
}
