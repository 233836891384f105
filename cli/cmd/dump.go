package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/kata/kata"
)

// Dump prints the compiled instruction tree of a template.
type Dump struct {
	Template string `arg:"" default:"-"    help:"Template file or '-' for stdin" optional:""`
	Format   string `       default:"tree" enum:"tree,json,yaml"  help:"Output format (${enum})" short:"f"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tmpl, err := compileFile(ctx, d.Template)
	if err != nil {
		return err
	}

	return dumpTree(stdout(ctx), d.Format, tmpl.Instructions())
}

// node is the serialized form of a [kata.Instruction].
type node struct {
	Type    string   `json:"type"              yaml:"type"`
	Literal *string  `json:"literal,omitempty" yaml:"literal,omitempty"`
	Path    []string `json:"path,omitempty"    yaml:"path,omitempty"`
	Binding string   `json:"binding,omitempty" yaml:"binding,omitempty"`
	Source  string   `json:"source,omitempty"  yaml:"source,omitempty"`
	Body    []node   `json:"body,omitempty"    yaml:"body,omitempty"`
}

func makeNodes(instrs []kata.Instruction) []node {
	nodes := make([]node, 0, len(instrs))

	for _, instr := range instrs {
		switch in := instr.(type) {
		case kata.Text:
			nodes = append(nodes, node{Type: "text", Literal: &in.Literal})
		case kata.Parameter:
			nodes = append(nodes, node{Type: "parameter", Path: in.Path})
		case kata.ForEach:
			nodes = append(nodes, node{
				Type:    "foreach",
				Binding: in.Binding,
				Source:  in.Source,
				Body:    makeNodes(in.Body),
			})
		}
	}

	return nodes
}

func dumpTree(w io.Writer, format string, instrs []kata.Instruction) error {
	switch format {
	case "tree":
		var b strings.Builder
		writeTree(&b, instrs, 0)

		_, err := io.WriteString(w, b.String())

		return err

	case "json":
		out, err := json.MarshalIndent(makeNodes(instrs), "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintf(w, "%s\n", out)

		return err

	case "yaml":
		out, err := yaml.Marshal(makeNodes(instrs))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(out)

		return err

	default:
		return ErrUnknownFormat.With(slog.String("format", format))
	}
}

// writeTree writes one instruction per line, indenting loop bodies:
//
//	text "Hello "
//	parameter user.name
//	foreach i in items
//	  parameter i
func writeTree(b *strings.Builder, instrs []kata.Instruction, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, instr := range instrs {
		b.WriteString(indent)

		switch in := instr.(type) {
		case kata.Text:
			b.WriteString("text " + strconv.Quote(in.Literal) + "\n")
		case kata.Parameter:
			b.WriteString("parameter " + strings.Join(in.Path, ".") + "\n")
		case kata.ForEach:
			b.WriteString("foreach " + in.Binding + " in " + in.Source + "\n")
			writeTree(b, in.Body, depth+1)
		}
	}
}
