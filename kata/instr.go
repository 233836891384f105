package kata

// Instruction is a node of a compiled template. The set of implementations
// is closed: [Text], [Parameter] and [ForEach].
type Instruction interface {
	instruction()
}

// Text emits its literal verbatim.
type Text struct {
	Literal string
}

// Parameter emits the value found by walking Path through the context.
// The path of "{{ a.b.c }}" is ["a", "b", "c"].
type Parameter struct {
	Path []string
}

// ForEach renders Body once per element of the array bound to Source, with
// the element bound to Binding.
type ForEach struct {
	Binding string
	Source  string
	Body    []Instruction
}

func (Text) instruction()      {}
func (Parameter) instruction() {}
func (ForEach) instruction()   {}
