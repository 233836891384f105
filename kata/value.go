package kata

// Kind identifies the variant held by a [Value].
type Kind int

const (
	// KindString is a single text value.
	KindString Kind = iota

	// KindStringArray is an ordered sequence of text values.
	KindStringArray

	// KindObjectArray is an ordered sequence of objects, each decomposed
	// into its own context when iterated.
	KindObjectArray

	// KindSubContext is a nested context owned by the binding context.
	KindSubContext

	// KindSubContextRef is a nested context owned elsewhere. The renderer
	// binds loop variables this way for the duration of one iteration.
	KindSubContextRef
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindStringArray:
		return "StringArray"
	case KindObjectArray:
		return "ObjectArray"
	case KindSubContext:
		return "SubContext"
	case KindSubContextRef:
		return "SubContextRef"
	default:
		return "Unknown"
	}
}

// Placeholders rendered in place of values that have no text form.
const (
	placeholderStringArray   = "[string_arr]"
	placeholderObjectArray   = "[object_arr]"
	placeholderSubContext    = "[object]"
	placeholderSubContextRef = "[object_ref]"
)

// Value is the tagged variant bound to a name in a [Context].
//
// Values do not copy the data they are built from. Slices given to
// [Context.SetStringArray] and [Context.SetObjectArray] are retained as is,
// so the caller must leave them unmodified while rendering.
type Value struct {
	kind Kind
	str  string
	strs []string
	objs []Object
	sub  *Context
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// String returns the text rendered for v: the text of a String value, or a
// fixed placeholder for every other kind.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindStringArray:
		return placeholderStringArray
	case KindObjectArray:
		return placeholderObjectArray
	case KindSubContext:
		return placeholderSubContext
	case KindSubContextRef:
		return placeholderSubContextRef
	default:
		return ""
	}
}

// Strings returns the elements of a StringArray value.
func (v Value) Strings() ([]string, bool) {
	return v.strs, v.kind == KindStringArray
}

// Objects returns the elements of an ObjectArray value.
func (v Value) Objects() ([]Object, bool) {
	return v.objs, v.kind == KindObjectArray
}

// Context returns the nested context of a SubContext or SubContextRef value.
func (v Value) Context() (*Context, bool) {
	switch v.kind {
	case KindSubContext, KindSubContextRef:
		return v.sub, v.sub != nil
	default:
		return nil, false
	}
}
