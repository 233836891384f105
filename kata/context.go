package kata

import (
	"maps"
	"slices"
)

// Object is implemented by data that can be bound into a [Context].
//
// Decompose populates the given empty context with the object's own
// bindings. It is called again for every occurrence of the object: once when
// bound with [Context.SetObject], and once per render for each element of an
// object array. Results are never cached.
//
// A nil Object decomposes to an empty context. A nil pointer stored in a
// non-nil Object, such as an element of the slice given to [SetObjects], is
// not detected: its Decompose method is called with a nil receiver and must
// handle it.
type Object interface {
	Decompose(c *Context)
}

// Context maps names to values for rendering.
//
// A context created by [NewContext] is filled by the caller and only read by
// the renderer. Loop iterations render against a derived context: a scope
// holding just the loop binding, with the enclosing context as its parent.
// Lookups fall through to the parent, so nothing is copied per iteration.
//
// The zero value is an empty context ready to use.
type Context struct {
	values map[string]Value
	parent *Context
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{values: make(map[string]Value)}
}

// SetString binds key to a text value.
func (c *Context) SetString(key, val string) {
	c.set(key, Value{kind: KindString, str: val})
}

// SetStringArray binds key to an array of text values. The slice is
// retained without copying.
func (c *Context) SetStringArray(key string, vals []string) {
	c.set(key, Value{kind: KindStringArray, strs: vals})
}

// SetObject decomposes obj into a new context owned by c and binds key to
// it. A nil obj binds an empty context.
func (c *Context) SetObject(key string, obj Object) {
	c.set(key, Value{kind: KindSubContext, sub: decompose(obj)})
}

// SetObjectArray binds key to an array of objects. The slice is retained
// without copying, and its elements are decomposed each time a template
// iterates over key.
func (c *Context) SetObjectArray(key string, objs []Object) {
	c.set(key, Value{kind: KindObjectArray, objs: objs})
}

// SetObjects binds key to an array of objects of any concrete type
// implementing [Object].
func SetObjects[T Object](c *Context, key string, objs []T) {
	arr := make([]Object, len(objs))
	for i, obj := range objs {
		arr[i] = obj
	}

	c.SetObjectArray(key, arr)
}

// Lookup returns the value bound to key in c or, for derived contexts, in
// the nearest enclosing scope that binds it.
func (c *Context) Lookup(key string) (Value, bool) {
	for scope := c; scope != nil; scope = scope.parent {
		if v, ok := scope.values[key]; ok {
			return v, true
		}
	}

	return Value{}, false
}

// Keys returns the sorted names visible in c, including enclosing scopes.
func (c *Context) Keys() []string {
	seen := make(map[string]struct{})

	for scope := c; scope != nil; scope = scope.parent {
		for key := range scope.values {
			seen[key] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Len returns the number of names visible in c.
func (c *Context) Len() int { return len(c.Keys()) }

func (c *Context) set(key string, v Value) {
	if c.values == nil {
		c.values = make(map[string]Value)
	}

	c.values[key] = v
}

// derive returns a scope binding key to v on top of c.
func (c *Context) derive(key string, v Value) *Context {
	return &Context{
		values: map[string]Value{key: v},
		parent: c,
	}
}

// decompose builds a fresh context from obj. Only a nil interface is
// skipped; see [Object] for typed nil pointers.
func decompose(obj Object) *Context {
	sub := NewContext()

	if obj != nil {
		obj.Decompose(sub)
	}

	return sub
}
