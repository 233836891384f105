// Package data binds structured data to template contexts.
//
// Data arrives as a map[string]any, decoded from YAML, JSON or HCL with
// [Load] and [Decode], built from key=value strings with
// [ParseAssignments] and [Values], or computed with expr-lang expressions by [Evaluate].
// The maps are combined with [Merge] and bound to a [kata.Context] with
// [Bind]:
//
//	string                            String
//	bool, number, json.Number, nil    String, formatted
//	time.Time                         String, RFC 3339
//	map[string]any                    nested context ([Object])
//	array of maps                     ObjectArray of [Object]
//	array of scalars                  StringArray
//
// Arrays mixing maps with scalars, nested arrays, and other Go types are
// rejected.
package data
