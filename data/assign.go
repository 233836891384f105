package data

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
)

// Assignment is a single key=value pair given on the command line.
type Assignment struct {
	Key   string
	Value string
}

// ParseAssignments splits each argument at its first '=' into an
// [Assignment]. The key must not be empty.
func ParseAssignments(args []string) ([]Assignment, error) {
	out := make([]Assignment, 0, len(args))

	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, ErrAssignment.With(slog.String("argument", arg))
		}

		out = append(out, Assignment{Key: key, Value: val})
	}

	return out, nil
}

// Values converts literal assignments into a data map. A value containing
// a comma becomes an array of its parts. A dotted key creates nested
// objects, so "user.name=x" binds name inside user.
func Values(assignments []Assignment) (map[string]any, error) {
	out := make(map[string]any)

	for _, a := range assignments {
		var val any = a.Value
		if strings.Contains(a.Value, ",") {
			parts := strings.Split(a.Value, ",")

			arr := make([]any, len(parts))
			for i, p := range parts {
				arr[i] = p
			}

			val = arr
		}

		err := setPath(out, a.Key, val)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Evaluate compiles each assignment value as an expression and binds its
// result under the key. Expressions see env and the results of every
// assignment before them.
func Evaluate(assignments []Assignment, env map[string]any) (map[string]any, error) {
	scope := Merge(env)

	out := make(map[string]any)

	for _, a := range assignments {
		prog, err := expr.Compile(a.Value, expr.Env(scope))
		if err != nil {
			return nil, ErrEvaluate.Wrap(err).With(
				slog.String("key", a.Key),
				slog.String("expression", a.Value))
		}

		val, err := expr.Run(prog, scope)
		if err != nil {
			return nil, ErrEvaluate.Wrap(err).With(
				slog.String("key", a.Key),
				slog.String("expression", a.Value))
		}

		val = normalize(val)

		err = setPath(out, a.Key, val)
		if err != nil {
			return nil, err
		}

		err = setPath(scope, a.Key, val)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// setPath stores val in m at the dotted key, creating intermediate maps.
func setPath(m map[string]any, key string, val any) error {
	segs := strings.Split(key, ".")

	for i, seg := range segs[:len(segs)-1] {
		if seg == "" {
			return ErrAssignment.With(slog.String("key", key))
		}

		next, ok := m[seg].(map[string]any)
		if !ok {
			if _, exists := m[seg]; exists {
				return ErrAssignment.With(
					slog.String("key", key),
					slog.String("conflict", strings.Join(segs[:i+1], ".")))
			}

			next = make(map[string]any)
			m[seg] = next
		}

		m = next
	}

	last := segs[len(segs)-1]
	if last == "" {
		return ErrAssignment.With(slog.String("key", key))
	}

	m[last] = val

	return nil
}

// normalize converts expression results to the shapes Bind accepts.
func normalize(val any) any {
	switch v := val.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out

	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = normalize(e)
		}

		return out

	default:
		return v
	}
}
