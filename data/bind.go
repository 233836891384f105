package data

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/ardnew/kata/kata"
	"github.com/ardnew/kata/log"
)

// Object is a map of named values that decomposes into a template context.
type Object map[string]any

// Decompose binds each field of o into c. Objects reached through [Bind]
// have already been validated; fields of any other Object whose values
// cannot be bound are skipped and logged.
func (o Object) Decompose(c *kata.Context) {
	for key, val := range o {
		err := bindValue(c, key, val)
		if err != nil {
			log.Debug("object field skipped",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}
}

// Bind binds every entry of values into c. Nested objects and arrays of
// objects are validated in full before anything is bound, so a value Bind
// accepts decomposes without loss. Keys are bound in sorted order and the
// first failure is returned; earlier keys remain bound.
func Bind(c *kata.Context, values map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		err := validate(key, values[key])
		if err == nil {
			err = bindValue(c, key, values[key])
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// validate reports the first value under path that cannot be bound. Nested
// keys and array indexes are joined to path with dots.
func validate(path string, val any) error {
	if _, ok := scalar(val); ok {
		return nil
	}

	switch v := val.(type) {
	case map[string]any:
		return validateFields(path, v)

	case Object:
		return validateFields(path, v)

	case map[any]any:
		return validateFields(path, stringKeys(v))

	case []string:
		return nil

	case []map[string]any:
		for i, m := range v {
			err := validateFields(path+"."+strconv.Itoa(i), m)
			if err != nil {
				return err
			}
		}

		return nil

	case []any:
		return validateArray(path, v)

	default:
		return ErrUnsupportedType.With(
			slog.String("key", path),
			slog.String("type", fmt.Sprintf("%T", val)))
	}
}

func validateFields(path string, m map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		err := validate(path+"."+key, m[key])
		if err != nil {
			return err
		}
	}

	return nil
}

func validateArray(path string, arr []any) error {
	var strs, objs int

	for i, elem := range arr {
		if _, ok := scalar(elem); ok {
			strs++

			continue
		}

		switch elem.(type) {
		case map[string]any, Object, map[any]any:
			objs++

			err := validate(path+"."+strconv.Itoa(i), elem)
			if err != nil {
				return err
			}

		default:
			return ErrUnsupportedType.With(
				slog.String("key", path),
				slog.Int("index", i),
				slog.String("type", fmt.Sprintf("%T", elem)))
		}
	}

	if strs > 0 && objs > 0 {
		return ErrMixedArray.With(slog.String("key", path))
	}

	return nil
}

func bindValue(c *kata.Context, key string, val any) error {
	if s, ok := scalar(val); ok {
		c.SetString(key, s)

		return nil
	}

	switch v := val.(type) {
	case map[string]any:
		c.SetObject(key, Object(v))

	case Object:
		c.SetObject(key, v)

	case map[any]any:
		c.SetObject(key, stringKeys(v))

	case []string:
		c.SetStringArray(key, v)

	case []map[string]any:
		objs := make([]kata.Object, len(v))
		for i, m := range v {
			objs[i] = Object(m)
		}

		c.SetObjectArray(key, objs)

	case []any:
		return bindArray(c, key, v)

	default:
		return ErrUnsupportedType.With(
			slog.String("key", key),
			slog.String("type", fmt.Sprintf("%T", val)))
	}

	return nil
}

// bindArray binds an array of all scalars as a StringArray, or an array of
// all maps as an ObjectArray. An empty array is an empty StringArray.
func bindArray(c *kata.Context, key string, arr []any) error {
	var (
		strs []string
		objs []kata.Object
	)

	for i, elem := range arr {
		if s, ok := scalar(elem); ok {
			strs = append(strs, s)

			continue
		}

		switch m := elem.(type) {
		case map[string]any:
			objs = append(objs, Object(m))

		case Object:
			objs = append(objs, m)

		case map[any]any:
			objs = append(objs, stringKeys(m))

		default:
			return ErrUnsupportedType.With(
				slog.String("key", key),
				slog.Int("index", i),
				slog.String("type", fmt.Sprintf("%T", elem)))
		}
	}

	switch {
	case len(strs) > 0 && len(objs) > 0:
		return ErrMixedArray.With(slog.String("key", key))

	case len(objs) > 0:
		c.SetObjectArray(key, objs)

	default:
		c.SetStringArray(key, strs)
	}

	return nil
}

// scalar returns the text form of val if it is a scalar.
func scalar(val any) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case []byte:
		return string(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case time.Time:
		return v.Format(time.RFC3339), true
	default:
		return "", false
	}
}

// stringKeys converts a map with arbitrary keys, as produced by some YAML
// documents, to an Object.
func stringKeys(m map[any]any) Object {
	o := make(Object, len(m))
	for k, v := range m {
		o[fmt.Sprint(k)] = v
	}

	return o
}
