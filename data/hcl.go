package data

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// hclBody converts a native-syntax HCL body. Attributes are evaluated
// without variables or functions. Blocks of one type are collected, in
// order, into an array of objects under the type name; a block's labels
// are bound as "labels".
func hclBody(body *hclsyntax.Body) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	for name, attr := range body.Attributes {
		val, err := hclValue(name, attr.Expr)
		if err != nil {
			return nil, err
		}

		out[name] = val
	}

	for _, block := range body.Blocks {
		obj, err := hclBody(block.Body)
		if err != nil {
			return nil, err
		}

		if len(block.Labels) > 0 {
			labels := make([]any, len(block.Labels))
			for i, l := range block.Labels {
				labels[i] = l
			}

			obj["labels"] = labels
		}

		switch prev := out[block.Type].(type) {
		case nil:
			out[block.Type] = []any{obj}
		case []any:
			if _, isAttr := body.Attributes[block.Type]; isAttr {
				return nil, ErrDecode.With(
					slog.String("issue", "block and attribute share a name"),
					slog.String("name", block.Type))
			}

			out[block.Type] = append(prev, obj)
		default:
			return nil, ErrDecode.With(
				slog.String("issue", "block and attribute share a name"),
				slog.String("name", block.Type))
		}
	}

	return out, nil
}

func hclAttributes(attrs hcl.Attributes) (map[string]any, error) {
	out := make(map[string]any, len(attrs))

	for name, attr := range attrs {
		val, err := hclValue(name, attr.Expr)
		if err != nil {
			return nil, err
		}

		out[name] = val
	}

	return out, nil
}

func hclValue(name string, expr hcl.Expression) (any, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, ErrDecode.Wrap(diags).With(slog.String("attribute", name))
	}

	native, err := ctyToNative(name, val)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("attribute", name))
	}

	return native, nil
}

// ctyToNative converts v, found at the dotted path, to the Go values
// produced by the other decoders. Numbers become json.Number so that
// integers keep their exact text.
func ctyToNative(path string, v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		return json.Number(v.AsBigFloat().Text('f', -1)), nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		arr := make([]any, 0, v.LengthInt())

		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()

			native, err := ctyToNative(path+"."+strconv.Itoa(len(arr)), elem)
			if err != nil {
				return nil, err
			}

			arr = append(arr, native)
		}

		return arr, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())

		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()

			native, err := ctyToNative(path+"."+key.AsString(), elem)
			if err != nil {
				return nil, err
			}

			m[key.AsString()] = native
		}

		return m, nil

	default:
		return nil, ErrUnsupportedType.With(
			slog.String("path", path),
			slog.String("type", ty.FriendlyName()))
	}
}
