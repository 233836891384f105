package data

import "maps"

// Merge returns the union of the given maps. A key in a later map
// replaces the same key in an earlier one, except that two objects under
// the same key are merged recursively. The inputs are not modified.
func Merge(ms ...map[string]any) map[string]any {
	out := make(map[string]any)

	for _, m := range ms {
		mergeInto(out, m)
	}

	return out
}

func mergeInto(dst, src map[string]any) {
	for key, val := range src {
		sm, srcIsMap := val.(map[string]any)
		dm, dstIsMap := dst[key].(map[string]any)

		switch {
		case srcIsMap && dstIsMap:
			merged := maps.Clone(dm)
			mergeInto(merged, sm)
			dst[key] = merged
		case srcIsMap:
			merged := make(map[string]any, len(sm))
			mergeInto(merged, sm)
			dst[key] = merged
		default:
			dst[key] = val
		}
	}
}
