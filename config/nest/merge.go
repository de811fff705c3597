package nest

import "github.com/0xalexb/hjarta-conf/config/tree"

// Merge deep-merges src into a copy of dst and returns the copy.
//
// Keys of dst come first, followed by keys only present in src. When both
// sides hold a key:
//   - two maps are merged recursively
//   - a list on the left absorbs the right value (a right list is concatenated)
//   - anything else becomes a list of both values, left first
func Merge(dst, src *tree.Map) *tree.Map {
	out := dst.Clone()

	for key, right := range src.All() {
		left, exists := out.Get(key)
		if !exists {
			out.Set(key, tree.Clone(right))

			continue
		}

		out.Set(key, mergeValues(left, right))
	}

	return out
}

func mergeValues(left, right tree.Value) tree.Value {
	leftMap, leftIsMap := left.(*tree.Map)
	rightMap, rightIsMap := right.(*tree.Map)

	if leftIsMap && rightIsMap {
		return Merge(leftMap, rightMap)
	}

	var out tree.List

	if leftList, ok := left.(tree.List); ok {
		out = append(out, leftList...)
	} else {
		out = append(out, left)
	}

	if rightList, ok := right.(tree.List); ok {
		for _, item := range rightList {
			out = append(out, tree.Clone(item))
		}
	} else {
		out = append(out, tree.Clone(right))
	}

	return out
}
