package fieldmask

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Node is one position of a dirty tree. It is either a Leaf flag or a Branch
// of named children; no other implementations exist.
type Node interface {
	isNode()
}

// Leaf reports whether the field at this position differs from the baseline.
type Leaf bool

// Branch holds the dirty state of a nested object keyed by field name.
type Branch map[string]Node

func (Leaf) isNode()   {}
func (Branch) isNode() {}

// FromMap converts an untyped dirty object (values are bools or nested
// objects) into a Branch. Any other value is a contract violation with the
// form layer and panics.
func FromMap(m map[string]any) Branch {
	b := make(Branch, len(m))
	for k, v := range m {
		switch tv := v.(type) {
		case bool:
			b[k] = Leaf(tv)
		case map[string]any:
			b[k] = FromMap(tv)
		default:
			panic(fmt.Sprintf("fieldmask: dirty value for %q is %T, want bool or object", k, v))
		}
	}
	return b
}

// Collect returns the path of every Leaf(true) in n. Keys are visited in
// sorted order so the result is deterministic.
func Collect(n Node) []Path {
	var out []Path
	collect(n, "", &out)
	return out
}

func collect(n Node, prefix Path, out *[]Path) {
	switch v := n.(type) {
	case nil:
	case Leaf:
		if v && prefix != "" {
			*out = append(*out, prefix)
		}
	case Branch:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			collect(v[k], prefix.Child(k), out)
		}
	default:
		panic(fmt.Sprintf("fieldmask: unexpected node %T at %q", n, prefix))
	}
}

// HasChanges reports whether n contains at least one Leaf(true).
func HasChanges(n Node) bool {
	switch v := n.(type) {
	case Leaf:
		return bool(v)
	case Branch:
		for _, child := range v {
			if HasChanges(child) {
				return true
			}
		}
	}
	return false
}

// Diff compares two JSON-shaped documents and returns the dirty tree of
// current against baseline. Objects present on both sides are compared
// recursively; anything else, arrays included, is compared as a whole and
// marks its own path. Absent keys, nil values and empty arrays are
// equivalent. Branches are only created when a descendant changed.
func Diff(baseline, current map[string]any) Branch {
	out := Branch{}
	keys := make(map[string]struct{}, len(baseline)+len(current))
	for k := range baseline {
		keys[k] = struct{}{}
	}
	for k := range current {
		keys[k] = struct{}{}
	}

	for k := range keys {
		before, after := baseline[k], current[k]
		bm, bIsObj := before.(map[string]any)
		am, aIsObj := after.(map[string]any)
		if bIsObj && aIsObj {
			if sub := Diff(bm, am); len(sub) > 0 {
				out[k] = sub
			}
			continue
		}
		if isBlank(before) && isBlank(after) {
			continue
		}
		if !reflect.DeepEqual(before, after) {
			out[k] = Leaf(true)
		}
	}
	return out
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	arr, ok := v.([]any)
	return ok && len(arr) == 0
}
