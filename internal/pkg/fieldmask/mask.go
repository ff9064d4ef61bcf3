package fieldmask

import (
	"errors"

	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

var (
	// ErrInvalidRule indicates a malformed entry in a rule table.
	ErrInvalidRule = errors.New("invalid remap rule")

	// ErrUnaddressablePath indicates a mask path that names no wire field.
	ErrUnaddressablePath = errors.New("field mask path is not addressable")
)

// Dedupe drops repeated paths, keeping the first occurrence of each.
func Dedupe(paths []Path) []Path {
	seen := make(map[Path]struct{}, len(paths))
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Pipeline turns a dirty tree into an update mask for one resource type.
type Pipeline struct {
	Rules Rules
}

// Compute collects dirty leaves, converts them to wire naming, remaps them
// and drops duplicates. An empty tree yields an empty mask.
func (pl Pipeline) Compute(tree Node) []Path {
	collected := Collect(tree)
	out := make([]Path, 0, len(collected))
	for _, p := range collected {
		out = append(out, pl.Rules.Remap(Normalize(p)))
	}
	return Dedupe(out)
}

// ToFieldMask wraps paths in a FieldMask. An empty mask means "replace
// nothing" and is returned as nil so it cannot be mistaken for a full overwrite.
func ToFieldMask(paths []Path) *fieldmaskpb.FieldMask {
	if len(paths) == 0 {
		return nil
	}
	return &fieldmaskpb.FieldMask{Paths: Strings(paths)}
}

// FromFieldMask is the inverse of ToFieldMask.
func FromFieldMask(m *fieldmaskpb.FieldMask) []Path {
	raw := m.GetPaths()
	if len(raw) == 0 {
		return nil
	}
	out := make([]Path, len(raw))
	for i, p := range raw {
		out[i] = Path(p)
	}
	return out
}
