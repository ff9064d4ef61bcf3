package fieldmask

import (
	"strings"
	"unicode"
)

// Path is a dot-delimited field path such as "embeddingGenerator.provider.apiKey".
type Path string

// Join builds a Path from individual segments.
func Join(segments ...string) Path {
	return Path(strings.Join(segments, "."))
}

// Segments splits the path on dots.
func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), ".")
}

// Child appends a segment to the path.
func (p Path) Child(segment string) Path {
	if p == "" {
		return Path(segment)
	}
	return p + "." + Path(segment)
}

// HasPrefix reports whether prefix is equal to p or names one of its ancestors.
// Matching is per segment: "index" is not a prefix of "indexer".
func (p Path) HasPrefix(prefix Path) bool {
	if prefix == "" {
		return false
	}
	if p == prefix {
		return true
	}
	return strings.HasPrefix(string(p), string(prefix)+".")
}

func (p Path) String() string {
	return string(p)
}

// Strings converts paths to plain strings, e.g. for a FieldMask.
func Strings(paths []Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = string(p)
	}
	return out
}

// Normalize converts every segment of p from camelCase to snake_case.
func Normalize(p Path) Path {
	segs := p.Segments()
	for i, s := range segs {
		segs[i] = SnakeCase(s)
	}
	return Join(segs...)
}

// SnakeCase inserts an underscore before every uppercase letter that is not
// the first rune and lowercases the result. Other runes pass through.
func SnakeCase(segment string) string {
	var b strings.Builder
	b.Grow(len(segment) + 4)
	for i, r := range segment {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
