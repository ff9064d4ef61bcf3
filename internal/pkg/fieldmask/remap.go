package fieldmask

// RuleKind documents why a rule exists. Matching semantics do not depend on it.
type RuleKind string

const (
	// KindUnionCollapse references a oneof container by its parent because
	// masking into a variant's payload is not supported by the wire schema.
	KindUnionCollapse RuleKind = "union-collapse"

	// KindSyntheticRedirect sends form-only derived fields to the wire field
	// they are persisted in.
	KindSyntheticRedirect RuleKind = "synthetic-redirect"

	// KindCompositeWiden replaces a composite with a child that is safe to
	// overwrite wholesale.
	KindCompositeWiden RuleKind = "composite-widen"
)

func (k RuleKind) valid() bool {
	switch k {
	case KindUnionCollapse, KindSyntheticRedirect, KindCompositeWiden:
		return true
	}
	return false
}

// Matcher selects the paths a rule applies to.
type Matcher func(Path) bool

// Replacer produces the path that replaces a matched path.
type Replacer func(Path) Path

// Rule is one entry of a remap table.
type Rule struct {
	Name    string
	Kind    RuleKind
	Match   Matcher
	Replace Replacer
}

// Prefix matches source itself and every path below it.
func Prefix(source Path) Matcher {
	return func(p Path) bool {
		return p.HasPrefix(source)
	}
}

// To replaces any matched path with target.
func To(target Path) Replacer {
	return func(Path) Path {
		return target
	}
}

// PrefixRule is the common rule shape: everything under source becomes target.
func PrefixRule(name string, kind RuleKind, source, target Path) Rule {
	return Rule{Name: name, Kind: kind, Match: Prefix(source), Replace: To(target)}
}

// Rules is an ordered remap table. The first matching rule wins.
type Rules []Rule

// Remap returns the replacement from the first rule matching p, or p itself.
func (rs Rules) Remap(p Path) Path {
	for _, r := range rs {
		if r.Match != nil && r.Match(p) {
			return r.Replace(p)
		}
	}
	return p
}
