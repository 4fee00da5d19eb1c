package metavars

// DataTypeSet is the universal set, or a finite union of Patterns (§3,
// "DataTypeSet"; §4.A).
type DataTypeSet struct {
	universal bool
	patterns  []*Pattern
}

func FullDataTypeSet() DataTypeSet  { return DataTypeSet{universal: true} }
func EmptyDataTypeSet() DataTypeSet { return DataTypeSet{} }

func PatternDataTypeSet(patterns ...*Pattern) DataTypeSet {
	return DataTypeSet{patterns: append([]*Pattern(nil), patterns...)}
}

func (s DataTypeSet) IsEmpty() bool { return !s.universal && len(s.patterns) == 0 }

func (s DataTypeSet) IsUniversal() bool { return s.universal }

func (s DataTypeSet) Patterns() []*Pattern { return append([]*Pattern(nil), s.patterns...) }

// Contains reports whether some pattern matches the concrete type t
// (§4.A, "DataTypeSet.contains").
func (s DataTypeSet) Contains(t Concrete) bool {
	if s.universal {
		return true
	}
	for _, p := range s.patterns {
		if p.Matches(t) {
			return true
		}
	}
	return false
}

// SupersetOf is deliberately partial (§4.A). For each pattern y in o, it
// must be covered by the union of self's patterns. Covering a union of
// rectangles by a union of rectangles is hard in general; this is the
// conservatively sound approximation the spec mandates: count how many of
// self's patterns intersect y; exactly one hit that definitely covers y
// marks it covered, a hit with unknown coverage propagates Unknown, and
// more than one intersecting pattern is Unknown (the union might still
// cover y, but proving it needs refinement enumeration this design does
// not model).
func (s DataTypeSet) SupersetOf(o DataTypeSet) Tri {
	if s.universal {
		return True
	}
	if o.universal {
		if len(s.patterns) == 0 {
			return False
		}
		return Unknown
	}
	if len(o.patterns) == 0 {
		return True // empty set is covered by anything
	}

	result := True
	for _, y := range o.patterns {
		var hit *Pattern
		hitCount := 0
		for _, x := range s.patterns {
			if x.IntersectsWith(y) {
				hitCount++
				hit = x
			}
		}
		switch {
		case hitCount == 0:
			return False
		case hitCount > 1:
			result = Unknown
		default:
			switch hit.Covers(y) {
			case False:
				return False
			case Unknown:
				result = Unknown
			}
		}
	}
	return result
}

// IntersectsWith reports whether any pair of patterns across the two sets
// has a non-empty intersection (§4.A).
func (s DataTypeSet) IntersectsWith(o DataTypeSet) bool {
	if s.universal || o.universal {
		return !s.IsEmpty() && !o.IsEmpty()
	}
	for _, p := range s.patterns {
		for _, q := range o.patterns {
			if p.IntersectsWith(q) {
				return true
			}
		}
	}
	return false
}

// Intersect computes a DataTypeSet admitting every type both sets admit.
// Exact pattern-level intersection is undecidable in general for a
// parameterized pattern language (a pattern may still carry unresolved
// metavariables), so, in the same conservative spirit §4.A mandates for
// Covers/SupersetOf, this keeps every pattern from either side that
// intersects something on the other side: a sound over-approximation
// (it may admit a few types that are in neither true intersection, but
// never excludes one that is).
func (s DataTypeSet) Intersect(o DataTypeSet) DataTypeSet {
	if s.universal {
		return o
	}
	if o.universal {
		return s
	}
	var out []*Pattern
	for _, p := range s.patterns {
		for _, q := range o.patterns {
			if p.IntersectsWith(q) {
				out = append(out, p)
				break
			}
		}
	}
	for _, q := range o.patterns {
		for _, p := range s.patterns {
			if p.IntersectsWith(q) {
				out = append(out, q)
				break
			}
		}
	}
	return DataTypeSet{patterns: dedupPatterns(out)}
}

func dedupPatterns(ps []*Pattern) []*Pattern {
	seen := make(map[*Pattern]bool, len(ps))
	var out []*Pattern
	for _, p := range ps {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Union returns a DataTypeSet admitting every type either side admits.
func (s DataTypeSet) Union(o DataTypeSet) DataTypeSet {
	if s.universal || o.universal {
		return FullDataTypeSet()
	}
	return DataTypeSet{patterns: dedupPatterns(append(append([]*Pattern(nil), s.patterns...), o.patterns...))}
}

// Value returns the concrete type the set resolves to, iff it consists of
// exactly one pattern and that pattern concretizes.
func (s DataTypeSet) Value() (Concrete, bool, error) {
	if s.universal || len(s.patterns) != 1 {
		return Concrete{}, false, nil
	}
	return s.patterns[0].Concretize()
}
