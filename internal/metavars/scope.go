package metavars

// Scope owns the lifetime of every metavariable bound within one
// constraint-solving session: it hands out one Reference per unique Key,
// so two uses of the same generic name resolve to the same metavariable,
// and keeps the master list the solver's worklist walks (§5, "scope-owned
// resource lifetime").
type Scope struct {
	refs  map[Key]*Reference
	order []*Reference
}

func NewScope() *Scope {
	return &Scope{refs: make(map[Key]*Reference)}
}

// Bind returns the Reference for key, allocating a fresh one of the given
// metatype the first time key is seen in this scope. Lookups key off the
// canonical (case-folded) form so e.g. GenericKey("T") and GenericKey("t")
// bind to the same metavariable regardless of which spelling is seen first.
func (s *Scope) Bind(key Key, kind ValueKind) *Reference {
	if r, ok := s.refs[key.canonical()]; ok {
		return r
	}
	r := NewNamedReference(kind, key)
	s.refs[key.canonical()] = r
	s.order = append(s.order, r)
	return r
}

// Fresh allocates and registers an unnamed metavariable, for intermediate
// values the caller doesn't need to address by name later (e.g. a
// function call's per-site parameter/return slots).
func (s *Scope) Fresh(kind ValueKind) *Reference {
	r := NewReference(kind)
	s.order = append(s.order, r)
	return r
}

// ConstrainEqual unifies the metavariables bound to a and b, recording
// reason in the combined history.
func (s *Scope) ConstrainEqual(a, b Key, kind ValueKind, reason string) error {
	return s.Bind(a, kind).Unify(s.Bind(b, kind), reason)
}

// References returns every metavariable this scope has allocated, in
// allocation order, for the solver to walk.
func (s *Scope) References() []*Reference {
	return append([]*Reference(nil), s.order...)
}

// Lookup returns the Reference already bound to key, if any, without
// allocating one.
func (s *Scope) Lookup(key Key) (*Reference, bool) {
	r, ok := s.refs[key.canonical()]
	return r, ok
}
