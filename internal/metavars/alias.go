package metavars

// Alias is the indirection layer between a Reference and its canonical
// Data block (§5, "Reference -> Alias -> Data"). Unifying two
// metavariables repoints one Alias's target at the other's root rather
// than mutating References directly, so every outstanding Reference into
// the unified pair keeps working without being revisited. The Rust
// original additionally tracks weak back-references from Data to its
// Aliases so a dropped Alias can be pruned eagerly; Go's garbage collector
// makes that bookkeeping unnecessary; a merged-away Alias is simply
// unreachable once nothing points at it anymore.
type Alias struct {
	target *Alias
	data   *Data
}

func newAlias(d *Data) *Alias { return &Alias{data: d} }

// root follows the target chain to the representative Alias, compressing
// the path so future lookups are O(1).
func (a *Alias) root() *Alias {
	if a.target == nil {
		return a
	}
	r := a.target.root()
	a.target = r
	return r
}

func (a *Alias) resolve() *Data { return a.root().data }

// mergeInto repoints a's root at other's root, after folding a's root
// Data into other's root Data. Returns an error if the merged constraint
// history is contradictory.
func (a *Alias) mergeInto(other *Alias, reason string) error {
	ra, ro := a.root(), other.root()
	if ra == ro {
		return nil
	}
	survivor, absorbed := ro, ra
	if err := survivor.data.absorb(absorbed.data, reason); err != nil {
		return err
	}
	absorbed.target = survivor
	absorbed.data = nil
	return nil
}

// absorb folds o's constraint history and pending constraints into d,
// tightening d's possible set to their intersection. Anyone watching o as a
// Function operand or depending on o as a target must end up watching d
// instead, or narrowing either block after the merge would stop waking the
// other half of the relationship.
func (d *Data) absorb(o *Data, reason string) error {
	if d == o {
		return nil
	}
	for _, h := range o.history {
		if err := d.within(h.set, h.reason); err != nil {
			return err
		}
	}
	if err := d.within(o.possible, reason); err != nil {
		return err
	}
	d.pending = append(d.pending, o.pending...)
	if len(o.pending) > 0 {
		d.dirty = true
	}
	for _, c := range o.pending {
		if c.Kind != ConstraintFunction {
			continue
		}
		for _, op := range c.Operands {
			op.data().addDependent(d)
		}
	}
	for _, dep := range o.dependents {
		d.addDependent(dep)
	}
	if d.key == nil {
		d.key = o.key
	}
	return nil
}
