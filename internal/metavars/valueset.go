package metavars

// ValueSet is the possible-values set tracked for one metavariable: a
// triple of per-metatype partitions, only one of which is ever meaningful
// for a given metavariable (its Kind is fixed at creation). Set operations
// distribute component-wise across the triple (§4.A, "Combined Set"); this
// lets constraint application stay generic over Kind instead of branching
// on it at every call site.
type ValueSet struct {
	Kind      ValueKind
	Booleans  BooleanSet
	Integers  IntegerSet
	DataTypes DataTypeSet
}

func FullValueSet(kind ValueKind) ValueSet {
	return ValueSet{Kind: kind, Booleans: FullBooleanSet, Integers: FullIntegerSet(), DataTypes: FullDataTypeSet()}
}

func EmptyValueSet(kind ValueKind) ValueSet {
	return ValueSet{Kind: kind, Booleans: EmptyBooleanSet, Integers: EmptyIntegerSet(), DataTypes: EmptyDataTypeSet()}
}

// SingletonSet builds a ValueSet admitting exactly v, with Kind inferred
// from v itself.
func SingletonSet(v Value) ValueSet {
	s := EmptyValueSet(v.Kind())
	switch v.Kind() {
	case KindBoolean:
		b, _ := v.Bool()
		s.Booleans = SingletonBooleanSet(b)
	case KindInteger:
		i, _ := v.Int()
		s.Integers = SingletonIntegerSet(i)
	case KindDataType:
		t, _ := v.Type()
		s.DataTypes = PatternDataTypeSet(concreteAsPattern(t))
	}
	return s
}

// PatternValueSet builds a data-type ValueSet from a list of patterns.
func PatternValueSet(patterns ...*Pattern) ValueSet {
	return ValueSet{Kind: KindDataType, DataTypes: PatternDataTypeSet(patterns...)}
}

func (s ValueSet) IsEmpty() bool {
	switch s.Kind {
	case KindBoolean:
		return s.Booleans.IsEmpty()
	case KindInteger:
		return s.Integers.IsEmpty()
	default:
		return s.DataTypes.IsEmpty()
	}
}

func (s ValueSet) Contains(v Value) bool {
	switch s.Kind {
	case KindBoolean:
		b, ok := v.Bool()
		return ok && s.Booleans.Contains(b)
	case KindInteger:
		i, ok := v.Int()
		return ok && s.Integers.Contains(i)
	default:
		t, ok := v.Type()
		return ok && s.DataTypes.Contains(t)
	}
}

// Value returns the single remaining possibility, if there is exactly one.
func (s ValueSet) Value() (Value, bool) {
	switch s.Kind {
	case KindBoolean:
		b, ok := s.Booleans.Value()
		if !ok {
			return Value{}, false
		}
		return BoolValue(b), true
	case KindInteger:
		i, ok := s.Integers.Value()
		if !ok {
			return Value{}, false
		}
		return IntValue(i), true
	default:
		t, ok, err := s.DataTypes.Value()
		if !ok || err != nil {
			return Value{}, false
		}
		return TypeValue(t), true
	}
}

func (s ValueSet) Intersect(o ValueSet) ValueSet {
	return ValueSet{
		Kind:      s.Kind,
		Booleans:  s.Booleans.Intersect(o.Booleans),
		Integers:  s.Integers.Intersect(o.Integers),
		DataTypes: s.DataTypes.Intersect(o.DataTypes),
	}
}

func (s ValueSet) Union(o ValueSet) ValueSet {
	return ValueSet{
		Kind:      s.Kind,
		Booleans:  s.Booleans.Union(o.Booleans),
		Integers:  s.Integers.Union(o.Integers),
		DataTypes: s.DataTypes.Union(o.DataTypes),
	}
}

func (s ValueSet) Subtract(o ValueSet) ValueSet {
	return ValueSet{
		Kind:      s.Kind,
		Booleans:  s.Booleans.Subtract(o.Booleans),
		Integers:  s.Integers.Subtract(o.Integers),
		DataTypes: EmptyDataTypeSet(),
	}
}

// SupersetOf is three-valued for data-type metavariables (DataTypeSet's
// coverage check is conservative) and definite otherwise.
func (s ValueSet) SupersetOf(o ValueSet) Tri {
	switch s.Kind {
	case KindBoolean:
		return FromBool(s.Booleans.SupersetOf(o.Booleans))
	case KindInteger:
		return FromBool(s.Integers.SupersetOf(o.Integers))
	default:
		return s.DataTypes.SupersetOf(o.DataTypes)
	}
}

func (s ValueSet) String() string {
	switch s.Kind {
	case KindBoolean:
		return boolSetString(s.Booleans)
	case KindInteger:
		return s.Integers.String()
	default:
		return dataTypeSetString(s.DataTypes)
	}
}

func boolSetString(s BooleanSet) string {
	switch {
	case s.IsEmpty():
		return "{}"
	case s == FullBooleanSet:
		return "{false, true}"
	default:
		v, _ := s.Value()
		if v {
			return "{true}"
		}
		return "{false}"
	}
}

func dataTypeSetString(s DataTypeSet) string {
	if s.IsUniversal() {
		return "<any>"
	}
	if s.IsEmpty() {
		return "{}"
	}
	out := "{"
	for i, p := range s.Patterns() {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	return out + "}"
}

// concreteAsPattern lifts a fully resolved Concrete into a fully-bound
// Pattern so it can be stored alongside symbolic patterns in a DataTypeSet.
func concreteAsPattern(t Concrete) *Pattern {
	params := make([]Parameter, len(t.Parameters))
	for i, p := range t.Parameters {
		params[i] = Parameter{Name: p.Name, Value: boundReference(p.Value)}
	}
	return &Pattern{
		Class:      t.Class,
		Nullable:   boundReference(BoolValue(t.Nullable)),
		Variation:  NamedVariation(t.Variation),
		Parameters: &params,
	}
}
