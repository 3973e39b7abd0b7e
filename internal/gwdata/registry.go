package gwdata

// Registry assigns every attribute name referenced by a Settings document
// (base attributes, gear bonuses, modifier sources/targets, constraint
// attributes, distribution keys, indicators) a dense integer index, built
// once at Settings-construction time. Modifiers, affix bonuses and the
// per-condition attributes are compiled against a Registry index
// beforehand, per the source's "dense integer-indexed array" design note;
// the fixed stat names (Precision, Health, Damage, constraint attributes,
// ...) are still resolved by name through Lookup on each evaluation in
// internal/attributes and internal/scoring.
type Registry struct {
	names []string
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Resolve returns the dense index for name, allocating a new one if this is
// the first time name has been seen.
func (r *Registry) Resolve(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	i := len(r.names)
	r.names = append(r.names, name)
	r.index[name] = i
	return i
}

// Lookup returns the index for name without allocating one.
func (r *Registry) Lookup(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Name returns the attribute name for index i.
func (r *Registry) Name(i int) string {
	return r.names[i]
}

// Len returns the number of distinct attributes resolved so far. Every
// Attributes array allocated against this registry has exactly this length.
func (r *Registry) Len() int {
	return len(r.names)
}

// ConditionAttrNames returns the five per-condition attribute names for
// condition c: the modifier-writable "{c} Duration" and "{c} Coefficient"
// inputs, plus the three derived names the scoring layer writes back,
// "{c} Damage", "{c} Stacks" and "{c} DPS".
func ConditionAttrNames(c string) (duration, coefficient, damage, stacks, dps string) {
	return c + " Duration", c + " Coefficient", c + " Damage", c + " Stacks", c + " DPS"
}
