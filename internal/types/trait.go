package types

// Trait represents a named set of method and associated-type requirements.
// Parents form the inheritance chain: a type satisfying this trait must also
// provide everything the parents require.
type Trait struct {
	Name            string
	Methods         map[string]*Function
	AssociatedTypes []string
	Parents         []*Trait
}

func (t *Trait) String() string { return "trait " + t.Name }
func (t *Trait) IsType()        {}

// MethodNamed looks up a method signature by name, walking the parent chain.
func (t *Trait) MethodNamed(name string) *Function {
	if sig, ok := t.Methods[name]; ok {
		return sig
	}
	for _, p := range t.Parents {
		if sig := p.MethodNamed(name); sig != nil {
			return sig
		}
	}
	return nil
}

// RequiredMethods returns the names of every method this trait requires,
// including methods declared on transitive parent traits.
func (t *Trait) RequiredMethods() []string {
	seen := make(map[string]bool)
	var names []string
	t.collectMethods(seen, &names)
	return names
}

func (t *Trait) collectMethods(seen map[string]bool, names *[]string) {
	for name := range t.Methods {
		if !seen[name] {
			seen[name] = true
			*names = append(*names, name)
		}
	}
	for _, p := range t.Parents {
		p.collectMethods(seen, names)
	}
}

// RequiredAssociated returns the names of every associated type this trait
// requires, parents included.
func (t *Trait) RequiredAssociated() []string {
	seen := make(map[string]bool)
	var names []string
	t.collectAssociated(seen, &names)
	return names
}

func (t *Trait) collectAssociated(seen map[string]bool, names *[]string) {
	for _, name := range t.AssociatedTypes {
		if !seen[name] {
			seen[name] = true
			*names = append(*names, name)
		}
	}
	for _, p := range t.Parents {
		p.collectAssociated(seen, names)
	}
}

// Implementation binds one trait to one concrete type.
type Implementation struct {
	Trait           *Trait
	For             Type
	Methods         map[string]*Function
	AssociatedTypes map[string]Type
}

// IsComplete recomputes whether every required method and associated type,
// inherited requirements included, has an implementation. The answer is never
// cached, so it always reflects the current state of the implementation.
func (impl *Implementation) IsComplete() bool {
	for _, name := range impl.Trait.RequiredMethods() {
		if _, ok := impl.Methods[name]; !ok {
			return false
		}
	}
	for _, name := range impl.Trait.RequiredAssociated() {
		if _, ok := impl.AssociatedTypes[name]; !ok {
			return false
		}
	}
	return true
}

// Registry tracks trait implementations, keyed on the trait name and the
// implementing type's canonical string identity.
type Registry struct {
	impls map[string]map[string]*Implementation
}

// NewRegistry creates an empty trait registry.
func NewRegistry() *Registry {
	return &Registry{
		impls: make(map[string]map[string]*Implementation),
	}
}

// Register records an implementation of a trait for a type. A later
// registration for the same pair replaces the earlier one.
func (r *Registry) Register(impl *Implementation) {
	byType := r.impls[impl.Trait.Name]
	if byType == nil {
		byType = make(map[string]*Implementation)
		r.impls[impl.Trait.Name] = byType
	}
	byType[impl.For.String()] = impl
}

// Lookup returns the registered implementation of the named trait for typ,
// or nil if none exists.
func (r *Registry) Lookup(traitName string, typ Type) *Implementation {
	byType := r.impls[traitName]
	if byType == nil {
		return nil
	}
	return byType[typ.String()]
}

// Satisfies reports whether typ has a complete implementation of trait.
// Completeness is re-derived on each query against the live registry state.
func (r *Registry) Satisfies(typ Type, trait *Trait) bool {
	impl := r.Lookup(trait.Name, typ)
	return impl != nil && impl.IsComplete()
}
