package registry

import "log/slog"

// KeyFlagSet is an ordered, duplicate-free set of flag names that a module
// marks as prominent in help output.
type KeyFlagSet struct {
	names []string
	seen  map[string]bool
}

func (k *KeyFlagSet) add(name string) {
	if k.seen == nil {
		k.seen = make(map[string]bool)
	}
	if k.seen[name] {
		return
	}
	k.seen[name] = true
	k.names = append(k.names, name)
}

// Names returns the key flags in declaration order.
func (k *KeyFlagSet) Names() []string {
	if k == nil {
		return nil
	}
	out := make([]string, len(k.names))
	copy(out, k.names)
	return out
}

// Contains reports whether name is a key flag of the set.
func (k *KeyFlagSet) Contains(name string) bool {
	return k != nil && k.seen[name]
}

func (r *Registry) keyFlagSet(module string) *KeyFlagSet {
	k, ok := r.keyFlags[module]
	if !ok {
		k = &KeyFlagSet{}
		r.keyFlags[module] = k
	}
	return k
}

// DeclareKeyFlag marks flags as key flags of module. It panics for flags that
// are not defined.
func (r *Registry) DeclareKeyFlag(module string, names ...string) {
	set := r.keyFlagSet(module)
	for _, n := range names {
		r.mustSpec(n)
		set.add(n)
	}
}

// KeyFlags returns the key flags declared for module.
func (r *Registry) KeyFlags(module string) []string {
	return r.keyFlags[module].Names()
}

// AdoptModuleKeyFlags makes every key flag of module a key flag of the
// program itself, so it shows up in the program's short help.
func (r *Registry) AdoptModuleKeyFlags(module string) {
	names := r.KeyFlags(module)
	slog.Debug("Adopting module key flags.", "module", module, "count", len(names))
	r.DeclareKeyFlag(r.program, names...)
}
