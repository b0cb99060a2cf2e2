package regs

// NameBinding binds assembly names to register ids in both directions.
type NameBinding struct {
	nameToReg map[string]Reg
	regToName map[Reg]string
}

// NewNameBinding creates an empty binding.
func NewNameBinding() *NameBinding {
	return &NameBinding{
		nameToReg: make(map[string]Reg),
		regToName: make(map[Reg]string),
	}
}

// Bind binds name to r. Rebinding a name replaces its previous register.
func (b *NameBinding) Bind(name string, r Reg) {
	if old, ok := b.nameToReg[name]; ok {
		delete(b.regToName, old)
	}
	b.nameToReg[name] = r
	b.regToName[r] = name
}

// Lookup returns the register bound to name.
func (b *NameBinding) Lookup(name string) (Reg, bool) {
	r, ok := b.nameToReg[name]
	return r, ok
}

// Name returns the name bound to r.
func (b *NameBinding) Name(r Reg) (string, bool) {
	name, ok := b.regToName[r]
	return name, ok
}

// Len returns the number of bound names.
func (b *NameBinding) Len() int {
	return len(b.nameToReg)
}
