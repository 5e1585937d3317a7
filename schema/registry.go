package schema

import (
	"github.com/veilstone/objectprop/errors"
)

// Registry is an immutable index from type identifier to class layout
// and from enum identifier to symbolic value maps. It is safe to share
// one Registry across concurrent decode and encode calls: nothing
// mutates it after construction.
type Registry struct {
	classes map[uint32]*ClassDef
	enums   map[uint32]*EnumDef
	symbols map[uint32]map[int64]string

	classOrder []*ClassDef
}

// NewRegistry constructs a Registry from an externally parsed schema
// description. Input order is preserved for listing. Missing class,
// property and enum hashes are filled in with HashName; duplicate
// identifiers reject the whole schema.
func NewRegistry(classes []ClassDef, enums []EnumDef) (*Registry, error) {
	r := &Registry{
		classes: make(map[uint32]*ClassDef, len(classes)),
		enums:   make(map[uint32]*EnumDef, len(enums)),
		symbols: make(map[uint32]map[int64]string, len(enums)),
	}

	enumsByName := make(map[string]uint32, len(enums))
	for i := range enums {
		e := enums[i]
		if e.Name == "" {
			return nil, errors.Schema("enum at index %d has no name", i)
		}
		if e.ID == 0 {
			e.ID = HashName(e.Name)
		}
		if _, dup := r.enums[e.ID]; dup {
			return nil, errors.Schema("duplicate enum id 0x%08X (%s)", e.ID, e.Name)
		}
		syms := make(map[int64]string, len(e.Options))
		for _, opt := range e.Options {
			if _, dup := syms[opt.Value]; !dup {
				syms[opt.Value] = opt.Name
			}
		}
		r.enums[e.ID] = &e
		r.symbols[e.ID] = syms
		enumsByName[e.Name] = e.ID
	}

	for i := range classes {
		c := classes[i]
		if c.Name == "" {
			return nil, errors.Schema("class at index %d has no name", i)
		}
		if c.TypeID == 0 {
			c.TypeID = HashName(c.Name)
		}
		if _, dup := r.classes[c.TypeID]; dup {
			return nil, errors.Schema("duplicate type id 0x%08X (%s)", c.TypeID, c.Name)
		}

		props := make([]PropertyDef, len(c.Properties))
		copy(props, c.Properties)
		for j := range props {
			p := &props[j]
			if p.Name == "" {
				return nil, errors.Schema("class %s: property at index %d has no name", c.Name, j)
			}
			if p.Hash == 0 {
				p.Hash = HashName(p.Name)
			}
			bindEnums(&p.Type, enumsByName)
		}
		c.Properties = props

		r.classes[c.TypeID] = &c
		r.classOrder = append(r.classOrder, &c)
	}

	return r, nil
}

// bindEnums resolves enum references by name throughout a type spec.
// Enums absent from the schema still get a stable id from HashName;
// their raw values simply never resolve to symbols.
func bindEnums(t *TypeSpec, byName map[string]uint32) {
	if t.Kind == KindEnum && t.EnumID == 0 {
		if id, ok := byName[t.EnumName]; ok {
			t.EnumID = id
		} else {
			t.EnumID = HashName(t.EnumName)
		}
	}
	if t.Elem != nil {
		bindEnums(t.Elem, byName)
	}
}

// LookupClass returns the class layout for a type id.
func (r *Registry) LookupClass(id uint32) (*ClassDef, bool) {
	c, ok := r.classes[id]
	return c, ok
}

// LookupEnum returns the enum definition for an enum id.
func (r *Registry) LookupEnum(id uint32) (*EnumDef, bool) {
	e, ok := r.enums[id]
	return e, ok
}

// EnumSymbol resolves a raw enum value to its symbolic name. Missing
// enums or values are not errors; enum sets may legitimately outgrow
// the schema.
func (r *Registry) EnumSymbol(enumID uint32, raw int64) (string, bool) {
	syms, ok := r.symbols[enumID]
	if !ok {
		return "", false
	}
	name, ok := syms[raw]
	return name, ok
}

// Classes returns all class layouts in schema order. The returned slice
// is shared; callers must not modify it.
func (r *Registry) Classes() []*ClassDef {
	return r.classOrder
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	return len(r.classes)
}
