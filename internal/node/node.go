// Package node defines the node-type catalog used to classify lattice nodes.
//
// A node type is a fully-constructed value: a stable integer ID plus an
// optional parameter bundle (scalars, fixed-size tuples, per-node fields, or
// symbolic dynamic expressions). Types are partitioned into wet
// (fluid-contacting) and dry (wall/boundary) sets; the reserved Ghost and
// Inert types are stamped by the grid lifecycle and are never registered by
// simulations directly.
package node

import (
	"fmt"
	"sort"
)

// ParamKind discriminates the parameter variants.
type ParamKind uint8

const (
	// ParamScalar is a single number.
	ParamScalar ParamKind = iota
	// ParamTuple is a fixed-size numeric vector (e.g. a velocity).
	ParamTuple
	// ParamField carries one value per selected node.
	ParamField
	// ParamDynamic is a symbolic time- or space-dependent expression. It is
	// recorded as dependence flags on the simulation config, never
	// materialized into the grid.
	ParamDynamic
)

// DynamicExpr is a symbolic parameter expression.
type DynamicExpr struct {
	Source         string
	TimeDependent  bool
	SpaceDependent bool
}

// Param is a tagged union over the supported parameter variants.
type Param struct {
	Kind   ParamKind
	Scalar float64
	Tuple  []float64
	Field  []float64
	Expr   *DynamicExpr
}

// Scalar wraps a single number.
func Scalar(v float64) Param { return Param{Kind: ParamScalar, Scalar: v} }

// Tuple wraps a fixed-size numeric vector.
func Tuple(vs ...float64) Param { return Param{Kind: ParamTuple, Tuple: vs} }

// Field wraps a per-node value array. Its length must match the number of
// selected nodes at assignment time.
func Field(vs []float64) Param { return Param{Kind: ParamField, Field: vs} }

// Dynamic wraps a symbolic expression.
func Dynamic(expr *DynamicExpr) Param { return Param{Kind: ParamDynamic, Expr: expr} }

// Def is a registered node-type definition. Defs are created once through a
// Registry; grids consume Type instances built from them.
type Def struct {
	ID               uint32
	Name             string
	Wet              bool
	NeedsOrientation bool
}

// Type is a concrete node-type instance: a Def plus parameters and an
// optional explicit orientation.
type Type struct {
	Def         *Def
	Params      map[string]Param
	Orientation *uint32
}

// Instance builds a parameterless instance of the definition.
func (d *Def) Instance() *Type {
	return &Type{Def: d}
}

// WithParams builds an instance carrying the given parameter bundle.
func (d *Def) WithParams(params map[string]Param) *Type {
	return &Type{Def: d, Params: params}
}

// WithOrientation returns a copy of the instance with an explicit orientation.
func (t *Type) WithOrientation(o uint32) *Type {
	cp := *t
	cp.Orientation = &o
	return &cp
}

// ID returns the stable type identifier.
func (t *Type) ID() uint32 { return t.Def.ID }

// ValidateParams checks that every parameter is well-formed for an assignment
// covering the given number of selected nodes.
func (t *Type) ValidateParams(selected int) error {
	for name, p := range t.Params {
		switch p.Kind {
		case ParamScalar:
		case ParamTuple:
			if len(p.Tuple) == 0 {
				return fmt.Errorf("node type %s: param %q: empty tuple", t.Def.Name, name)
			}
		case ParamField:
			if len(p.Field) != selected {
				return fmt.Errorf("node type %s: param %q: field has %d values for %d selected nodes",
					t.Def.Name, name, len(p.Field), selected)
			}
		case ParamDynamic:
			if p.Expr == nil {
				return fmt.Errorf("node type %s: param %q: nil dynamic expression", t.Def.Name, name)
			}
		default:
			return fmt.Errorf("node type %s: param %q: unrecognized kind %d", t.Def.Name, name, p.Kind)
		}
	}
	return nil
}

// DynamicDependence reports whether any parameter is time- or
// space-dependent. The grid raises the corresponding simulation config flags
// instead of materializing the expression.
func (t *Type) DynamicDependence() (time, space bool) {
	for _, p := range t.Params {
		if p.Kind == ParamDynamic && p.Expr != nil {
			time = time || p.Expr.TimeDependent
			space = space || p.Expr.SpaceDependent
		}
	}
	return time, space
}

// Registry assigns stable IDs to node-type definitions and tracks the
// dry/wet partition.
type Registry struct {
	byID   map[uint32]*Def
	byName map[string]*Def
	dryIDs map[uint32]bool
	wetIDs map[uint32]bool
	next   uint32

	// Reserved definitions stamped by the grid lifecycle.
	Fluid *Def // default classification of untouched nodes
	Ghost *Def // envelope padding
	Inert *Def // dry nodes fully enclosed by dry neighbors
}

// FluidID is the type ID of the default fluid classification. A zero entry in
// a type map means the node was never explicitly classified.
const FluidID uint32 = 0

// NewRegistry creates a registry with the reserved fluid, ghost and inert
// definitions pre-registered.
func NewRegistry() *Registry {
	r := &Registry{
		byID:   make(map[uint32]*Def),
		byName: make(map[string]*Def),
		dryIDs: make(map[uint32]bool),
		wetIDs: make(map[uint32]bool),
	}
	r.Fluid = r.mustRegister("fluid", true, false)
	r.Ghost = r.mustRegister("ghost", false, false)
	r.Inert = r.mustRegister("inert", false, false)
	return r
}

// Register adds a node-type definition and assigns it the next free ID.
func (r *Registry) Register(name string, wet, needsOrientation bool) (*Def, error) {
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("node type %q already registered", name)
	}
	d := &Def{ID: r.next, Name: name, Wet: wet, NeedsOrientation: needsOrientation}
	r.next++
	r.byID[d.ID] = d
	r.byName[name] = d
	if wet {
		r.wetIDs[d.ID] = true
	} else {
		r.dryIDs[d.ID] = true
	}
	return d, nil
}

func (r *Registry) mustRegister(name string, wet, needsOrientation bool) *Def {
	d, err := r.Register(name, wet, needsOrientation)
	if err != nil {
		panic(err)
	}
	return d
}

// ByID looks up a definition by its type ID.
func (r *Registry) ByID(id uint32) (*Def, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ByName looks up a definition by name.
func (r *Registry) ByName(name string) (*Def, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// DryIDs returns the set of dry (non-fluid) type IDs.
func (r *Registry) DryIDs() map[uint32]bool { return r.dryIDs }

// WetIDs returns the set of wet (fluid-contacting) type IDs.
func (r *Registry) WetIDs() map[uint32]bool { return r.wetIDs }

// Names returns all registered type names in ID order, reserved types
// included. Used by tooling output.
func (r *Registry) Names() []string {
	ids := make([]int, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, r.byID[uint32(id)].Name)
	}
	return names
}
