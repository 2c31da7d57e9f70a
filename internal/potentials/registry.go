package potentials

import (
	"fmt"
	"sort"

	"github.com/san-kum/fluxsim/internal/field"
)

// Spec describes a term by name, as read from configuration.
type Spec struct {
	Name     string  `yaml:"name" json:"name"`
	Strength float64 `yaml:"strength" json:"strength"`
	Width    float64 `yaml:"width,omitempty" json:"width,omitempty"`
}

// DefaultBarrierWidth is the half width of the shielding slab.
const DefaultBarrierWidth = 1.0

type Registry struct {
	terms map[string]func(Spec) field.Term
}

func NewRegistry() *Registry {
	r := &Registry{terms: make(map[string]func(Spec) field.Term)}

	r.terms["gravity"] = func(s Spec) field.Term { return NewGravity(s.Strength) }
	r.terms["rotation"] = func(s Spec) field.Term { return NewRotation(s.Strength) }
	r.terms["atomic"] = func(s Spec) field.Term { return NewAtomic(s.Strength) }
	r.terms["barrier"] = func(s Spec) field.Term {
		w := s.Width
		if w == 0 {
			w = DefaultBarrierWidth
		}
		return NewBarrier(s.Strength, w)
	}

	return r
}

func (r *Registry) Get(s Spec) (field.Term, error) {
	fn, ok := r.terms[s.Name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown potential term: %s", field.ErrInvalidConfiguration, s.Name)
	}
	return fn(s), nil
}

// Build resolves every spec and checks each term against the grid.
func (r *Registry) Build(g *field.Grid, specs []Spec) ([]field.Term, error) {
	terms := make([]field.Term, 0, len(specs))
	for _, s := range specs {
		t, err := r.Get(s)
		if err != nil {
			return nil, err
		}
		if c, ok := t.(field.GridChecker); ok {
			if err := c.CheckGrid(g); err != nil {
				return nil, err
			}
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.terms))
	for name := range r.terms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
