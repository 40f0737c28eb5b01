// Package generator turns declarative TOML farm configurations into
// complete workflow graphs.
//
// Configs reference entities either by numeric engine id or by name;
// names are resolved through a [Resolver], usually an
// index.EntityIndex. Generators assemble the pattern subgraphs (nexus
// leave, beacon search, clear mobs, find/move/enter chains) and return
// the finished graph for serialization.
package generator

import (
	"encoding/json"

	"github.com/matzehuels/stategraph/pkg/errors"
	"github.com/matzehuels/stategraph/pkg/workflow"
)

// Resolver resolves entity names to engine ids.
type Resolver interface {
	ResolveID(name string) (int, error)
}

// EntityRef is a config-side entity reference: either a numeric engine
// id or a name to resolve. In TOML and JSON it is written as a bare
// number or a string.
type EntityRef struct {
	Name string
	ID   int
}

// UnmarshalJSON accepts a number id or a string name.
func (r *EntityRef) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.Name = name
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig, "entity reference must be an id or a name, got %s", data)
}

// UnmarshalTOML accepts an integer id or a string name.
func (r *EntityRef) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case int64:
		r.ID = int(t)
	case float64:
		r.ID = int(t)
	case string:
		r.Name = t
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "entity reference must be an id or a name, got %T", v)
	}
	return nil
}

// IsZero reports whether the reference is unset.
func (r EntityRef) IsZero() bool {
	return r.ID == 0 && r.Name == ""
}

// Resolve returns the engine id for the reference, consulting res for
// named references. A zero reference resolves to 0 without error.
func (r EntityRef) Resolve(res Resolver) (int, error) {
	if r.ID != 0 {
		return r.ID, nil
	}
	if r.Name == "" {
		return 0, nil
	}
	if res == nil {
		return 0, errors.New(errors.ErrCodeEntityNotFound, "cannot resolve %q without an entity index", r.Name)
	}
	return res.ResolveID(r.Name)
}

// resolveAll resolves a slice of references, dropping zero entries.
func resolveAll(refs []EntityRef, res Resolver) ([]int, error) {
	ids := make([]int, 0, len(refs))
	for _, r := range refs {
		id, err := r.Resolve(res)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// positions converts [x, y] waypoint pairs from TOML into workflow
// positions.
func positions(pairs [][]float64) ([]workflow.Position, error) {
	out := make([]workflow.Position, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "waypoint %d has %d coordinates, want 2", i, len(p))
		}
		out = append(out, workflow.Position{X: p[0], Y: p[1]})
	}
	return out, nil
}

// linker chains LinkPins calls, keeping the first error.
type linker struct {
	g   *workflow.Graph
	err error
}

func (l *linker) link(a *workflow.Node, pinA string, b *workflow.Node, pinB string) {
	if l.err != nil {
		return
	}
	l.err = l.g.LinkPins(a, pinA, b, pinB)
}
