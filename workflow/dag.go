package workflow

import (
	"fmt"

	"github.com/flowmesh/agentdag/types"
)

// color marks a node's DFS state for cycle detection.
type color int

const (
	white color = iota // unvisited
	gray               // on the current DFS stack
	black              // fully explored
)

// DAG is the validated graph of a WorkflowRequest's AgentSpecs. Nodes are
// keyed by agent_id; edges run from a dependency to its dependent,
// derived from each AgentSpec's Inputs list.
type DAG struct {
	nodes        map[string]types.AgentSpec
	order        []string            // agent_id insertion order, for deterministic layering
	predecessors map[string][]string // agent_id -> ids it depends on
	successors   map[string][]string // agent_id -> ids that depend on it
}

// NewDAG builds and validates a DAG from specs. It rejects duplicate
// agent_ids, dependencies naming an unknown agent_id, and cycles.
func NewDAG(specs []types.AgentSpec) (*DAG, error) {
	d := &DAG{
		nodes:        make(map[string]types.AgentSpec, len(specs)),
		predecessors: make(map[string][]string, len(specs)),
		successors:   make(map[string][]string, len(specs)),
	}

	for _, spec := range specs {
		if spec.AgentID == "" {
			return nil, fmt.Errorf("%w", ErrEmptyAgentID)
		}
		if _, exists := d.nodes[spec.AgentID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAgentID, spec.AgentID)
		}
		d.nodes[spec.AgentID] = spec
		d.order = append(d.order, spec.AgentID)
		d.predecessors[spec.AgentID] = append([]string(nil), spec.Inputs...)
	}

	for _, spec := range specs {
		for _, dep := range spec.Inputs {
			if _, exists := d.nodes[dep]; !exists {
				return nil, fmt.Errorf("%w: %q depends on unknown agent_id %q", ErrDanglingDependency, spec.AgentID, dep)
			}
			d.successors[dep] = append(d.successors[dep], spec.AgentID)
		}
	}

	if err := d.detectCycle(); err != nil {
		return nil, err
	}

	return d, nil
}

// detectCycle runs DFS with gray/black coloring over the successor edges,
// naming the specific back edge when a cycle is found.
func (d *DAG) detectCycle() error {
	colors := make(map[string]color, len(d.nodes))
	var stack []string

	var visit func(id string) error
	visit = func(id string) error {
		colors[id] = gray
		stack = append(stack, id)

		for _, next := range d.successors[id] {
			switch colors[next] {
			case white:
				if err := visit(next); err != nil {
					return err
				}
			case gray:
				return fmt.Errorf("%w: %s -> %s", ErrCycle, id, next)
			case black:
				// already fully explored via another path, safe to skip
			}
		}

		colors[id] = black
		stack = stack[:len(stack)-1]
		return nil
	}

	for _, id := range d.order {
		if colors[id] == white {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Nodes returns the agent_id -> AgentSpec map. Callers must not mutate it.
func (d *DAG) Nodes() map[string]types.AgentSpec {
	return d.nodes
}

// Predecessors returns the agent_ids id directly depends on, in
// declaration order.
func (d *DAG) Predecessors(id string) []string {
	return d.predecessors[id]
}

// Successors returns the agent_ids that directly depend on id.
func (d *DAG) Successors(id string) []string {
	return d.successors[id]
}

// IsReady reports whether every predecessor of id is present in completed.
func (d *DAG) IsReady(id string, completed map[string]bool) bool {
	for _, dep := range d.predecessors[id] {
		if !completed[dep] {
			return false
		}
	}
	return true
}

// Layers computes the canonical topological partition: layer 0 is every
// node with no predecessors; layer k+1 is every remaining node whose
// predecessors are all satisfied by layers 0..k. Within a layer, order
// matches the AgentSpec declaration order, for deterministic logging and
// tests only — it carries no concurrency meaning.
func (d *DAG) Layers() [][]string {
	indegree := make(map[string]int, len(d.nodes))
	for _, id := range d.order {
		indegree[id] = len(d.predecessors[id])
	}

	var layers [][]string
	remaining := len(d.order)

	for remaining > 0 {
		var layer []string
		for _, id := range d.order {
			if indegree[id] == 0 {
				layer = append(layer, id)
			}
		}
		if len(layer) == 0 {
			// Only reachable if detectCycle missed something; defensive.
			break
		}

		layers = append(layers, layer)
		for _, id := range layer {
			indegree[id] = -1 // mark claimed so it's excluded from future layers
			remaining--
			for _, next := range d.successors[id] {
				indegree[next]--
			}
		}
	}

	return layers
}
