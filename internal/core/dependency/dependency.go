// Package dependency models typed precedence edges between routing
// operations and detects cycles before an edge is persisted.
package dependency

// Type is the precedence semantics of an edge.
type Type string

const (
	// FinishToStart: the dependent may not start until the predecessor completes.
	FinishToStart Type = "finish_to_start"
	// StartToStart: the dependent may not start until the predecessor has started.
	StartToStart Type = "start_to_start"
	// FinishToFinish constrains finishing only; it never gates starting.
	FinishToFinish Type = "finish_to_finish"
	// StartToFinish constrains finishing only; it never gates starting.
	StartToFinish Type = "start_to_finish"
)

// Valid reports whether t is a known dependency type.
func Valid(t Type) bool {
	switch t {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	}
	return false
}

// Edge is a directed precedence constraint: OperationID depends on
// DependsOnID. LagTime is in minutes and applies after the predecessor
// event fires.
type Edge struct {
	OperationID string
	DependsOnID string
	Type        Type
	LagTime     int
}

// WouldCreateCycle reports whether adding candidate to the existing edges
// of a routing closes a dependency cycle. Kahn's algorithm over the
// combined edge set: if a topological order cannot consume every node,
// the candidate closes a cycle.
func WouldCreateCycle(existing []Edge, candidate Edge) bool {
	if candidate.OperationID == candidate.DependsOnID {
		return true
	}

	edges := make([]Edge, 0, len(existing)+1)
	edges = append(edges, existing...)
	edges = append(edges, candidate)

	indegree := map[string]int{}
	successors := map[string][]string{}
	for _, e := range edges {
		// Edge direction for ordering: predecessor -> dependent.
		successors[e.DependsOnID] = append(successors[e.DependsOnID], e.OperationID)
		indegree[e.OperationID]++
		if _, ok := indegree[e.DependsOnID]; !ok {
			indegree[e.DependsOnID] = 0
		}
	}

	queue := make([]string, 0, len(indegree))
	for id, deg := range indegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	consumed := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		consumed++
		for _, next := range successors[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return consumed != len(indegree)
}
