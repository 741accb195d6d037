// Package hardware - breadth-first shortest path over the coupling map.
package hardware

// pathItem pairs a qubit with its BFS parent during the walk.
type pathItem struct {
	qubit  int
	parent int // -1 for the root
}

// ShortestPath returns a minimum-hop path from a to b over the coupling
// map, inclusive of both endpoints, and ok=true when one exists.
// Disconnected pairs (and out-of-range input) return nil, false.
//
// Neighbor expansion follows sorted order, so the returned path is
// deterministic for identical profiles.
//
// Complexity: O(V + E).
func (p *Profile) ShortestPath(a, b int) ([]int, bool) {
	if a < 0 || b < 0 || a >= p.numQubits || b >= p.numQubits {
		return nil, false
	}
	if a == b {
		return []int{a}, true
	}

	parent := make([]int, p.numQubits)
	visited := make([]bool, p.numQubits)
	for i := range parent {
		parent[i] = -1
	}

	queue := make([]pathItem, 0, p.numQubits)
	queue = append(queue, pathItem{qubit: a, parent: -1})
	visited[a] = true

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		for _, nbr := range p.adj[item.qubit] {
			if visited[nbr] {
				continue
			}
			visited[nbr] = true
			parent[nbr] = item.qubit
			if nbr == b {
				return rebuild(parent, a, b), true
			}
			queue = append(queue, pathItem{qubit: nbr, parent: item.qubit})
		}
	}
	return nil, false
}

// Distance returns the hop count between a and b, and ok=false when no
// path exists.
func (p *Profile) Distance(a, b int) (int, bool) {
	path, ok := p.ShortestPath(a, b)
	if !ok {
		return 0, false
	}
	return len(path) - 1, true
}

// rebuild walks parent links from b back to a and reverses in place.
func rebuild(parent []int, a, b int) []int {
	path := []int{b}
	for cur := b; cur != a; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
