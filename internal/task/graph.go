package task

// Graph is the dependency graph of a task batch. Edges point from a task
// to each of its prerequisites.
type Graph struct {
	ids []int64
	adj [][]int
}

// NewGraph builds the dependency graph for the batch. Dependency entries
// that reference ids outside the batch are ignored.
func NewGraph(tasks []Task) *Graph {
	index := make(map[int64]int, len(tasks))
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
		ids[i] = t.ID
	}

	adj := make([][]int, len(tasks))
	for i, t := range tasks {
		for _, dep := range t.Dependencies {
			if j, ok := index[dep]; ok {
				adj[i] = append(adj[i], j)
			}
		}
	}

	return &Graph{ids: ids, adj: adj}
}

// BlockedCounts returns, for each task in batch order, how many tasks in
// the batch list it as a prerequisite.
func (g *Graph) BlockedCounts() []int {
	counts := make([]int, len(g.ids))
	for _, deps := range g.adj {
		for _, j := range deps {
			counts[j]++
		}
	}
	return counts
}

// Node colors for the iterative depth-first search.
const (
	white = iota // unvisited
	gray         // on the current path
	black        // fully explored
)

// Cycles returns every distinct dependency cycle in the graph. Each cycle
// is the sequence of task ids along the loop with the starting id repeated
// at the end. Traversal order follows batch order, so the result is
// deterministic for a given batch.
func (g *Graph) Cycles() [][]int64 {
	colors := make([]int, len(g.ids))
	var cycles [][]int64

	type frame struct {
		node int
		next int
	}
	var stack []frame
	var path []int

	for root := range g.ids {
		if colors[root] != white {
			continue
		}
		colors[root] = gray
		stack = append(stack[:0], frame{node: root})
		path = append(path[:0], root)

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(g.adj[f.node]) {
				nb := g.adj[f.node][f.next]
				f.next++
				switch colors[nb] {
				case white:
					colors[nb] = gray
					stack = append(stack, frame{node: nb})
					path = append(path, nb)
				case gray:
					// Back edge: the path segment from nb to the top
					// of the stack closes a cycle.
					cycles = append(cycles, g.cycleFrom(path, nb))
				}
			} else {
				colors[f.node] = black
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
			}
		}
	}

	return cycles
}

func (g *Graph) cycleFrom(path []int, nb int) []int64 {
	start := len(path) - 1
	for start > 0 && path[start] != nb {
		start--
	}
	cycle := make([]int64, 0, len(path)-start+1)
	for _, idx := range path[start:] {
		cycle = append(cycle, g.ids[idx])
	}
	return append(cycle, g.ids[nb])
}
