package solve

import "math"

// flowSolver reduces the assignment to min-cost flow on the bipartite
// network: source -> student edges of unit capacity, student -> supervisor
// edges carrying the negated composite pair weight, and one unit edge per
// workload slot from supervisor to sink carrying the negated fill bonus.
// Fill bonuses decrease with the slot ordinal, so the unit edges form a
// convex cost sequence and successive shortest augmenting paths stay exact.
// Augmentation stops when the best residual path no longer improves the
// composite objective; students left unsaturated are the unmatched ones.
type flowSolver struct{}

// NewFlowSolver returns the successive-shortest-augmenting-path engine. Its
// runtime is polynomial in students x supervisors and independent of the
// capacity magnitudes, which makes it the better pick when workloads are
// large.
func NewFlowSolver() Solver {
	return flowSolver{}
}

func (flowSolver) Name() string {
	return EngineFlow
}

func (s flowSolver) Solve(p Problem) (*Assignment, error) {
	arena, w, err := prepare(p, s.Name())
	if err != nil {
		return nil, err
	}
	n, m := p.students(), p.supervisors()
	if n == 0 {
		return assignmentFromPairs(p, s.Name(), nil), nil
	}

	// Node layout: source, students, supervisors, sink.
	source, sink := 0, n+m+1
	g := newNetwork(n + m + 2)
	for i := 0; i < n; i++ {
		g.addEdge(source, 1+i, 1, 0)
	}
	pairEdges := make(map[int][2]int) // edge index -> (student, supervisor)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if !p.allowed(i, j) {
				continue
			}
			pairEdges[len(g.edges)] = [2]int{i, j}
			g.addEdge(1+i, 1+n+j, 1, -w.pair(p, i, j))
		}
	}
	for slot := 0; slot < arena.len(); slot++ {
		g.addEdge(1+n+arena.supervisor[slot], sink, 1, -w.fill(p.Capacities[arena.supervisor[slot]], arena.ordinal[slot]))
	}

	for unit := 0; unit < n; unit++ {
		cost, ok := g.augment(source, sink)
		if !ok || cost >= 0 {
			break
		}
	}

	var pairs []Pair
	for i := 0; i < n; i++ {
		for _, e := range g.adj[1+i] {
			key, ok := pairEdges[e]
			if ok && g.edges[e].cap == 0 {
				pairs = append(pairs, Pair{Student: key[0], Supervisor: key[1]})
			}
		}
	}
	return assignmentFromPairs(p, s.Name(), pairs), nil
}

type flowEdge struct {
	to   int
	cap  int64
	cost int64
}

type network struct {
	edges []flowEdge
	adj   [][]int
}

func newNetwork(nodes int) *network {
	return &network{adj: make([][]int, nodes)}
}

// addEdge inserts a forward edge and its zero-capacity residual twin.
func (g *network) addEdge(u, v int, capacity, cost int64) {
	g.adj[u] = append(g.adj[u], len(g.edges))
	g.edges = append(g.edges, flowEdge{to: v, cap: capacity, cost: cost})
	g.adj[v] = append(g.adj[v], len(g.edges))
	g.edges = append(g.edges, flowEdge{to: u, cap: 0, cost: -cost})
}

// augment pushes one unit of flow along the cheapest residual path, found by
// queue-based Bellman-Ford (costs are negative, Dijkstra does not apply).
// It returns the path cost and whether a path exists.
func (g *network) augment(source, sink int) (int64, bool) {
	const inf = math.MaxInt64 / 2
	dist := make([]int64, len(g.adj))
	prev := make([]int, len(g.adj))
	inQueue := make([]bool, len(g.adj))
	for i := range dist {
		dist[i] = inf
		prev[i] = -1
	}
	dist[source] = 0

	queue := []int{source}
	inQueue[source] = true
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		inQueue[u] = false
		for _, e := range g.adj[u] {
			edge := g.edges[e]
			if edge.cap == 0 || dist[u]+edge.cost >= dist[edge.to] {
				continue
			}
			dist[edge.to] = dist[u] + edge.cost
			prev[edge.to] = e
			if !inQueue[edge.to] {
				queue = append(queue, edge.to)
				inQueue[edge.to] = true
			}
		}
	}
	if prev[sink] == -1 {
		return 0, false
	}

	for v := sink; v != source; {
		e := prev[v]
		g.edges[e].cap--
		g.edges[e^1].cap++
		v = g.edges[e^1].to
	}
	return dist[sink], true
}
