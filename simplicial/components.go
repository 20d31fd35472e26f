// SPDX-License-Identifier: MIT
// Package: hodgenet/simplicial
//
// components.go — connected components of the 1-skeleton by breadth-first search.
//
// The component count equals β_0 of the complex, which makes it an exact,
// solver-free cross-check for the harmonic count at level 0.

package simplicial

// Components returns the connected components of the 1-skeleton as lists of
// level-0 indices. Components are ordered by their smallest index and each
// list is in BFS visit order starting from that index.
// Complexity: O(n_0 + n_1).
func (c *Complex) Components() [][]int {
	n := c.Count(0)
	if n == 0 {
		return nil
	}
	adj := make([][]int, n)
	if edges := c.Level(1); edges != nil {
		vertices := c.Level(0)
		edges.Do(func(_ int, s Simplex) bool {
			u, _ := vertices.Index(Simplex{s[0]})
			v, _ := vertices.Index(Simplex{s[1]})
			adj[u] = append(adj[u], v)
			adj[v] = append(adj[v], u)
			return true
		})
	}

	visited := make([]bool, n)
	queue := make([]int, 0, n)
	var out [][]int
	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		queue = append(queue[:0], root)
		for head := 0; head < len(queue); head++ {
			for _, v := range adj[queue[head]] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
		out = append(out, append([]int(nil), queue...))
	}

	return out
}
