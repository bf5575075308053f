// Package mo provides multi-objective comparison primitives: Pareto
// dominance, nondominated sorting and crowding distance. All functions
// assume minimization; maximize-type objectives must be sign-flipped
// before they get here.
package mo

import (
	"math"
	"sort"
)

// Dominates reports whether point a Pareto-dominates point b: a is no
// worse than b in every objective and strictly better in at least one.
func Dominates(a, b []float64) bool {
	if len(a) != len(b) {
		panic("mo: objective dimension mismatch")
	}
	better := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

// NondominatedRanks assigns each point its nondominated sorting rank.
// Rank 0 is the Pareto front, rank 1 is the front after removing rank 0,
// and so on.
func NondominatedRanks(points [][]float64) []int {
	n := len(points)
	ranks := make([]int, n)
	dominatedBy := make([]int, n)
	dominates := make([][]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if Dominates(points[i], points[j]) {
				dominates[i] = append(dominates[i], j)
			} else if Dominates(points[j], points[i]) {
				dominatedBy[i]++
			}
		}
	}

	var front []int
	for i := 0; i < n; i++ {
		if dominatedBy[i] == 0 {
			front = append(front, i)
		}
	}

	rank := 0
	for len(front) > 0 {
		var next []int
		for _, i := range front {
			ranks[i] = rank
			for _, j := range dominates[i] {
				dominatedBy[j]--
				if dominatedBy[j] == 0 {
					next = append(next, j)
				}
			}
		}
		rank++
		front = next
	}

	return ranks
}

// CrowdingDistance computes the NSGA-II crowding distance of each point
// within the given set. Boundary points get +Inf so they always survive
// truncation.
func CrowdingDistance(points [][]float64) []float64 {
	n := len(points)
	dist := make([]float64, n)
	if n == 0 {
		return dist
	}

	m := len(points[0])
	idx := make([]int, n)

	for obj := 0; obj < m; obj++ {
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool {
			return points[idx[a]][obj] < points[idx[b]][obj]
		})

		lo := points[idx[0]][obj]
		hi := points[idx[n-1]][obj]
		dist[idx[0]] = math.Inf(1)
		dist[idx[n-1]] = math.Inf(1)
		if hi == lo {
			continue
		}

		for k := 1; k < n-1; k++ {
			dist[idx[k]] += (points[idx[k+1]][obj] - points[idx[k-1]][obj]) / (hi - lo)
		}
	}

	return dist
}

// ParetoFront returns the indices of the nondominated (rank-0) points.
func ParetoFront(points [][]float64) []int {
	var front []int
	for i, p := range points {
		dominated := false
		for j, q := range points {
			if i != j && Dominates(q, p) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, i)
		}
	}
	return front
}

// SelectBest returns the indices of the k best points ordered by
// nondominated rank, ties broken by descending crowding distance.
// Used for successive-halving promotions and population truncation.
func SelectBest(points [][]float64, k int) []int {
	n := len(points)
	if k >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	ranks := NondominatedRanks(points)
	crowd := CrowdingDistance(points)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if ranks[idx[a]] != ranks[idx[b]] {
			return ranks[idx[a]] < ranks[idx[b]]
		}
		return crowd[idx[a]] > crowd[idx[b]]
	})

	return idx[:k]
}
