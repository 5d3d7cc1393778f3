package wrapped

import "sort"

// ComputeCooccurrence groups sessions by calendar day and counts, for every
// pair of distinct projects active on the same day, one co-occurrence. The
// projectIndex map assigns wire indexes (the story's ranked project list);
// sessions whose project is unranked are ignored. Edge keys always carry the
// smaller index first. The result is sorted by count descending (then by
// index pair, for a deterministic wire order) and truncated to
// MaxCooccurEdges.
func ComputeCooccurrence(sessions []SessionRecord, projectIndex map[string]int) []CooccurEdge {
	perDay := map[string]map[int]bool{}
	for _, s := range sessions {
		if s.Start.IsZero() {
			continue
		}
		idx, ok := projectIndex[s.Project]
		if !ok {
			continue
		}
		day := s.Start.Format("2006-01-02")
		if perDay[day] == nil {
			perDay[day] = map[int]bool{}
		}
		perDay[day][idx] = true
	}

	type pair struct{ lo, hi int }
	counts := map[pair]int{}
	for _, active := range perDay {
		idxs := make([]int, 0, len(active))
		for idx := range active {
			idxs = append(idxs, idx)
		}
		sort.Ints(idxs)
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				counts[pair{idxs[i], idxs[j]}]++
			}
		}
	}

	edges := make([]CooccurEdge, 0, len(counts))
	for p, n := range counts {
		edges = append(edges, CooccurEdge{Lo: p.lo, Hi: p.hi, Count: n})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Count != edges[j].Count {
			return edges[i].Count > edges[j].Count
		}
		if edges[i].Lo != edges[j].Lo {
			return edges[i].Lo < edges[j].Lo
		}
		return edges[i].Hi < edges[j].Hi
	})
	if len(edges) > MaxCooccurEdges {
		edges = edges[:MaxCooccurEdges]
	}
	return edges
}
