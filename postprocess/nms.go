package postprocess

import "sort"

// GreedyNMS suppresses overlapping same-class detections with standard
// greedy Non-Maximum Suppression. Exported open-vocabulary models usually
// carry a fused NMS node, so this runs only as an opt-in safety net for
// exports without one. The result is ordered by descending score.
func GreedyNMS(in []Result, iouThreshold float32) []Result {
	n := len(in)
	if n == 0 {
		return nil
	}

	ordered := make([]Result, n)
	copy(ordered, in)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Score > ordered[b].Score
	})

	kept := make([]Result, 0, n)
	used := make([]bool, n)

	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}
		anchor := ordered[i]
		kept = append(kept, anchor)
		used[i] = true

		for j := i + 1; j < n; j++ {
			if used[j] || ordered[j].Class != anchor.Class {
				continue
			}
			if anchor.Box.IoU(ordered[j].Box) > iouThreshold {
				used[j] = true
			}
		}
	}

	return kept
}
