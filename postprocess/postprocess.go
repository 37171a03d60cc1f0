// Package postprocess - Confidence filtering and top-k truncation of raw
// detector output.
package postprocess

import (
	"sort"

	"github.com/ovml/ovdet/images"
)

// Result is a single detection record: a pixel-space box, the class index
// into the prompt set, and a confidence score in [0,1].
type Result struct {
	Box   images.Rect
	Score float32
	Class int
}

// FilterByScore keeps detections whose score is strictly greater than the
// threshold; a detection scoring exactly the threshold is dropped. The
// input order is preserved. Empty output is valid.
func FilterByScore(in []Result, threshold float32) []Result {
	out := make([]Result, 0, len(in))
	for _, det := range in {
		if det.Score > threshold {
			out = append(out, det)
		}
	}
	return out
}

// TopK keeps the k highest-scoring detections. When len(in) <= k the input
// is returned unchanged (original order); otherwise the survivors come
// back in descending-score order, equal scores breaking toward the lower
// original index so repeated runs are reproducible.
func TopK(in []Result, k int) []Result {
	if k <= 0 {
		return nil
	}
	if len(in) <= k {
		return in
	}

	idx := make([]int, len(in))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return in[idx[a]].Score > in[idx[b]].Score
	})

	out := make([]Result, k)
	for i := 0; i < k; i++ {
		out[i] = in[idx[i]]
	}
	return out
}
