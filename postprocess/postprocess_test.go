package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovml/ovdet/images"
)

func det(score float32, class int) Result {
	return Result{Score: score, Class: class}
}

func scores(in []Result) []float32 {
	out := make([]float32, len(in))
	for i, d := range in {
		out[i] = d.Score
	}
	return out
}

func TestFilterByScoreStrictlyGreater(t *testing.T) {
	in := []Result{det(0.5, 0), det(0.51, 0), det(0.49, 1)}

	out := FilterByScore(in, 0.5)

	// A score exactly at the threshold is dropped.
	require.Len(t, out, 1)
	assert.Equal(t, float32(0.51), out[0].Score)
}

func TestFilterByScoreZeroThreshold(t *testing.T) {
	in := []Result{det(0, 0), det(0.001, 1)}

	out := FilterByScore(in, 0)

	require.Len(t, out, 1)
	assert.Equal(t, float32(0.001), out[0].Score)
}

func TestFilterByScorePreservesOrder(t *testing.T) {
	in := []Result{det(0.9, 0), det(0.2, 1), det(0.6, 2)}

	out := FilterByScore(in, 0.1)

	assert.Equal(t, []float32{0.9, 0.2, 0.6}, scores(out))
}

func TestTopKTruncates(t *testing.T) {
	// threshold=0.5, topk=2 scenario from the demo: raw [0.9 0.4 0.6 0.95]
	in := FilterByScore([]Result{det(0.9, 0), det(0.4, 1), det(0.6, 2), det(0.95, 3)}, 0.5)
	require.Equal(t, []float32{0.9, 0.6, 0.95}, scores(in))

	out := TopK(in, 2)

	require.Len(t, out, 2)
	assert.ElementsMatch(t, []float32{0.95, 0.9}, scores(out))
}

func TestTopKNoTruncationKeepsOrder(t *testing.T) {
	in := []Result{det(0.1, 0), det(0.9, 1)}

	out := TopK(in, 5)

	// Below the limit, input passes through untouched and unsorted.
	assert.Equal(t, []float32{0.1, 0.9}, scores(out))
}

func TestTopKZeroAndNegative(t *testing.T) {
	in := []Result{det(0.9, 0)}

	assert.Empty(t, TopK(in, 0))
	assert.Empty(t, TopK(in, -3))
}

func TestTopKTieBreaksByOriginalIndex(t *testing.T) {
	in := []Result{det(0.7, 0), det(0.7, 1), det(0.7, 2)}

	out := TopK(in, 2)

	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].Class)
	assert.Equal(t, 1, out[1].Class)
}

func TestTopKBoundProperty(t *testing.T) {
	in := []Result{det(0.1, 0), det(0.2, 1), det(0.3, 2), det(0.4, 3)}
	for k := 0; k <= 6; k++ {
		assert.LessOrEqual(t, len(TopK(in, k)), k, "k=%d", k)
	}
}

func TestGreedyNMSSuppressesSameClassOverlap(t *testing.T) {
	boxA := images.Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}
	boxB := images.Rect{X1: 5, Y1: 5, X2: 105, Y2: 105} // heavy overlap with A
	boxC := images.Rect{X1: 300, Y1: 300, X2: 400, Y2: 400}

	in := []Result{
		{Box: boxB, Score: 0.6, Class: 0},
		{Box: boxA, Score: 0.9, Class: 0},
		{Box: boxC, Score: 0.5, Class: 0},
	}

	out := GreedyNMS(in, 0.5)

	require.Len(t, out, 2)
	assert.Equal(t, float32(0.9), out[0].Score)
	assert.Equal(t, float32(0.5), out[1].Score)
}

func TestGreedyNMSIsClassAware(t *testing.T) {
	box := images.Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}

	in := []Result{
		{Box: box, Score: 0.9, Class: 0},
		{Box: box, Score: 0.8, Class: 1}, // identical box, different class
	}

	out := GreedyNMS(in, 0.5)

	assert.Len(t, out, 2)
}

func TestGreedyNMSEmptyInput(t *testing.T) {
	assert.Nil(t, GreedyNMS(nil, 0.5))
}
