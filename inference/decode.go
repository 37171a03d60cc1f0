package inference

import (
	"github.com/chewxy/math32"

	"github.com/ovml/ovdet/errdefs"
	"github.com/ovml/ovdet/images"
	"github.com/ovml/ovdet/postprocess"
)

// DecodeOutput parses a [1, 4+classes, anchors] output tensor into raw
// detections. Each anchor column holds cx,cy,w,h in model-input pixels
// followed by one score per prompt slot; the class is the argmax slot.
// No confidence filtering happens here - that belongs to postprocess.
//
// When logits is set, scores are squashed through a sigmoid; otherwise
// they are taken as probabilities.
func DecodeOutput(
	out []float32,
	classes, anchors int,
	inputW, inputH, origW, origH int,
	logits bool,
) ([]postprocess.Result, error) {
	if len(out) != (4+classes)*anchors {
		return nil, errdefs.Compute(
			"output tensor has %d floats, expected %d (4+%d classes x %d anchors)",
			len(out), (4+classes)*anchors, classes, anchors)
	}

	scaleX := float32(origW) / float32(inputW)
	scaleY := float32(origH) / float32(inputH)

	results := make([]postprocess.Result, 0, anchors)
	for idx := 0; idx < anchors; idx++ {
		class := 0
		best := math32.Inf(-1)
		for c := 0; c < classes; c++ {
			if score := out[(4+c)*anchors+idx]; score > best {
				best = score
				class = c
			}
		}
		if logits {
			best = sigmoid(best)
		}

		cx := out[idx] * scaleX
		cy := out[anchors+idx] * scaleY
		w := out[2*anchors+idx] * scaleX
		h := out[3*anchors+idx] * scaleY

		box := images.Rect{
			X1: cx - w/2,
			Y1: cy - h/2,
			X2: cx + w/2,
			Y2: cy + h/2,
		}.Clamp(float32(origW), float32(origH))

		results = append(results, postprocess.Result{
			Box:   box,
			Score: best,
			Class: class,
		})
	}
	return results, nil
}

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}
