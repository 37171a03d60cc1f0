package inference

import (
	"image"

	"github.com/nfnt/resize"

	"github.com/ovml/ovdet/config"
	"github.com/ovml/ovdet/errdefs"
)

// PrepareInput resizes the source image to the model input shape and
// writes normalized CHW float32 planes into dst. Pixels are scaled to
// [0,1] and then shifted by the configured per-channel mean/std.
func PrepareInput(src image.Image, in config.Input, norm config.Normalize, dst []float32) error {
	channelSize := in.Width * in.Height
	if len(dst) < channelSize*3 {
		return errdefs.Compute("input tensor holds %d floats, model needs %d", len(dst), channelSize*3)
	}
	red := dst[0:channelSize]
	green := dst[channelSize : channelSize*2]
	blue := dst[channelSize*2 : channelSize*3]

	resized := resize.Resize(uint(in.Width), uint(in.Height), src, resize.Lanczos3)

	i := 0
	for y := 0; y < in.Height; y++ {
		for x := 0; x < in.Width; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			red[i] = (float32(r>>8)/255.0 - norm.Mean[0]) / norm.Std[0]
			green[i] = (float32(g>>8)/255.0 - norm.Mean[1]) / norm.Std[1]
			blue[i] = (float32(b>>8)/255.0 - norm.Mean[2]) / norm.Std[2]
			i++
		}
	}
	return nil
}
