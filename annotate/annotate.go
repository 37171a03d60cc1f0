// Package annotate - Draws detections onto images and persists the result.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/ovml/ovdet/errdefs"
	"github.com/ovml/ovdet/postprocess"
	"github.com/ovml/ovdet/prompts"
)

// escKey dismisses the interactive display window.
const escKey = 27

var (
	boxColor   = color.RGBA{R: 0, G: 255, B: 0}
	labelColor = color.RGBA{R: 0, G: 255, B: 0}
)

// Label formats the text rendered next to a detection box:
// the class's primary prompt followed by the score to two decimals.
func Label(set prompts.PromptSet, det postprocess.Result) string {
	return fmt.Sprintf("%s %.2f", set.Primary(det.Class), det.Score)
}

// Draw renders a bounding box and label for every detection onto img.
func Draw(img *gocv.Mat, dets []postprocess.Result, set prompts.PromptSet) {
	for _, det := range dets {
		rect := det.Box.ToImageRect()
		gocv.Rectangle(img, rect, boxColor, 2)
		gocv.PutText(img, Label(set, det), rect.Min.Add(image.Pt(0, -4)),
			gocv.FontHersheyPlain, 1.2, labelColor, 2)
	}
}

// OutputPath is where the annotated copy of sourcePath lands: same
// basename inside outputDir. An existing file at that path is overwritten.
func OutputPath(outputDir, sourcePath string) string {
	return filepath.Join(outputDir, filepath.Base(sourcePath))
}

// Write persists the annotated image next to its siblings in outputDir.
func Write(img gocv.Mat, outputDir, sourcePath string) error {
	out := OutputPath(outputDir, sourcePath)
	if ok := gocv.IMWrite(out, img); !ok {
		return errdefs.IO("failed to write annotated image to %s", out)
	}
	return nil
}

// Show displays the annotated image in a window and blocks until the user
// presses ESC or closes the window.
func Show(img gocv.Mat, title string) {
	window := gocv.NewWindow(title)
	defer window.Close()

	window.IMShow(img)
	for {
		key := window.WaitKey(50)
		if key == escKey {
			return
		}
		if window.GetWindowProperty(gocv.WindowPropertyVisible) < 1 {
			return
		}
	}
}
