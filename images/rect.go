// Package images - Image-space geometry and input resolution utilities.
package images

import "image"

// Rect is an axis-aligned bounding box in pixel coordinates.
// X2,Y2 are exclusive, matching image.Rectangle semantics.
type Rect struct {
	X1, Y1, X2, Y2 float32
}

// ToImageRect converts to an integral image.Rectangle for drawing.
func (r Rect) ToImageRect() image.Rectangle {
	return image.Rect(int(r.X1), int(r.Y1), int(r.X2), int(r.Y2)).Canon()
}

// Area returns the box area; degenerate boxes report 0.
func (r Rect) Area() float32 {
	w := r.X2 - r.X1
	h := r.Y2 - r.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IoU computes Intersection over Union against another box. Returns a
// value in [0,1]; non-overlapping or degenerate pairs return 0.
func (r Rect) IoU(o Rect) float32 {
	ix1 := max(r.X1, o.X1)
	iy1 := max(r.Y1, o.Y1)
	ix2 := min(r.X2, o.X2)
	iy2 := min(r.Y2, o.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0
	}
	inter := interW * interH

	union := r.Area() + o.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Clamp restricts the box to the [0,0]-(width,height) frame.
func (r Rect) Clamp(width, height float32) Rect {
	return Rect{
		X1: max(0, min(r.X1, width)),
		Y1: max(0, min(r.Y1, height)),
		X2: max(0, min(r.X2, width)),
		Y2: max(0, min(r.Y2, height)),
	}
}
