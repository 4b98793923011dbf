package region

import (
	"fmt"
	"image"
)

// Box is a pixel rectangle, X2 and Y2 exclusive.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Empty reports whether the box is degenerate.
func (b Box) Empty() bool {
	return b.X2 <= b.X1 || b.Y2 <= b.Y1
}

// Dx returns the box width.
func (b Box) Dx() int {
	return b.X2 - b.X1
}

// Dy returns the box height.
func (b Box) Dy() int {
	return b.Y2 - b.Y1
}

// Rectangle converts the box without canonicalizing it, so an empty box stays empty.
func (b Box) Rectangle() image.Rectangle {
	return image.Rectangle{Min: image.Pt(b.X1, b.Y1), Max: image.Pt(b.X2, b.Y2)}
}

// Overlaps reports whether both boxes share at least one pixel.
func (b Box) Overlaps(o Box) bool {
	return b.Rectangle().Overlaps(o.Rectangle())
}

// String returns the box as x1,y1-x2,y2.
func (b Box) String() string {
	return fmt.Sprintf("%d,%d-%d,%d", b.X1, b.Y1, b.X2, b.Y2)
}
