package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is an absolute screen-pixel coordinate.
type Point struct {
	X, Y int
}

// Rect is a screen rectangle in absolute screen pixels.
type Rect struct {
	Left, Top, Width, Height int
}

// RectFromPoints returns the normalized rectangle spanned by two drag
// points, independent of drag direction.
func RectFromPoints(a, b Point) Rect {
	left, right := a.X, b.X
	if left > right {
		left, right = right, left
	}
	top, bottom := a.Y, b.Y
	if top > bottom {
		top, bottom = bottom, top
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Area returns the rectangle area in pixels.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// BoundingBox returns the rectangle as [left, top, width, height], the
// on-disk JSON representation.
func (r Rect) BoundingBox() [4]int {
	return [4]int{r.Left, r.Top, r.Width, r.Height}
}

// String formats the rectangle as "left,top,width,height".
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.Left, r.Top, r.Width, r.Height)
}

// ParseBBox parses a "left,top,width,height" string into a Rect.
func ParseBBox(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("invalid bbox %q: expected left,top,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		vals[i] = v
	}
	return Rect{Left: vals[0], Top: vals[1], Width: vals[2], Height: vals[3]}, nil
}
