package widget

import "github.com/olivoil/gesturenav/internal/focus"

// Rect is a cell rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// center returns the doubled centre point so odd sizes stay integral.
func (r Rect) center() (x2, y2 int) {
	return 2*r.X + r.W, 2*r.Y + r.H
}

// candidate reports whether dst lies in dir from src.
func candidate(src, dst Rect, dir focus.Direction) bool {
	switch dir {
	case focus.DirRight:
		return (src.X < dst.X || src.Right() <= dst.X) && src.Right() < dst.Right()
	case focus.DirLeft:
		return (src.Right() > dst.Right() || src.X >= dst.Right()) && src.X > dst.X
	case focus.DirDown:
		return (src.Y < dst.Y || src.Bottom() <= dst.Y) && src.Bottom() < dst.Bottom()
	case focus.DirUp:
		return (src.Bottom() > dst.Bottom() || src.Y >= dst.Bottom()) && src.Y > dst.Y
	}
	return false
}

// distance weighs the gap along dir much more than the offset across it.
func distance(src, dst Rect, dir focus.Direction) int {
	var major int
	switch dir {
	case focus.DirRight:
		major = dst.X - src.Right()
	case focus.DirLeft:
		major = src.X - dst.Right()
	case focus.DirDown:
		major = dst.Y - src.Bottom()
	case focus.DirUp:
		major = src.Y - dst.Bottom()
	}
	major = max(0, major)

	sx, sy := src.center()
	dx, dy := dst.center()
	minor := sy - dy
	if dir == focus.DirUp || dir == focus.DirDown {
		minor = sx - dx
	}
	// centres are doubled
	minor /= 2

	return 13*major*major + minor*minor
}
