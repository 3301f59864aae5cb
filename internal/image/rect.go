package image

// Rect is an integer pixel rectangle. X, Y is the top-left corner and
// Width, Height the extent. A rectangle with a non-positive extent is empty.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect returns the rectangle with the given corner and size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.X + r.Width }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Y + r.Height }

// Area returns the number of pixels covered, or 0 for empty rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains reports whether pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ContainsRect reports whether o lies entirely inside r.
// An empty o is contained in every rectangle.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Intersect returns the largest rectangle contained in both r and o.
// The result is the zero Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.MaxX(), o.MaxX())
	y2 := min(r.MaxY(), o.MaxY())
	if x1 >= x2 || y1 >= y2 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Expand grows the rectangle by margin pixels on every side.
func (r Rect) Expand(margin int) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}
