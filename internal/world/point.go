package world

// Point is a grid coordinate. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// Add returns the point offset by dx, dy.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Chebyshev returns the king-move distance between two points.
func (p Point) Chebyshev(o Point) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Neighbors4 returns the four orthogonal neighbours of p.
// Bounds are not checked.
func (p Point) Neighbors4() [4]Point {
	return [4]Point{p.Add(0, -1), p.Add(1, 0), p.Add(0, 1), p.Add(-1, 0)}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
