package math3d

// Vec2 represents a 2D vector, used for texture coordinates and
// barycentric (u, v) pairs.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Barycentric2 blends three values with weights (1-u-v, u, v), where
// (u, v) are taken from uv.
func Barycentric2(a, b, c Vec2, uv Vec2) Vec2 {
	w := 1 - uv.X - uv.Y
	return a.Scale(w).Add(b.Scale(uv.X)).Add(c.Scale(uv.Y))
}

// Barycentric3 is the Vec3 counterpart of Barycentric2.
func Barycentric3(a, b, c Vec3, uv Vec2) Vec3 {
	w := 1 - uv.X - uv.Y
	return a.Scale(w).Add(b.Scale(uv.X)).Add(c.Scale(uv.Y))
}
