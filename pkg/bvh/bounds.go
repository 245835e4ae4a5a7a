package bvh

// Bounds is an axis-aligned bounding box described by its center and full
// size. Bounds values are immutable; every operation below returns a new
// value rather than mutating its receiver or arguments.
//
// Invariants: the components of Size are non-negative, so Min() <= Max()
// componentwise. Callers must supply finite, valid boxes; NaN and negative
// sizes are a documented precondition violation, not a checked error.
type Bounds struct {
	Center Vec3
	Size   Vec3
}

// NewBounds constructs a Bounds from a center and a full size.
func NewBounds(center, size Vec3) Bounds {
	return Bounds{Center: center, Size: size}
}

// Extends returns half of Size, the distance from Center to each face.
func (b Bounds) Extends() Vec3 {
	return b.Size.Scale(0.5)
}

// Min returns the lower corner of the box.
func (b Bounds) Min() Vec3 {
	return b.Center.Sub(b.Extends())
}

// Max returns the upper corner of the box.
func (b Bounds) Max() Vec3 {
	return b.Center.Add(b.Extends())
}

// Union returns the smallest Bounds containing both a and b. Union is
// associative and commutative.
func Union(a, b Bounds) Bounds {
	lo := MinVec3(a.Min(), b.Min())
	hi := MaxVec3(a.Max(), b.Max())
	return Bounds{
		Center: lo.Add(hi).Scale(0.5),
		Size:   hi.Sub(lo),
	}
}

// Contains reports whether b lies entirely within a, boundaries inclusive.
// Contains is reflexive and transitive.
func Contains(a, b Bounds) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return aMin.X <= bMin.X && aMin.Y <= bMin.Y && aMin.Z <= bMin.Z &&
		bMax.X <= aMax.X && bMax.Y <= aMax.Y && bMax.Z <= aMax.Z
}

// Overlaps reports whether a and b share any point, including touching
// boundaries. Overlaps is symmetric.
func Overlaps(a, b Bounds) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	if aMax.X < bMin.X || bMax.X < aMin.X {
		return false
	}
	if aMax.Y < bMin.Y || bMax.Y < aMin.Y {
		return false
	}
	if aMax.Z < bMin.Z || bMax.Z < aMin.Z {
		return false
	}
	return true
}

// SurfaceArea returns 2*(sx*sy + sy*sz + sz*sx), the cost metric used by
// the sibling-selection heuristic during Insert.
func SurfaceArea(b Bounds) float32 {
	s := b.Size
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}
