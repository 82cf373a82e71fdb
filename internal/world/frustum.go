package world

// Plane is a half-space: points p with Normal·p + D >= 0 are inside.
type Plane struct {
	Normal Vec3
	D      float64
}

func (p Plane) DistanceTo(v Vec3) float64 {
	return p.Normal.Dot(v) + p.D
}

// Frustum is six inward-facing planes. The renderer boundary supplies it
// already extracted from its projection matrix; the world core only tests
// containment.
type Frustum struct {
	Planes [6]Plane
}

// ContainsAABB reports whether the box intersects the frustum, using the
// positive-vertex test: for each plane, check the box corner furthest along
// the plane normal. Conservative on purpose — boxes straddling a plane count
// as inside.
func (f Frustum) ContainsAABB(b AABB) bool {
	for _, pl := range f.Planes {
		v := b.Min
		if pl.Normal.X >= 0 {
			v.X = b.Max.X
		}
		if pl.Normal.Y >= 0 {
			v.Y = b.Max.Y
		}
		if pl.Normal.Z >= 0 {
			v.Z = b.Max.Z
		}
		if pl.DistanceTo(v) < 0 {
			return false
		}
	}
	return true
}

// AxisAlignedFrustum builds a box-shaped frustum covering [min, max].
// Convenient for tests and for orthographic-style culling volumes.
func AxisAlignedFrustum(min, max Vec3) Frustum {
	return Frustum{Planes: [6]Plane{
		{Normal: Vec3{X: 1}, D: -min.X},
		{Normal: Vec3{X: -1}, D: max.X},
		{Normal: Vec3{Y: 1}, D: -min.Y},
		{Normal: Vec3{Y: -1}, D: max.Y},
		{Normal: Vec3{Z: 1}, D: -min.Z},
		{Normal: Vec3{Z: -1}, D: max.Z},
	}}
}
