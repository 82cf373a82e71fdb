package world

import "math"

// Vec3 is a float world-space vector, used for block centers, viewer
// positions and ray math.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns the unit vector, or the zero vector unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// BlockPos is an integer world-block coordinate. Two positions are equal iff
// all three coordinates match, so it is usable directly as a map key.
type BlockPos struct {
	X, Y, Z int32
}

// Center returns the world-space center of the unit cube at this position.
func (p BlockPos) Center() Vec3 {
	return Vec3{float64(p.X) + 0.5, float64(p.Y) + 0.5, float64(p.Z) + 0.5}
}

// ChunkPos identifies one fixed-size chunk region, in chunk units.
type ChunkPos struct {
	X, Y, Z int32
}

// Chebyshev returns the Chebyshev distance to another chunk position,
// ignoring the vertical axis: chunks are full-height columns.
func (p ChunkPos) Chebyshev(o ChunkPos) int32 {
	dx := abs32(p.X - o.X)
	dz := abs32(p.Z - o.Z)
	if dz > dx {
		return dz
	}
	return dx
}

// Dims holds the configured chunk dimensions in blocks.
type Dims struct {
	SizeX, SizeY, SizeZ int32
}

// DefaultDims is the classic 16×256×16 column chunk.
var DefaultDims = Dims{SizeX: 16, SizeY: 256, SizeZ: 16}

// ChunkOf derives the containing chunk position by floor division.
func (d Dims) ChunkOf(p BlockPos) ChunkPos {
	return ChunkPos{
		X: floorDiv(p.X, d.SizeX),
		Y: floorDiv(p.Y, d.SizeY),
		Z: floorDiv(p.Z, d.SizeZ),
	}
}

// Bounds returns the world-space AABB covered by a chunk.
func (d Dims) Bounds(c ChunkPos) AABB {
	min := Vec3{
		X: float64(c.X * d.SizeX),
		Y: float64(c.Y * d.SizeY),
		Z: float64(c.Z * d.SizeZ),
	}
	return AABB{
		Min: min,
		Max: Vec3{min.X + float64(d.SizeX), min.Y + float64(d.SizeY), min.Z + float64(d.SizeZ)},
	}
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max Vec3
}

// UnitCubeAt returns the collision bounds of the block at p.
func UnitCubeAt(p BlockPos) AABB {
	return AABB{
		Min: Vec3{float64(p.X), float64(p.Y), float64(p.Z)},
		Max: Vec3{float64(p.X) + 1, float64(p.Y) + 1, float64(p.Z) + 1},
	}
}

func (b AABB) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// floorDiv divides rounding toward negative infinity, so block (-1,0,-1)
// lands in chunk (-1,0,-1) rather than (0,0,0).
func floorDiv(v, size int32) int32 {
	if v < 0 {
		return (v - size + 1) / size
	}
	return v / size
}

func abs32(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}
