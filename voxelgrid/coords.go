package voxelgrid

import (
	"github.com/golang/geo/r3"
)

// Tree arity is fixed per package: leaves are 8 voxels per axis and internal
// nodes fan out 16 children per axis. Depth is the only per-volume knob.
const (
	leafLog2   = 3
	leafEdge   = 1 << leafLog2
	leafVolume = leafEdge * leafEdge * leafEdge

	nodeLog2  = 4
	nodeEdge  = 1 << nodeLog2
	nodeSlots = nodeEdge * nodeEdge * nodeEdge
)

// VoxelCoords stores integer voxel coordinates in volume axes.
type VoxelCoords struct {
	I, J, K int64
}

// IsEqual tests if two VoxelCoords are the same.
func (c VoxelCoords) IsEqual(c2 VoxelCoords) bool {
	return c.I == c2.I && c.J == c2.J && c.K == c2.K
}

// Add returns the componentwise sum of two coordinates.
func (c VoxelCoords) Add(c2 VoxelCoords) VoxelCoords {
	return VoxelCoords{c.I + c2.I, c.J + c2.J, c.K + c2.K}
}

// maskOrigin snaps a coordinate down to the origin of the aligned cube
// spanning 2^spanBits voxels per axis. Works for negative coordinates since
// spans are powers of two.
func maskOrigin(c VoxelCoords, spanBits uint) VoxelCoords {
	m := int64(1)<<spanBits - 1
	return VoxelCoords{c.I &^ m, c.J &^ m, c.K &^ m}
}

// CoordBounds is a half-open axis-aligned box in voxel space: Min is
// included, Max is excluded.
type CoordBounds struct {
	Min, Max VoxelCoords
}

// Contains reports whether the coordinate lies inside the bounds.
func (b CoordBounds) Contains(c VoxelCoords) bool {
	return c.I >= b.Min.I && c.I < b.Max.I &&
		c.J >= b.Min.J && c.J < b.Max.J &&
		c.K >= b.Min.K && c.K < b.Max.K
}

// IsEmpty reports whether the bounds enclose no voxels.
func (b CoordBounds) IsEmpty() bool {
	return b.Min.I >= b.Max.I || b.Min.J >= b.Max.J || b.Min.K >= b.Max.K
}

// Union returns the smallest bounds enclosing both operands.
func (b CoordBounds) Union(b2 CoordBounds) CoordBounds {
	if b.IsEmpty() {
		return b2
	}
	if b2.IsEmpty() {
		return b
	}
	return CoordBounds{
		Min: VoxelCoords{
			minInt64(b.Min.I, b2.Min.I),
			minInt64(b.Min.J, b2.Min.J),
			minInt64(b.Min.K, b2.Min.K),
		},
		Max: VoxelCoords{
			maxInt64(b.Max.I, b2.Max.I),
			maxInt64(b.Max.J, b2.Max.J),
			maxInt64(b.Max.K, b2.Max.K),
		},
	}
}

// cubeBounds is the bounds of the aligned cube at origin spanning
// 2^spanBits voxels per axis.
func cubeBounds(origin VoxelCoords, spanBits uint) CoordBounds {
	span := int64(1) << spanBits
	return CoordBounds{
		Min: origin,
		Max: VoxelCoords{origin.I + span, origin.J + span, origin.K + span},
	}
}

// BoundingBox is an axis-aligned box in world space.
type BoundingBox struct {
	Min, Max r3.Vector
}

// IsValid reports whether Min is componentwise less than Max.
func (b BoundingBox) IsValid() bool {
	return b.Min.X < b.Max.X && b.Min.Y < b.Max.Y && b.Min.Z < b.Max.Z
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// minPreciseCoord and maxPreciseCoord bound the coordinates the tree will
// address. Staying below 2^62 keeps origin masking and span arithmetic from
// ever wrapping int64.
const (
	maxPreciseCoord = int64(1) << 62
	minPreciseCoord = -maxPreciseCoord
)
