package voxelgrid

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestWorldToVoxel(t *testing.T) {
	c, err := WorldToVoxel(r3.Vector{X: 0.25, Y: 1.99, Z: -0.01}, 1.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, VoxelCoords{0, 1, -1})

	c, err = WorldToVoxel(r3.Vector{X: -2, Y: -0.3, Z: 0.35}, 0.1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, VoxelCoords{-20, -3, 3})

	// exactly on a voxel boundary floors to that voxel
	c, err = WorldToVoxel(r3.Vector{X: 5, Y: -5, Z: 0}, 2.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, VoxelCoords{2, -2, 0})
}

func TestWorldToVoxelOverflow(t *testing.T) {
	_, err := WorldToVoxel(r3.Vector{X: 1e300}, 0.1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrCoordinateOverflow), test.ShouldBeTrue)

	_, err = WorldToVoxel(r3.Vector{Y: math.Inf(-1)}, 1.0)
	test.That(t, errors.Is(err, ErrCoordinateOverflow), test.ShouldBeTrue)

	_, err = WorldToVoxel(r3.Vector{Z: math.NaN()}, 1.0)
	test.That(t, errors.Is(err, ErrCoordinateOverflow), test.ShouldBeTrue)
}

func TestVoxelToWorld(t *testing.T) {
	p := VoxelToWorld(VoxelCoords{2, -1, 0}, 0.5)
	test.That(t, p, test.ShouldResemble, r3.Vector{X: 1, Y: -0.5, Z: 0})

	center := VoxelCenter(VoxelCoords{0, 0, -1}, 2.0)
	test.That(t, center, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: -1})
}

func TestBoxToCoordBounds(t *testing.T) {
	b, err := BoxToCoordBounds(BoundingBox{
		Min: r3.Vector{X: 0.1, Y: -0.1, Z: 0},
		Max: r3.Vector{X: 1.9, Y: 0.1, Z: 1},
	}, 1.0)
	test.That(t, err, test.ShouldBeNil)
	// min floors, max ceils: partially covered edge voxels are included
	test.That(t, b.Min, test.ShouldResemble, VoxelCoords{0, -1, 0})
	test.That(t, b.Max, test.ShouldResemble, VoxelCoords{2, 1, 1})
	test.That(t, b.Contains(VoxelCoords{1, 0, 0}), test.ShouldBeTrue)
	test.That(t, b.Contains(VoxelCoords{2, 0, 0}), test.ShouldBeFalse)
}

func TestFillRangeCenters(t *testing.T) {
	// only voxels whose centers lie in [min, max) are enumerated
	lo, hi, err := fillRange(r3.Vector{X: -2, Y: -2, Z: -2}, r3.Vector{X: 2, Y: 2, Z: 2}, 0.1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, lo, test.ShouldResemble, VoxelCoords{-20, -20, -20})
	test.That(t, hi, test.ShouldResemble, VoxelCoords{19, 19, 19})

	// a box thinner than a voxel that straddles no center is empty
	lo, hi, err = fillRange(r3.Vector{X: 0.6, Y: 0.6, Z: 0.6}, r3.Vector{X: 0.9, Y: 0.9, Z: 0.9}, 1.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, lo.I > hi.I, test.ShouldBeTrue)

	// a box straddling one center yields exactly that voxel
	lo, hi, err = fillRange(r3.Vector{X: 0.4, Y: 0.4, Z: 0.4}, r3.Vector{X: 0.6, Y: 0.6, Z: 0.6}, 1.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, lo, test.ShouldResemble, VoxelCoords{0, 0, 0})
	test.That(t, hi, test.ShouldResemble, VoxelCoords{0, 0, 0})
}
