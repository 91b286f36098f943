package voxelgrid

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// WorldToVoxel converts a world-space point to the voxel coordinate whose
// cube contains it, flooring each axis. Points that map outside the
// representable coordinate range return ErrCoordinateOverflow rather than
// silently wrapping.
func WorldToVoxel(p r3.Vector, voxelSize float64) (VoxelCoords, error) {
	i, err := worldToVoxelAxis(p.X, voxelSize)
	if err != nil {
		return VoxelCoords{}, errors.Wrapf(err, "point %v", p)
	}
	j, err := worldToVoxelAxis(p.Y, voxelSize)
	if err != nil {
		return VoxelCoords{}, errors.Wrapf(err, "point %v", p)
	}
	k, err := worldToVoxelAxis(p.Z, voxelSize)
	if err != nil {
		return VoxelCoords{}, errors.Wrapf(err, "point %v", p)
	}
	return VoxelCoords{i, j, k}, nil
}

func worldToVoxelAxis(v, voxelSize float64) (int64, error) {
	q := math.Floor(v / voxelSize)
	if math.IsNaN(q) || q >= float64(maxPreciseCoord) || q <= float64(minPreciseCoord) {
		return 0, ErrCoordinateOverflow
	}
	return int64(q), nil
}

// VoxelToWorld converts a voxel coordinate to its minimum world-space corner.
func VoxelToWorld(c VoxelCoords, voxelSize float64) r3.Vector {
	return r3.Vector{
		X: float64(c.I) * voxelSize,
		Y: float64(c.J) * voxelSize,
		Z: float64(c.K) * voxelSize,
	}
}

// VoxelCenter converts a voxel coordinate to the world-space center of its
// cube. Fill operations sample generators at centers to avoid biasing toward
// the lower corner.
func VoxelCenter(c VoxelCoords, voxelSize float64) r3.Vector {
	return r3.Vector{
		X: (float64(c.I) + 0.5) * voxelSize,
		Y: (float64(c.J) + 0.5) * voxelSize,
		Z: (float64(c.K) + 0.5) * voxelSize,
	}
}

// BoxToCoordBounds converts a world-space box to the half-open voxel range
// fully covering it: the minimum corner floors and the maximum corner ceils,
// so partially covered edge voxels are included.
func BoxToCoordBounds(b BoundingBox, voxelSize float64) (CoordBounds, error) {
	lo, err := WorldToVoxel(b.Min, voxelSize)
	if err != nil {
		return CoordBounds{}, err
	}
	hiI, err := ceilToVoxelAxis(b.Max.X, voxelSize)
	if err != nil {
		return CoordBounds{}, err
	}
	hiJ, err := ceilToVoxelAxis(b.Max.Y, voxelSize)
	if err != nil {
		return CoordBounds{}, err
	}
	hiK, err := ceilToVoxelAxis(b.Max.Z, voxelSize)
	if err != nil {
		return CoordBounds{}, err
	}
	return CoordBounds{Min: lo, Max: VoxelCoords{hiI, hiJ, hiK}}, nil
}

func ceilToVoxelAxis(v, voxelSize float64) (int64, error) {
	q := math.Ceil(v / voxelSize)
	if math.IsNaN(q) || q >= float64(maxPreciseCoord) || q <= float64(minPreciseCoord) {
		return 0, errors.Wrapf(ErrCoordinateOverflow, "bound %v", v)
	}
	return int64(q), nil
}

// fillRange returns the closed voxel range whose cube centers lie in the
// closed-open world box [min, max). The range may be empty (lo > hi on an
// axis) when the box is thinner than a voxel on that axis.
func fillRange(min, max r3.Vector, voxelSize float64) (lo, hi VoxelCoords, err error) {
	loI, err := fillRangeLo(min.X, voxelSize)
	if err != nil {
		return lo, hi, err
	}
	loJ, err := fillRangeLo(min.Y, voxelSize)
	if err != nil {
		return lo, hi, err
	}
	loK, err := fillRangeLo(min.Z, voxelSize)
	if err != nil {
		return lo, hi, err
	}
	hiI, err := fillRangeHi(max.X, voxelSize)
	if err != nil {
		return lo, hi, err
	}
	hiJ, err := fillRangeHi(max.Y, voxelSize)
	if err != nil {
		return lo, hi, err
	}
	hiK, err := fillRangeHi(max.Z, voxelSize)
	if err != nil {
		return lo, hi, err
	}
	return VoxelCoords{loI, loJ, loK}, VoxelCoords{hiI, hiJ, hiK}, nil
}

// fillRangeLo finds the smallest c with (c+0.5)*size >= v.
func fillRangeLo(v, voxelSize float64) (int64, error) {
	q := math.Ceil(v/voxelSize - 0.5)
	if math.IsNaN(q) || q >= float64(maxPreciseCoord) || q <= float64(minPreciseCoord) {
		return 0, errors.Wrapf(ErrCoordinateOverflow, "bound %v", v)
	}
	return int64(q), nil
}

// fillRangeHi finds the largest c with (c+0.5)*size < v.
func fillRangeHi(v, voxelSize float64) (int64, error) {
	q := math.Ceil(v/voxelSize-0.5) - 1
	if math.IsNaN(q) || q >= float64(maxPreciseCoord) || q <= float64(minPreciseCoord) {
		return 0, errors.Wrapf(ErrCoordinateOverflow, "bound %v", v)
	}
	return int64(q), nil
}
