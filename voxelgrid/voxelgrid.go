// Package voxelgrid implements a sparse hierarchical container for volumetric
// data. Given a 3D world-space point it stores or retrieves a typed voxel
// value while paying storage cost only for regions that are not background,
// which makes it suitable for signed-distance fields and other volumetric
// data where most of space is empty or uniform.
//
// The tree has three kinds of nodes. A root node maps coarse tile origins to
// top-level branches, so the addressable extent is unbounded and absent
// regions cost nothing. Internal nodes have a fixed 16^3 fan-out where every
// slot is either empty, a uniform "tile" value, or an owned child. Leaf nodes
// hold a dense 8^3 block of values plus an active bitmask. Nodes are created
// lazily on first write and uniform subtrees are collapsed back into tiles
// by the reclamation pass that runs before every summary.
//
// A VoxelVolume has no internal synchronization. Concurrent reads are safe
// with each other, but any write (Set, Unset, FillBounds) and Summary, which
// runs the reclamation pass, must not overlap with other operations on the
// same volume.
package voxelgrid

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// VoxelData is the capability contract a stored voxel type must satisfy.
// Implementations are plain comparable value types; Background must be
// callable on the zero value of T and must return an inactive value.
type VoxelData[T any] interface {
	comparable

	// IsActive reports whether the voxel holds meaningful data, as opposed
	// to the implicit background state.
	IsActive() bool

	// Background returns the value implicitly held by every voxel that was
	// never written.
	Background() T
}

// Generator produces the voxel value for a world-space voxel center during a
// fill operation. Returning ok=false skips the voxel without allocating
// anything for it. Returning an error stops the fill immediately; voxels
// written before the failure remain written.
type Generator[T VoxelData[T]] func(center r3.Vector) (value T, ok bool, err error)

var (
	// ErrCoordinateOverflow is returned when a world point maps outside the
	// representable voxel coordinate range.
	ErrCoordinateOverflow = errors.New("world point outside representable voxel coordinate range")

	// ErrInvalidBounds is returned when a fill is requested with a minimum
	// corner that is not componentwise less than the maximum corner.
	ErrInvalidBounds = errors.New("bounds min must be componentwise less than max")
)
