package voxelgrid

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// VoxelVolume is the owning facade over the sparse tree. It composes the
// root node, the world/voxel coordinate transform and the stored type's
// background value. There is no internal locking; see the package doc for
// the concurrency contract.
type VoxelVolume[T VoxelData[T]] struct {
	root       *rootNode[T]
	config     VolumeConfig
	background T
	logger     golog.Logger
}

// New returns an empty volume for the given config. It fails if the config
// is invalid or if T's background value reports itself active; no partial
// volume is produced on failure.
func New[T VoxelData[T]](config VolumeConfig, logger golog.Logger) (*VoxelVolume[T], error) {
	if err := config.Validate(""); err != nil {
		return nil, err
	}
	var zero T
	background := zero.Background()
	if background.IsActive() {
		return nil, errors.New("voxel background value must be inactive")
	}
	levels := config.Preset.internalLevels()
	vol := &VoxelVolume[T]{
		root:       newRootNode(levels, background),
		config:     config,
		background: background,
		logger:     logger,
	}
	logger.Debugw("created voxel volume",
		"voxel_size", config.VoxelSize,
		"internal_levels", levels,
		"root_span_voxels", int64(1)<<vol.root.spanBits,
	)
	return vol, nil
}

// Set writes a value at a voxel coordinate, allocating any missing nodes on
// the path. Writing into a uniform region expands it one level at a time.
func (vol *VoxelVolume[T]) Set(c VoxelCoords, v T) {
	vol.root.set(c, v)
}

// At reads the value at a voxel coordinate. Unreached or inactive voxels
// resolve to the background value.
func (vol *VoxelVolume[T]) At(c VoxelCoords) T {
	v, active := vol.root.at(c)
	if !active {
		return vol.background
	}
	return v
}

// IsActive reports whether the voxel at the coordinate holds an active
// value.
func (vol *VoxelVolume[T]) IsActive(c VoxelCoords) bool {
	_, active := vol.root.at(c)
	return active
}

// Unset clears the voxel at the coordinate back to background. The storage
// it occupied is reclaimed by the pruning pass that runs before summaries.
func (vol *VoxelVolume[T]) Unset(c VoxelCoords) {
	vol.root.remove(c)
}

// SetAtPoint writes a value at the voxel containing the world-space point.
func (vol *VoxelVolume[T]) SetAtPoint(p r3.Vector, v T) error {
	c, err := WorldToVoxel(p, vol.config.VoxelSize)
	if err != nil {
		return err
	}
	vol.Set(c, v)
	return nil
}

// AtPoint reads the value at the voxel containing the world-space point.
func (vol *VoxelVolume[T]) AtPoint(p r3.Vector) (T, error) {
	c, err := WorldToVoxel(p, vol.config.VoxelSize)
	if err != nil {
		var zero T
		return zero, err
	}
	return vol.At(c), nil
}

// IsActiveAtPoint reports whether the voxel containing the world-space
// point holds an active value.
func (vol *VoxelVolume[T]) IsActiveAtPoint(p r3.Vector) (bool, error) {
	c, err := WorldToVoxel(p, vol.config.VoxelSize)
	if err != nil {
		return false, err
	}
	return vol.IsActive(c), nil
}

// UnsetAtPoint clears the voxel containing the world-space point.
func (vol *VoxelVolume[T]) UnsetAtPoint(p r3.Vector) error {
	c, err := WorldToVoxel(p, vol.config.VoxelSize)
	if err != nil {
		return err
	}
	vol.Unset(c)
	return nil
}

// FillBounds invokes the generator at the center of every voxel whose
// center lies in the closed-open world box [min, max), in a fixed order:
// z outermost, then y, then x fastest. The generator must not depend on
// call order; the order is fixed only so runs are reproducible.
//
// A generator value is written with Set semantics, so uniform-region
// expansion applies. A generator error stops the fill immediately and is
// returned; voxels written before the failure remain written (the fill is
// not transactional). Returns the number of voxels written.
func (vol *VoxelVolume[T]) FillBounds(min, max r3.Vector, gen Generator[T]) (int, error) {
	if !(BoundingBox{Min: min, Max: max}).IsValid() {
		return 0, errors.Wrapf(ErrInvalidBounds, "min %v, max %v", min, max)
	}
	lo, hi, err := fillRange(min, max, vol.config.VoxelSize)
	if err != nil {
		return 0, err
	}
	written := 0
	for k := lo.K; k <= hi.K; k++ {
		for j := lo.J; j <= hi.J; j++ {
			for i := lo.I; i <= hi.I; i++ {
				c := VoxelCoords{i, j, k}
				v, ok, err := gen(VoxelCenter(c, vol.config.VoxelSize))
				if err != nil {
					return written, errors.Wrap(err, "fill generator failed; earlier writes are kept")
				}
				if !ok {
					continue
				}
				vol.Set(c, v)
				written++
			}
		}
	}
	vol.logger.Debugw("filled bounds", "min", min, "max", max, "written", written)
	return written, nil
}

// FillRegion is FillBounds over a BoundingBox.
func (vol *VoxelVolume[T]) FillRegion(b BoundingBox, gen Generator[T]) (int, error) {
	return vol.FillBounds(b.Min, b.Max, gen)
}

// Iterate calls fn for every active voxel until fn returns false. Voxels
// inside one node are visited in a fixed order but the set of top-level
// regions is visited in map order, which varies between runs.
func (vol *VoxelVolume[T]) Iterate(fn func(c VoxelCoords, v T) bool) {
	vol.root.iterate(fn)
}

// VoxelSize returns the configured world-space edge length of one voxel.
func (vol *VoxelVolume[T]) VoxelSize() float64 {
	return vol.config.VoxelSize
}

// LeafVoxelSize returns the edge length of the finest addressable unit,
// which by definition is the configured voxel size; intermediate node spans
// are multiples of it.
func (vol *VoxelVolume[T]) LeafVoxelSize() float64 {
	return vol.config.VoxelSize
}

// RootEdgeLength returns the world-space edge length of one root entry.
func (vol *VoxelVolume[T]) RootEdgeLength() float64 {
	return float64(int64(1)<<vol.root.spanBits) * vol.config.VoxelSize
}

// SnapToVoxelCenter snaps a world coordinate to the center of the nearest
// voxel.
func (vol *VoxelVolume[T]) SnapToVoxelCenter(p r3.Vector) (r3.Vector, error) {
	c, err := WorldToVoxel(p, vol.config.VoxelSize)
	if err != nil {
		return r3.Vector{}, err
	}
	return VoxelCenter(c, vol.config.VoxelSize), nil
}

// Background returns the value unwritten voxels resolve to.
func (vol *VoxelVolume[T]) Background() T {
	return vol.background
}
