package voxelgrid

// FloatVoxel stores one floating point value per voxel. Zero is the
// background.
type FloatVoxel float64

// IsActive reports whether the value is nonzero.
func (v FloatVoxel) IsActive() bool { return v != 0 }

// Background returns the zero value.
func (FloatVoxel) Background() FloatVoxel { return 0 }

// BoolVoxel stores occupancy per voxel. False is the background.
type BoolVoxel bool

// IsActive reports whether the voxel is occupied.
func (v BoolVoxel) IsActive() bool { return bool(v) }

// Background returns the unoccupied value.
func (BoolVoxel) Background() BoolVoxel { return false }

// IntVoxel stores one integer value per voxel, such as a label. Zero is the
// background.
type IntVoxel int32

// IsActive reports whether the value is nonzero.
func (v IntVoxel) IsActive() bool { return v != 0 }

// Background returns the zero value.
func (IntVoxel) Background() IntVoxel { return 0 }
