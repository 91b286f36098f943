package voxelgrid

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// CompressionType tags how voxel data would be compressed at rest. The core
// tree attaches no behavior to the tag; codecs live outside this package.
type CompressionType string

// The accepted compression tags. An empty tag means CompressionNone.
const (
	CompressionNone CompressionType = "none"
	CompressionLZ4  CompressionType = "lz4"
	CompressionZstd CompressionType = "zstd"
)

func (ct CompressionType) validate() error {
	switch ct {
	case "", CompressionNone, CompressionLZ4, CompressionZstd:
		return nil
	default:
		return errors.Errorf("unknown compression type %q", ct)
	}
}

// TreePreset selects how many internal levels sit between the root map and
// the leaves. It is fixed for the lifetime of a volume.
type TreePreset string

// The accepted tree presets. An empty preset means PresetStandard.
const (
	// PresetStandard uses one internal level; each root entry spans
	// 128 voxels per axis.
	PresetStandard TreePreset = "standard"
	// PresetDeep uses two internal levels; each root entry spans
	// 2048 voxels per axis.
	PresetDeep TreePreset = "deep"
)

func (tp TreePreset) validate() error {
	switch tp {
	case "", PresetStandard, PresetDeep:
		return nil
	default:
		return errors.Errorf("unknown tree preset %q", tp)
	}
}

func (tp TreePreset) internalLevels() int {
	if tp == PresetDeep {
		return 2
	}
	return 1
}

// VolumeConfig configures a VoxelVolume. VoxelSize is the world-space edge
// length of one leaf-level voxel and must be positive.
type VolumeConfig struct {
	VoxelSize   float64         `json:"voxel_size"`
	Compression CompressionType `json:"compression,omitempty"`
	Preset      TreePreset      `json:"preset,omitempty"`
}

// Validate ensures all parts of the config are valid. All failures are
// reported, not just the first.
func (c VolumeConfig) Validate(path string) error {
	var err error
	if c.VoxelSize <= 0 {
		err = multierr.Combine(err, goutils.NewConfigValidationError(path,
			errors.Errorf("voxel_size must be positive, got %v", c.VoxelSize)))
	}
	if cErr := c.Compression.validate(); cErr != nil {
		err = multierr.Combine(err, goutils.NewConfigValidationError(path, cErr))
	}
	if pErr := c.Preset.validate(); pErr != nil {
		err = multierr.Combine(err, goutils.NewConfigValidationError(path, pErr))
	}
	return err
}
