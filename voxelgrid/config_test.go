package voxelgrid

import (
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

func TestConfigValidate(t *testing.T) {
	test.That(t, VolumeConfig{VoxelSize: 0.1}.Validate(""), test.ShouldBeNil)
	test.That(t, VolumeConfig{
		VoxelSize:   2.5,
		Compression: CompressionZstd,
		Preset:      PresetDeep,
	}.Validate(""), test.ShouldBeNil)

	err := VolumeConfig{VoxelSize: 0}.Validate("")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "voxel_size must be positive")

	err = VolumeConfig{VoxelSize: -1}.Validate("")
	test.That(t, err, test.ShouldNotBeNil)

	// every failure is reported, not just the first
	err = VolumeConfig{VoxelSize: -1, Compression: "gzip", Preset: "wide"}.Validate("")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "voxel_size")
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown compression type "gzip"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown tree preset "wide"`)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	vol, err := New[FloatVoxel](VolumeConfig{VoxelSize: 0}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, vol, test.ShouldBeNil)
}

// activeBackgroundVoxel violates the contract that the background must be
// inactive.
type activeBackgroundVoxel struct{}

func (activeBackgroundVoxel) IsActive() bool { return true }

func (activeBackgroundVoxel) Background() activeBackgroundVoxel { return activeBackgroundVoxel{} }

func TestNewRejectsActiveBackground(t *testing.T) {
	vol, err := New[activeBackgroundVoxel](VolumeConfig{VoxelSize: 1}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "background value must be inactive")
	test.That(t, vol, test.ShouldBeNil)
}
