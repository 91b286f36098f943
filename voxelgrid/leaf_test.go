package voxelgrid

import (
	"testing"

	"go.viam.com/test"
)

func TestLeafIndexing(t *testing.T) {
	l := newLeafNode[FloatVoxel](VoxelCoords{8, 16, 32}, 0)
	test.That(t, l.origin, test.ShouldResemble, VoxelCoords{8, 16, 32})

	// x fastest: 7 + 7*8 + 1*64
	test.That(t, leafIndex(VoxelCoords{15, 23, 33}), test.ShouldEqual, 127)
	test.That(t, l.leafCoord(127), test.ShouldResemble, VoxelCoords{15, 23, 33})

	// creation masks the origin down to the leaf grid
	l2 := newLeafNode[FloatVoxel](VoxelCoords{13, 21, 39}, 0)
	test.That(t, l2.origin, test.ShouldResemble, VoxelCoords{8, 16, 32})

	// negative coordinates mask onto the same local grid
	test.That(t, leafIndex(VoxelCoords{-1, -8, -9}), test.ShouldEqual, 7|0<<leafLog2|7<<(2*leafLog2))
	l3 := newLeafNode[FloatVoxel](VoxelCoords{-1, -8, -9}, 0)
	test.That(t, l3.origin, test.ShouldResemble, VoxelCoords{-8, -8, -16})
}

func TestLeafVoxelOps(t *testing.T) {
	l := newLeafNode[FloatVoxel](VoxelCoords{0, 0, 0}, 0)

	_, active := l.at(VoxelCoords{1, 1, 1})
	test.That(t, active, test.ShouldBeFalse)
	test.That(t, l.activeCount(), test.ShouldEqual, 0)

	l.set(VoxelCoords{1, 1, 1}, 42)
	v, active := l.at(VoxelCoords{1, 1, 1})
	test.That(t, active, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, FloatVoxel(42))
	test.That(t, l.activeCount(), test.ShouldEqual, 1)

	// storing an inactive value clears the bit
	l.set(VoxelCoords{1, 1, 1}, 0)
	_, active = l.at(VoxelCoords{1, 1, 1})
	test.That(t, active, test.ShouldBeFalse)
	test.That(t, l.activeCount(), test.ShouldEqual, 0)

	l.set(VoxelCoords{2, 2, 2}, 24)
	l.remove(VoxelCoords{2, 2, 2})
	_, active = l.at(VoxelCoords{2, 2, 2})
	test.That(t, active, test.ShouldBeFalse)
}

func TestLeafCollapse(t *testing.T) {
	l := newLeafNode[IntVoxel](VoxelCoords{0, 0, 0}, 0)

	// a fresh leaf is uniformly inactive
	v, uniform := l.collapse()
	test.That(t, uniform, test.ShouldBeTrue)
	test.That(t, v.IsActive(), test.ShouldBeFalse)

	// mixed content is not collapsible
	l.set(VoxelCoords{0, 0, 0}, 7)
	_, uniform = l.collapse()
	test.That(t, uniform, test.ShouldBeFalse)

	// uniformly filled collapses to the common value
	l.fillUniform(7)
	v, uniform = l.collapse()
	test.That(t, uniform, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, IntVoxel(7))
	test.That(t, l.activeCount(), test.ShouldEqual, leafVolume)

	// one differing write breaks uniformity again
	l.set(VoxelCoords{3, 3, 3}, 9)
	_, uniform = l.collapse()
	test.That(t, uniform, test.ShouldBeFalse)
}

func TestLeafIterate(t *testing.T) {
	l := newLeafNode[IntVoxel](VoxelCoords{0, 0, 0}, 0)
	l.set(VoxelCoords{1, 0, 0}, 1)
	l.set(VoxelCoords{0, 1, 0}, 2)
	l.set(VoxelCoords{0, 0, 1}, 3)

	var got []VoxelCoords
	l.iterate(func(c VoxelCoords, v IntVoxel) bool {
		got = append(got, c)
		return true
	})
	// x fastest, then y, then z
	test.That(t, got, test.ShouldResemble, []VoxelCoords{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})

	count := 0
	l.iterate(func(VoxelCoords, IntVoxel) bool {
		count++
		return false
	})
	test.That(t, count, test.ShouldEqual, 1)
}
