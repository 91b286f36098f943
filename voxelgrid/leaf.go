package voxelgrid

import (
	"math/bits"
)

const leafMaskWords = leafVolume / 64

// leafNode is the finest-granularity node: a dense 8^3 block of values and a
// matching active bitmask. Bit i is set exactly when values[i] is active.
// Memory cost is fixed once a leaf exists; sparsity below the leaf level is
// not pursued.
type leafNode[T VoxelData[T]] struct {
	origin     VoxelCoords
	background T
	values     [leafVolume]T
	mask       [leafMaskWords]uint64
}

func newLeafNode[T VoxelData[T]](origin VoxelCoords, background T) *leafNode[T] {
	return &leafNode[T]{origin: maskOrigin(origin, leafLog2), background: background}
}

// leafIndex maps a global coordinate to the local dense index, x fastest.
// Masking works for negative coordinates since the edge is a power of two.
func leafIndex(c VoxelCoords) int {
	i := int(c.I) & (leafEdge - 1)
	j := int(c.J) & (leafEdge - 1)
	k := int(c.K) & (leafEdge - 1)
	return i | j<<leafLog2 | k<<(2*leafLog2)
}

// leafCoord maps a local dense index back to a global coordinate.
func (l *leafNode[T]) leafCoord(idx int) VoxelCoords {
	return VoxelCoords{
		l.origin.I + int64(idx&(leafEdge-1)),
		l.origin.J + int64((idx>>leafLog2)&(leafEdge-1)),
		l.origin.K + int64(idx>>(2*leafLog2)),
	}
}

func (l *leafNode[T]) bit(idx int) bool {
	return l.mask[idx>>6]&(1<<(uint(idx)&63)) != 0
}

func (l *leafNode[T]) setBit(idx int, on bool) {
	if on {
		l.mask[idx>>6] |= 1 << (uint(idx) & 63)
	} else {
		l.mask[idx>>6] &^= 1 << (uint(idx) & 63)
	}
}

// at returns the stored value and whether its active bit is set. Callers
// substitute the background value when inactive, regardless of what the
// dense slot physically holds.
func (l *leafNode[T]) at(c VoxelCoords) (T, bool) {
	idx := leafIndex(c)
	return l.values[idx], l.bit(idx)
}

// set stores the value and sets or clears the active bit according to
// value.IsActive().
func (l *leafNode[T]) set(c VoxelCoords, v T) {
	idx := leafIndex(c)
	l.values[idx] = v
	l.setBit(idx, v.IsActive())
}

// remove clears the active bit so the voxel reads as background again.
func (l *leafNode[T]) remove(c VoxelCoords) {
	idx := leafIndex(c)
	l.values[idx] = l.background
	l.setBit(idx, false)
}

// fillUniform overwrites every voxel with v. Used when a uniform tile is
// expanded into a materialized leaf.
func (l *leafNode[T]) fillUniform(v T) {
	for i := range l.values {
		l.values[i] = v
	}
	var word uint64
	if v.IsActive() {
		word = ^uint64(0)
	}
	for i := range l.mask {
		l.mask[i] = word
	}
}

// collapse reports whether every voxel in the leaf agrees: all inactive
// yields the (inactive) background value, all active with one common value
// yields that value. A mixed leaf is not collapsible.
func (l *leafNode[T]) collapse() (T, bool) {
	allSet, allClear := true, true
	for _, w := range l.mask {
		if w != ^uint64(0) {
			allSet = false
		}
		if w != 0 {
			allClear = false
		}
	}
	if allClear {
		return l.background, true
	}
	if !allSet {
		var zero T
		return zero, false
	}
	v := l.values[0]
	for i := 1; i < leafVolume; i++ {
		if l.values[i] != v {
			var zero T
			return zero, false
		}
	}
	return v, true
}

func (l *leafNode[T]) activeCount() int {
	n := 0
	for _, w := range l.mask {
		n += bits.OnesCount64(w)
	}
	return n
}

// iterate visits active voxels in ascending local index order (x fastest).
// Returns false when fn stopped the traversal.
func (l *leafNode[T]) iterate(fn func(VoxelCoords, T) bool) bool {
	for idx := 0; idx < leafVolume; idx++ {
		if !l.bit(idx) {
			continue
		}
		if !fn(l.leafCoord(idx), l.values[idx]) {
			return false
		}
	}
	return true
}

func (l *leafNode[T]) gatherSummary(s *VolumeSummary) {
	s.LeafNodes++
	s.ActiveVoxels += l.activeCount()
	s.TotalVoxels += leafVolume
	s.extendBounds(cubeBounds(l.origin, leafLog2))
}
