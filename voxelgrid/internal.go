package voxelgrid

import (
	"fmt"
)

// slotState tags what an internal node slot holds. The three states are
// exhaustive; any other value means the tree is corrupt and traversal
// aborts loudly.
type slotState uint8

const (
	slotEmpty slotState = iota
	slotTile
	slotChild
)

// nodeSlot is the tagged union occupying one internal-node slot: empty
// (reads as background), a uniform tile value covering the whole sub-cube,
// or an owned child node.
type nodeSlot[T VoxelData[T]] struct {
	state slotState
	tile  T
	child childNode[T]
}

// childNode is implemented by internalNode and leafNode so an internal node
// can own either, depending on its level.
type childNode[T VoxelData[T]] interface {
	at(c VoxelCoords) (T, bool)
	set(c VoxelCoords, v T)
	remove(c VoxelCoords)
	fillUniform(v T)
	collapse() (T, bool)
	iterate(fn func(VoxelCoords, T) bool) bool
	gatherSummary(s *VolumeSummary)
}

// internalNode is a branch with a fixed 16^3 fan-out. level counts the
// internal levels at or below this node: level 1 children are leaves,
// higher levels nest further internal nodes.
type internalNode[T VoxelData[T]] struct {
	origin     VoxelCoords
	level      int
	background T
	slots      []nodeSlot[T]
}

func newInternalNode[T VoxelData[T]](origin VoxelCoords, level int, background T) *internalNode[T] {
	return &internalNode[T]{
		origin:     maskOrigin(origin, internalSpanBits(level)),
		level:      level,
		background: background,
		slots:      make([]nodeSlot[T], nodeSlots),
	}
}

// internalSpanBits is the log2 edge length, in voxels, of an internal node
// at the given level.
func internalSpanBits(level int) uint {
	return uint(leafLog2 + level*nodeLog2)
}

// childSpanBits is the log2 edge length of one child sub-cube.
func (n *internalNode[T]) childSpanBits() uint {
	return internalSpanBits(n.level - 1)
}

// slotIndex extracts this level's bits from the coordinate, x fastest.
func (n *internalNode[T]) slotIndex(c VoxelCoords) int {
	shift := n.childSpanBits()
	i := int(c.I>>shift) & (nodeEdge - 1)
	j := int(c.J>>shift) & (nodeEdge - 1)
	k := int(c.K>>shift) & (nodeEdge - 1)
	return i | j<<nodeLog2 | k<<(2*nodeLog2)
}

// slotOrigin maps a slot index back to the minimum corner of its sub-cube.
func (n *internalNode[T]) slotOrigin(idx int) VoxelCoords {
	shift := n.childSpanBits()
	return VoxelCoords{
		n.origin.I + int64(idx&(nodeEdge-1))<<shift,
		n.origin.J + int64((idx>>nodeLog2)&(nodeEdge-1))<<shift,
		n.origin.K + int64(idx>>(2*nodeLog2))<<shift,
	}
}

func (n *internalNode[T]) newChild(c VoxelCoords) childNode[T] {
	if n.level == 1 {
		return newLeafNode(c, n.background)
	}
	return newInternalNode(c, n.level-1, n.background)
}

// expandSlot materializes an Empty or Tile slot into a child subtree
// pre-filled with the slot's previous effective value. Expansion is one
// level deep: a child internal node records the fill as tiles in its own
// slots, so deeper uniformity stays unexpanded until later writes need it.
func (n *internalNode[T]) expandSlot(s *nodeSlot[T], c VoxelCoords, fill T) {
	child := n.newChild(c)
	if fill != n.background {
		child.fillUniform(fill)
	}
	var zero T
	s.state, s.tile, s.child = slotChild, zero, child
}

func (n *internalNode[T]) at(c VoxelCoords) (T, bool) {
	s := &n.slots[n.slotIndex(c)]
	switch s.state {
	case slotEmpty:
		return n.background, false
	case slotTile:
		return s.tile, s.tile.IsActive()
	case slotChild:
		return s.child.at(c)
	default:
		panic(fmt.Sprintf("voxelgrid: corrupt slot state %d at level %d", s.state, n.level))
	}
}

func (n *internalNode[T]) set(c VoxelCoords, v T) {
	s := &n.slots[n.slotIndex(c)]
	switch s.state {
	case slotEmpty:
		if v == n.background {
			return
		}
		n.expandSlot(s, c, n.background)
		s.child.set(c, v)
	case slotTile:
		if v == s.tile {
			return
		}
		n.expandSlot(s, c, s.tile)
		s.child.set(c, v)
	case slotChild:
		s.child.set(c, v)
	default:
		panic(fmt.Sprintf("voxelgrid: corrupt slot state %d at level %d", s.state, n.level))
	}
}

func (n *internalNode[T]) remove(c VoxelCoords) {
	s := &n.slots[n.slotIndex(c)]
	switch s.state {
	case slotEmpty:
	case slotTile:
		n.expandSlot(s, c, s.tile)
		s.child.remove(c)
	case slotChild:
		s.child.remove(c)
	default:
		panic(fmt.Sprintf("voxelgrid: corrupt slot state %d at level %d", s.state, n.level))
	}
}

// fillUniform records v as a tile in every slot, dropping any children.
func (n *internalNode[T]) fillUniform(v T) {
	for i := range n.slots {
		n.slots[i] = nodeSlot[T]{state: slotTile, tile: v}
	}
}

// collapse first lets every child subtree collapse into its slot, then
// reports whether this whole node reads uniformly: all empty yields the
// background, all tiles of one active value yield that value.
func (n *internalNode[T]) collapse() (T, bool) {
	var zero T
	for i := range n.slots {
		s := &n.slots[i]
		if s.state != slotChild {
			continue
		}
		v, uniform := s.child.collapse()
		if !uniform {
			continue
		}
		if v.IsActive() {
			*s = nodeSlot[T]{state: slotTile, tile: v}
		} else {
			*s = nodeSlot[T]{state: slotEmpty}
		}
	}

	first := &n.slots[0]
	for i := range n.slots {
		s := &n.slots[i]
		if s.state == slotChild || s.state != first.state {
			return zero, false
		}
		if s.state == slotTile && s.tile != first.tile {
			return zero, false
		}
	}
	if first.state == slotTile {
		return first.tile, true
	}
	return n.background, true
}

// iterate visits active voxels slot by slot. Tiles enumerate every voxel of
// their sub-cube, which can be large; callers wanting node-granular access
// should use summaries instead.
func (n *internalNode[T]) iterate(fn func(VoxelCoords, T) bool) bool {
	for idx := range n.slots {
		s := &n.slots[idx]
		switch s.state {
		case slotEmpty:
		case slotTile:
			if !s.tile.IsActive() {
				continue
			}
			if !iterateCube(n.slotOrigin(idx), n.childSpanBits(), s.tile, fn) {
				return false
			}
		case slotChild:
			if !s.child.iterate(fn) {
				return false
			}
		default:
			panic(fmt.Sprintf("voxelgrid: corrupt slot state %d at level %d", s.state, n.level))
		}
	}
	return true
}

// iterateCube feeds every coordinate of an aligned cube to fn with the same
// value, z outermost and x fastest.
func iterateCube[T VoxelData[T]](origin VoxelCoords, spanBits uint, v T, fn func(VoxelCoords, T) bool) bool {
	span := int64(1) << spanBits
	for k := origin.K; k < origin.K+span; k++ {
		for j := origin.J; j < origin.J+span; j++ {
			for i := origin.I; i < origin.I+span; i++ {
				if !fn(VoxelCoords{i, j, k}, v) {
					return false
				}
			}
		}
	}
	return true
}

func (n *internalNode[T]) gatherSummary(s *VolumeSummary) {
	s.countInternal(n.level)
	for idx := range n.slots {
		sl := &n.slots[idx]
		switch sl.state {
		case slotEmpty:
		case slotTile:
			spanBits := n.childSpanBits()
			count := int64(1) << (3 * spanBits)
			if sl.tile.IsActive() {
				s.ActiveVoxels += int(count)
			}
			s.TotalVoxels += int(count)
			s.extendBounds(cubeBounds(n.slotOrigin(idx), spanBits))
		case slotChild:
			sl.child.gatherSummary(s)
		default:
			panic(fmt.Sprintf("voxelgrid: corrupt slot state %d at level %d", sl.state, n.level))
		}
	}
}
