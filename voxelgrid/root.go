package voxelgrid

import (
	"fmt"
)

// rootNode is the sparse top of the tree: a map from tile origins to
// top-level slots. An absent key reads as background at zero cost, which is
// what gives the volume unbounded addressable extent.
type rootNode[T VoxelData[T]] struct {
	background T
	levels     int  // internal levels under each entry
	spanBits   uint // log2 edge length of one entry, in voxels
	entries    map[VoxelCoords]*nodeSlot[T]
}

func newRootNode[T VoxelData[T]](levels int, background T) *rootNode[T] {
	return &rootNode[T]{
		background: background,
		levels:     levels,
		spanBits:   internalSpanBits(levels),
		entries:    make(map[VoxelCoords]*nodeSlot[T]),
	}
}

func (r *rootNode[T]) key(c VoxelCoords) VoxelCoords {
	return maskOrigin(c, r.spanBits)
}

// at never mutates the map.
func (r *rootNode[T]) at(c VoxelCoords) (T, bool) {
	s, ok := r.entries[r.key(c)]
	if !ok {
		return r.background, false
	}
	switch s.state {
	case slotTile:
		return s.tile, s.tile.IsActive()
	case slotChild:
		return s.child.at(c)
	default:
		panic(fmt.Sprintf("voxelgrid: corrupt root entry state %d", s.state))
	}
}

// set inserts a top-level internal node lazily. A point write never
// trivially matches a whole root span, so tiles at this level only arise
// from the collapse pass.
func (r *rootNode[T]) set(c VoxelCoords, v T) {
	key := r.key(c)
	s, ok := r.entries[key]
	if !ok {
		if v == r.background {
			return
		}
		s = &nodeSlot[T]{state: slotChild, child: newInternalNode(key, r.levels, r.background)}
		r.entries[key] = s
		s.child.set(c, v)
		return
	}
	switch s.state {
	case slotTile:
		if v == s.tile {
			return
		}
		r.expandEntry(s, key)
		s.child.set(c, v)
	case slotChild:
		s.child.set(c, v)
	default:
		panic(fmt.Sprintf("voxelgrid: corrupt root entry state %d", s.state))
	}
}

func (r *rootNode[T]) remove(c VoxelCoords) {
	key := r.key(c)
	s, ok := r.entries[key]
	if !ok {
		return
	}
	switch s.state {
	case slotTile:
		r.expandEntry(s, key)
		s.child.remove(c)
	case slotChild:
		s.child.remove(c)
	default:
		panic(fmt.Sprintf("voxelgrid: corrupt root entry state %d", s.state))
	}
}

// expandEntry materializes a root tile into a top-level internal node
// pre-filled with the tile value.
func (r *rootNode[T]) expandEntry(s *nodeSlot[T], key VoxelCoords) {
	child := newInternalNode(key, r.levels, r.background)
	child.fillUniform(s.tile)
	var zero T
	s.state, s.tile, s.child = slotChild, zero, child
}

// prune collapses every uniform subtree and deletes entries that became
// uniformly inactive, restoring zero cost for their regions. Conformant
// summaries run this first so dead subtrees never inflate counts.
func (r *rootNode[T]) prune() {
	for key, s := range r.entries {
		if s.state != slotChild {
			continue
		}
		v, uniform := s.child.collapse()
		if !uniform {
			continue
		}
		if v.IsActive() {
			s.state, s.tile, s.child = slotTile, v, nil
		} else {
			delete(r.entries, key)
		}
	}
}

func (r *rootNode[T]) iterate(fn func(VoxelCoords, T) bool) {
	for key, s := range r.entries {
		switch s.state {
		case slotTile:
			if !iterateCube(key, r.spanBits, s.tile, fn) {
				return
			}
		case slotChild:
			if !s.child.iterate(fn) {
				return
			}
		default:
			panic(fmt.Sprintf("voxelgrid: corrupt root entry state %d", s.state))
		}
	}
}

func (r *rootNode[T]) gatherSummary(s *VolumeSummary) {
	s.RootEntries = len(r.entries)
	for key, e := range r.entries {
		switch e.state {
		case slotTile:
			count := int64(1) << (3 * r.spanBits)
			if e.tile.IsActive() {
				s.ActiveVoxels += int(count)
			}
			s.TotalVoxels += int(count)
			s.extendBounds(cubeBounds(key, r.spanBits))
		case slotChild:
			e.child.gatherSummary(s)
		default:
			panic(fmt.Sprintf("voxelgrid: corrupt root entry state %d", e.state))
		}
	}
}
