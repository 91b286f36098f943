package voxelgrid

import (
	"fmt"
	"unsafe"
)

// VolumeSummary is a read-only snapshot of the tree produced by Summary.
// Counts reflect the pruned tree, so collapsed or dead subtrees never
// inflate them.
type VolumeSummary struct {
	// ActiveVoxels counts active bits in every reachable leaf plus the
	// spans of active tiles.
	ActiveVoxels int
	// TotalVoxels counts every voxel addressable through allocated nodes
	// and tiles.
	TotalVoxels int

	// LeafNodes, InternalNodes and RootEntries are node counts per level.
	// InternalNodes is indexed bottom-up: element 0 is the level just above
	// the leaves.
	LeafNodes     int
	InternalNodes []int
	RootEntries   int

	// MemoryEstimate is the estimated bytes held by the tree, summed per
	// level from per-node sizes.
	MemoryEstimate int

	// Bounds is the voxel-space extent of all allocated nodes and tiles;
	// WorldBounds is the same box in world space.
	Bounds      CoordBounds
	WorldBounds BoundingBox

	// RootEdgeLength and LeafEdgeLength are the world-space edge lengths of
	// one root entry and one voxel.
	RootEdgeLength float64
	LeafEdgeLength float64

	boundsInited bool
}

func (s *VolumeSummary) countInternal(level int) {
	s.InternalNodes[level-1]++
}

func (s *VolumeSummary) extendBounds(b CoordBounds) {
	if !s.boundsInited {
		s.Bounds = b
		s.boundsInited = true
		return
	}
	s.Bounds = s.Bounds.Union(b)
}

// Summary prunes the tree and then traverses it without further mutation.
// Because of the pruning pass it counts as a write for concurrency
// purposes.
func (vol *VoxelVolume[T]) Summary() VolumeSummary {
	vol.root.prune()

	s := VolumeSummary{
		InternalNodes:  make([]int, vol.root.levels),
		RootEdgeLength: vol.RootEdgeLength(),
		LeafEdgeLength: vol.LeafVoxelSize(),
	}
	vol.root.gatherSummary(&s)
	s.MemoryEstimate = vol.memoryEstimate(&s)
	if s.boundsInited {
		s.WorldBounds = BoundingBox{
			Min: VoxelToWorld(s.Bounds.Min, vol.config.VoxelSize),
			Max: VoxelToWorld(s.Bounds.Max, vol.config.VoxelSize),
		}
	}
	vol.logger.Debugw("volume summary",
		"active_voxels", s.ActiveVoxels,
		"leaf_nodes", s.LeafNodes,
		"root_entries", s.RootEntries,
		"memory_estimate", s.MemoryEstimate,
	)
	return s
}

// memoryEstimate sums node counts per level times estimated bytes per node
// at that level.
func (vol *VoxelVolume[T]) memoryEstimate(s *VolumeSummary) int {
	var zero T
	valueBytes := int(unsafe.Sizeof(zero))
	leafBytes := leafVolume*valueBytes + leafMaskWords*8
	internalBytes := nodeSlots * int(unsafe.Sizeof(nodeSlot[T]{}))
	rootEntryBytes := int(unsafe.Sizeof(VoxelCoords{})) + int(unsafe.Sizeof(nodeSlot[T]{}))

	total := s.LeafNodes * leafBytes
	for _, n := range s.InternalNodes {
		total += n * internalBytes
	}
	total += s.RootEntries * rootEntryBytes
	return total
}

// String renders the summary for humans.
func (s VolumeSummary) String() string {
	activePct := 0.0
	if s.TotalVoxels > 0 {
		activePct = float64(s.ActiveVoxels) / float64(s.TotalVoxels) * 100
	}
	out := "VoxelVolume summary:\n"
	out += fmt.Sprintf("  edge length at root: %.2f, at leaf: %.2f\n", s.RootEdgeLength, s.LeafEdgeLength)
	if s.boundsInited {
		out += fmt.Sprintf("  voxel bounds: [%d, %d, %d] to [%d, %d, %d]\n",
			s.Bounds.Min.I, s.Bounds.Min.J, s.Bounds.Min.K,
			s.Bounds.Max.I, s.Bounds.Max.J, s.Bounds.Max.K)
		out += fmt.Sprintf("  world bounds: [%.2f, %.2f, %.2f] to [%.2f, %.2f, %.2f]\n",
			s.WorldBounds.Min.X, s.WorldBounds.Min.Y, s.WorldBounds.Min.Z,
			s.WorldBounds.Max.X, s.WorldBounds.Max.Y, s.WorldBounds.Max.Z)
	}
	out += fmt.Sprintf("  active voxels: %d / %d (%.1f%%)\n", s.ActiveVoxels, s.TotalVoxels, activePct)
	out += fmt.Sprintf("  nodes: %d root entries, %v internal (bottom-up), %d leaves\n",
		s.RootEntries, s.InternalNodes, s.LeafNodes)
	out += fmt.Sprintf("  memory estimate: ~%d bytes (%.2f MB)\n",
		s.MemoryEstimate, float64(s.MemoryEstimate)/(1<<20))
	return out
}
