package tilemap

import (
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/chunktile/pkg/geom"
)

// Region is an inclusive rectangle of chunk indices, normally the
// chunks the camera can see plus a margin.
type Region struct {
	Min geom.ChunkIndex
	Max geom.ChunkIndex
}

// RegionAround returns the square region of the given chunk radius
// centered on ci. Radius 0 is just ci itself.
func RegionAround(ci geom.ChunkIndex, radius int32) Region {
	return Region{
		Min: geom.ChunkIndex{X: ci.X - radius, Y: ci.Y - radius},
		Max: geom.ChunkIndex{X: ci.X + radius, Y: ci.Y + radius},
	}
}

// Contains reports whether ci falls inside the region.
func (r Region) Contains(ci geom.ChunkIndex) bool {
	return ci.X >= r.Min.X && ci.X <= r.Max.X &&
		ci.Y >= r.Min.Y && ci.Y <= r.Max.Y
}

// MeshUpdate carries one chunk's freshly built buffers to the host,
// along with the chunk's world-pixel transform under the map topology.
type MeshUpdate struct {
	Index geom.ChunkIndex
	Mesh  *ChunkMesh
	// X, Y position the mesh in world space.
	X, Y float32
}

// Update is the per-tick delta the host consumes: buffers to (re)upload
// and chunks to start or stop drawing.
type Update struct {
	Meshed    []MeshUpdate
	Spawned   []geom.ChunkIndex
	Despawned []geom.ChunkIndex
}

func sortIndices(indices []geom.ChunkIndex) {
	sort.Slice(indices, func(a, b int) bool {
		if indices[a].Y != indices[b].Y {
			return indices[a].Y < indices[b].Y
		}
		return indices[a].X < indices[b].X
	})
}

// Update runs one tick: reconciles spawn state against the visible
// region, then re-meshes every spawned chunk whose content changed.
//
// With auto spawning on, every in-bounds chunk index inside visible is
// spawned (created first when auto chunking is also on) and every
// spawned chunk outside visible is despawned. Explicit SpawnChunk and
// DespawnChunk calls made since the last tick are folded into the same
// deltas, as net transitions: an index appears in at most one of
// Spawned and Despawned, and a toggle that lands back on its previous
// state appears in neither.
//
// Meshing runs in parallel across chunks; distinct chunks share no
// mutable state. Edits made between ticks never interleave with
// meshing because both happen on the caller's goroutine boundary.
// Output slices are sorted by chunk index, so identical input states
// produce identical updates.
func (m *Tilemap) Update(visible Region) Update {
	if m.autoSpawn {
		m.reconcileSpawns(visible)
	}

	var u Update
	for ci, was := range m.spawnBaseline {
		c, ok := m.chunks[ci]
		now := ok && c.spawned
		switch {
		case now && !was:
			u.Spawned = append(u.Spawned, ci)
		case was && !now:
			u.Despawned = append(u.Despawned, ci)
		}
	}
	clear(m.spawnBaseline)
	sortIndices(u.Spawned)
	sortIndices(u.Despawned)

	// Every chunk spawned this tick needs buffers even when clean;
	// already spawned chunks only when dirty.
	spawnedNow := make(map[geom.ChunkIndex]bool, len(u.Spawned))
	for _, ci := range u.Spawned {
		spawnedNow[ci] = true
	}
	work := make([]*Chunk, 0)
	for ci, c := range m.chunks {
		if c.spawned && (c.dirty || spawnedNow[ci]) {
			work = append(work, c)
		}
	}
	sort.Slice(work, func(a, b int) bool {
		ia, ib := work[a].index, work[b].index
		if ia.Y != ib.Y {
			return ia.Y < ib.Y
		}
		return ia.X < ib.X
	})

	u.Meshed = m.meshChunks(work)

	if len(u.Meshed) > 0 || len(u.Spawned) > 0 || len(u.Despawned) > 0 {
		m.log.Debug("tilemap update",
			zap.Int("meshed", len(u.Meshed)),
			zap.Int("spawned", len(u.Spawned)),
			zap.Int("despawned", len(u.Despawned)))
	}
	return u
}

func (m *Tilemap) reconcileSpawns(visible Region) {
	for y := visible.Min.Y; y <= visible.Max.Y; y++ {
		for x := visible.Min.X; x <= visible.Max.X; x++ {
			ci := geom.ChunkIndex{X: x, Y: y}
			if m.checkBounds(ci) != nil {
				continue
			}
			c, ok := m.chunks[ci]
			if !ok {
				if !m.autoChunk {
					continue
				}
				c = m.newChunkAt(ci)
			}
			if !c.spawned {
				m.noteSpawnState(ci, false)
				c.spawned = true
			}
		}
	}
	for ci, c := range m.chunks {
		if c.spawned && !visible.Contains(ci) {
			m.noteSpawnState(ci, true)
			c.spawned = false
		}
	}
}

// meshChunks builds the mesh of every chunk in work, fanning out across
// the CPUs. Each worker touches only its own chunk.
func (m *Tilemap) meshChunks(work []*Chunk) []MeshUpdate {
	if len(work) == 0 {
		return nil
	}
	updates := make([]MeshUpdate, len(work))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(work) {
		workers = len(work)
	}

	var wg sync.WaitGroup
	next := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				c := work[i]
				x, y := ChunkTransform(m.topology, c.index, m.chunkDims, m.tileDims)
				updates[i] = MeshUpdate{
					Index: c.index,
					Mesh:  c.Mesh(m.topology, m.tileDims),
					X:     x,
					Y:     y,
				}
			}
		}()
	}
	for i := range work {
		next <- i
	}
	close(next)
	wg.Wait()
	return updates
}
