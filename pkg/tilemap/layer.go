package tilemap

import "sort"

// LayerKind selects the storage strategy for a sprite layer.
type LayerKind uint8

const (
	// Dense layers hold one slot per local coordinate. Ideal for
	// backgrounds and other layers that are mostly full.
	Dense LayerKind = iota
	// Sparse layers map local coordinates to tiles. Ideal for objects,
	// items and other layers that are mostly empty.
	Sparse
)

func (k LayerKind) String() string {
	switch k {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// Layer is the public configuration for one sprite layer.
type Layer struct {
	Kind LayerKind `yaml:"kind"`
}

// layer is the tagged union over dense and sparse tile storage. Exactly
// one of dense or sparse is in use, according to kind.
//
// A dense slot with a fully transparent tint counts as empty; a sparse
// layer never holds an entry for an empty tile.
type layer struct {
	kind   LayerKind
	dense  []TileData
	sparse map[uint32]*TileData
	count  int
}

func newLayer(kind LayerKind, area uint32) *layer {
	l := &layer{kind: kind}
	switch kind {
	case Dense:
		l.dense = make([]TileData, area)
	case Sparse:
		l.sparse = make(map[uint32]*TileData)
	}
	return l
}

// get returns the tile stored at index, or nil for an empty slot. The
// pointer aliases layer storage and stays valid until the layer is
// removed.
func (l *layer) get(index uint32) *TileData {
	switch l.kind {
	case Dense:
		if index >= uint32(len(l.dense)) {
			return nil
		}
		t := &l.dense[index]
		if t.Tint.A == 0 {
			return nil
		}
		return t
	default:
		return l.sparse[index]
	}
}

// set stores a tile at index, returning the previous occupant if the
// slot was taken. A fully transparent tint is a removal.
func (l *layer) set(index uint32, t TileData) (TileData, bool) {
	if t.Tint.A == 0 {
		return l.remove(index)
	}
	switch l.kind {
	case Dense:
		if index >= uint32(len(l.dense)) {
			return TileData{}, false
		}
		prev := l.dense[index]
		replaced := prev.Tint.A != 0
		if !replaced {
			l.count++
		}
		l.dense[index] = t
		return prev, replaced
	default:
		if prev, ok := l.sparse[index]; ok {
			old := *prev
			*prev = t
			return old, true
		}
		stored := t
		l.sparse[index] = &stored
		l.count++
		return TileData{}, false
	}
}

// remove empties the slot at index: dense layers keep the slot, sparse
// layers drop the entry.
func (l *layer) remove(index uint32) (TileData, bool) {
	switch l.kind {
	case Dense:
		if index >= uint32(len(l.dense)) {
			return TileData{}, false
		}
		prev := l.dense[index]
		if prev.Tint.A == 0 {
			return TileData{}, false
		}
		l.dense[index] = TileData{}
		l.count--
		return prev, true
	default:
		prev, ok := l.sparse[index]
		if !ok {
			return TileData{}, false
		}
		delete(l.sparse, index)
		l.count--
		return *prev, true
	}
}

// occupied returns the sorted local indices of every non-empty slot.
// Sorting keeps mesh output byte-identical between builds.
func (l *layer) occupied() []uint32 {
	indices := make([]uint32, 0, l.count)
	switch l.kind {
	case Dense:
		for i := range l.dense {
			if l.dense[i].Tint.A != 0 {
				indices = append(indices, uint32(i))
			}
		}
	default:
		for i := range l.sparse {
			indices = append(indices, i)
		}
		sort.Slice(indices, func(a, b int) bool { return indices[a] < indices[b] })
	}
	return indices
}

// len reports the number of occupied slots.
func (l *layer) size() int {
	return l.count
}

// slots reports the number of addressable slots: the full chunk area for
// dense layers, the occupied count for sparse ones.
func (l *layer) slots() int {
	if l.kind == Dense {
		return len(l.dense)
	}
	return len(l.sparse)
}
