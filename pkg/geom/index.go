package geom

// floorDiv divides a by b rounding toward negative infinity. Go's
// integer division truncates toward zero, which puts -1/-W in chunk 0;
// chunk index math needs the floor instead.
func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// PointToChunkIndex returns the index of the chunk containing p for the
// given chunk dimensions in tiles. Chunk (0, 0) covers [0, W) and
// chunk (-1, -1) covers [-W, 0) on each axis.
func PointToChunkIndex(p Point, chunk Dimension2) ChunkIndex {
	return ChunkIndex{
		X: floorDiv(p.X, int32(chunk.Width)),
		Y: floorDiv(p.Y, int32(chunk.Height)),
	}
}

// ChunkOrigin returns the world point of a chunk's (0, 0) local tile.
func ChunkOrigin(ci ChunkIndex, chunk Dimension2) Point {
	return Point{
		X: ci.X * int32(chunk.Width),
		Y: ci.Y * int32(chunk.Height),
	}
}

// PointToLocalIndex flattens p into the row-major slot index inside the
// chunk at ci. The caller guarantees p actually lies in that chunk.
func PointToLocalIndex(p Point, ci ChunkIndex, chunk Dimension2) uint32 {
	origin := ChunkOrigin(ci, chunk)
	lx := uint32(p.X - origin.X)
	ly := uint32(p.Y - origin.Y)
	return ly*chunk.Width + lx
}

// LocalXY splits a flattened local index back into chunk-local x, y.
func LocalXY(index uint32, chunk Dimension2) (uint32, uint32) {
	return index % chunk.Width, index / chunk.Width
}

// LocalIndexToPoint recovers the world point for a slot in the chunk at
// ci. Inverse of PointToLocalIndex; the layer is z.
func LocalIndexToPoint(index uint32, ci ChunkIndex, chunk Dimension2, z int32) Point {
	lx, ly := LocalXY(index, chunk)
	origin := ChunkOrigin(ci, chunk)
	return Point{
		X: origin.X + int32(lx),
		Y: origin.Y + int32(ly),
		Z: z,
	}
}
