// Package render draws tilemap chunks with OpenGL: one VAO per spawned
// chunk, the fixed tilemap shader and the atlas rect table uniform.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/chunktile/internal/render/shaders"
	"github.com/Faultbox/chunktile/pkg/geom"
	gmath "github.com/Faultbox/chunktile/pkg/math"
	"github.com/Faultbox/chunktile/pkg/tilemap"
)

// MaxAtlasSprites is the rect table capacity of the tilemap shader.
const MaxAtlasSprites = 256

// chunkBuffers holds one chunk's GPU state.
type chunkBuffers struct {
	vao        uint32
	vbos       [3]uint32 // position, tile index, color
	ebo        uint32
	indexCount int32
	x, y       float32
	visible    bool
}

// Renderer owns the tilemap shader program and the per-chunk buffers.
// All methods must run on the thread that owns the GL context.
type Renderer struct {
	program      uint32
	locViewProj  int32
	locTransform int32
	locTexture   int32
	locRects     int32

	texture uint32
	chunks  map[geom.ChunkIndex]*chunkBuffers
	log     *zap.Logger
}

// New compiles the tilemap shader and uploads the atlas rect table.
// The table comes from tilemap.BuildAtlasTable and holds 4 floats per
// sprite; at most MaxAtlasSprites sprites fit.
func New(atlasTable []float32, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sprites := len(atlasTable) / 4
	if sprites > MaxAtlasSprites {
		return nil, fmt.Errorf("atlas holds %d sprites, the shader table fits %d", sprites, MaxAtlasSprites)
	}

	program, err := compileProgram(shaders.TilemapVertexShader, shaders.TilemapFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("tilemap shader: %w", err)
	}

	r := &Renderer{
		program:      program,
		locViewProj:  getUniform(program, "uViewProj"),
		locTransform: getUniform(program, "uTransform"),
		locTexture:   getUniform(program, "uTexture"),
		locRects:     getUniform(program, "uAtlasRects"),
		chunks:       make(map[geom.ChunkIndex]*chunkBuffers),
		log:          log,
	}

	gl.UseProgram(program)
	if sprites > 0 {
		gl.Uniform4fv(r.locRects, int32(sprites), &atlasTable[0])
	}
	gl.UseProgram(0)

	log.Info("tilemap renderer ready", zap.Int("sprites", sprites))
	return r, nil
}

// SetTexture binds the atlas texture id used for drawing.
func (r *Renderer) SetTexture(id uint32) {
	r.texture = id
}

// Apply folds one tick's update into GPU state: uploads fresh buffers,
// shows spawned chunks and frees despawned ones.
func (r *Renderer) Apply(u tilemap.Update) {
	for _, mu := range u.Meshed {
		r.upload(mu)
	}
	for _, ci := range u.Spawned {
		if cb, ok := r.chunks[ci]; ok {
			cb.visible = true
		}
	}
	for _, ci := range u.Despawned {
		r.free(ci)
	}
}

func (r *Renderer) upload(mu tilemap.MeshUpdate) {
	cb, ok := r.chunks[mu.Index]
	if !ok {
		cb = &chunkBuffers{}
		gl.GenVertexArrays(1, &cb.vao)
		gl.GenBuffers(3, &cb.vbos[0])
		gl.GenBuffers(1, &cb.ebo)
		r.chunks[mu.Index] = cb
	}
	// meshes only ship for spawned chunks, so an upload implies
	// visibility; the Spawned delta covers re-spawns of clean chunks
	cb.visible = true
	cb.x, cb.y = mu.X, mu.Y
	cb.indexCount = int32(len(mu.Mesh.Indices))
	if cb.indexCount == 0 {
		return
	}

	gl.BindVertexArray(cb.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, cb.vbos[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(mu.Mesh.Positions)*4, gl.Ptr(mu.Mesh.Positions), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, cb.vbos[1])
	gl.BufferData(gl.ARRAY_BUFFER, len(mu.Mesh.TileIndices)*4, gl.Ptr(mu.Mesh.TileIndices), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, 4, 0)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, cb.vbos[2])
	gl.BufferData(gl.ARRAY_BUFFER, len(mu.Mesh.Colors)*4, gl.Ptr(mu.Mesh.Colors), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, cb.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mu.Mesh.Indices)*4, gl.Ptr(mu.Mesh.Indices), gl.DYNAMIC_DRAW)

	gl.BindVertexArray(0)
}

func (r *Renderer) free(ci geom.ChunkIndex) {
	cb, ok := r.chunks[ci]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &cb.vao)
	gl.DeleteBuffers(3, &cb.vbos[0])
	gl.DeleteBuffers(1, &cb.ebo)
	delete(r.chunks, ci)
}

// Draw renders every visible chunk. Chunks draw back to front by index;
// within a chunk the mesh already orders layers bottom to top.
func (r *Renderer) Draw(viewProj gmath.Mat4) {
	gl.UseProgram(r.program)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	gl.UniformMatrix4fv(r.locViewProj, 1, false, viewProj.Ptr())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.Uniform1i(r.locTexture, 0)

	for _, cb := range r.chunks {
		if !cb.visible || cb.indexCount == 0 {
			continue
		}
		gl.Uniform2f(r.locTransform, cb.x, cb.y)
		gl.BindVertexArray(cb.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, cb.indexCount, gl.UNSIGNED_INT, 0)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// ChunkCount returns the number of chunks holding GPU buffers.
func (r *Renderer) ChunkCount() int {
	return len(r.chunks)
}

// Close frees every GPU resource the renderer owns.
func (r *Renderer) Close() {
	for ci := range r.chunks {
		r.free(ci)
	}
	gl.DeleteProgram(r.program)
}
