package engine

import (
	"Aven/internal/logger"
	"Aven/internal/renderer"
	"Aven/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	mgl "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type chunkBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

// ChunkRenderer keeps one vertex array per chunk and rebuilds it whenever the
// chunk is flagged NeedsUpdate. It must be created after the GL context.
type ChunkRenderer struct {
	Palette  renderer.Palette
	LightDir mgl.Vec3

	program  uint32
	uniforms *uniformCache
	buffers  map[*world.Chunk]*chunkBuffers
}

var _ world.ChunkEvicter = (*ChunkRenderer)(nil)

func NewChunkRenderer(palette renderer.Palette) (*ChunkRenderer, error) {
	program, err := genShaderProgram(chunkVertexShaderSource, chunkFragmentShaderSource)
	if err != nil {
		return nil, err
	}
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	return newChunkRenderer(program, palette), nil
}

func newChunkRenderer(program uint32, palette renderer.Palette) *ChunkRenderer {
	return &ChunkRenderer{
		Palette:  palette,
		LightDir: mgl.Vec3{-0.4, -1, -0.3},
		program:  program,
		uniforms: newUniformCache(program),
		buffers:  make(map[*world.Chunk]*chunkBuffers),
	}
}

// Render draws the given chunks from the camera's point of view.
func (r *ChunkRenderer) Render(camera *renderer.Camera, chunks []*world.Chunk) {
	gl.UseProgram(r.program)
	viewProjection := camera.GetViewProjection()
	r.uniforms.setMat4("viewProjection", (*[16]float32)(&viewProjection))
	r.uniforms.setVec3("lightDir", r.LightDir.X(), r.LightDir.Y(), r.LightDir.Z())

	for _, c := range chunks {
		b := r.upload(c)
		if b.count == 0 {
			continue
		}
		gl.BindVertexArray(b.vao)
		gl.DrawElements(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)
}

func (r *ChunkRenderer) upload(c *world.Chunk) *chunkBuffers {
	b, ok := r.buffers[c]
	if ok && !c.NeedsUpdate {
		return b
	}
	if !ok {
		b = &chunkBuffers{}
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
		gl.GenBuffers(1, &b.ebo)
		r.buffers[c] = b
	}

	mesh := renderer.BuildChunkMesh(c, r.Palette)
	c.NeedsUpdate = false
	b.count = int32(len(mesh.Indices))
	if b.count == 0 {
		return b
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*4, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(renderer.VertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	cx, cy, cz := c.Coords()
	logger.Log.Debug("Chunk meshed",
		zap.Int("cx", cx), zap.Int("cy", cy), zap.Int("cz", cz),
		zap.Int("faces", mesh.Faces()))
	return b
}

// EvictChunk frees the GPU buffers of a chunk dropped from the world.
func (r *ChunkRenderer) EvictChunk(c *world.Chunk) {
	b, ok := r.buffers[c]
	if !ok {
		return
	}
	r.release(b)
	delete(r.buffers, c)
}

func (r *ChunkRenderer) release(b *chunkBuffers) {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
}

func (r *ChunkRenderer) Cleanup() {
	for c, b := range r.buffers {
		r.release(b)
		delete(r.buffers, c)
	}
	gl.DeleteProgram(r.program)
}
