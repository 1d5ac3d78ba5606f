package renderer

import (
	"math"

	"Aven/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// chunkRadius is the bounding sphere radius of a chunk (half its diagonal).
var chunkRadius = float32(world.ChunkSize) * float32(math.Sqrt(3)) / 2

// VisibleChunks walks the world buffer slot by slot and returns the chunks
// whose bounding sphere touches the frustum, in slot order.
func VisibleChunks(w *world.World, f Frustum) []*world.Chunk {
	width, height, depth := w.Dimensions()
	half := float32(world.ChunkSize) / 2

	var visible []*world.Chunk
	for k := 0; k < depth; k++ {
		for j := 0; j < height; j++ {
			for i := 0; i < width; i++ {
				c, err := w.GetChunkAt(i, j, k)
				if err != nil || c == nil {
					continue
				}
				center := c.Origin().Add(mgl32.Vec3{half, half, half})
				if f.IntersectsSphere(center, chunkRadius) {
					visible = append(visible, c)
				}
			}
		}
	}
	return visible
}
