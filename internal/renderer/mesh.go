package renderer

import (
	"Aven/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of floats per mesh vertex: position, colour, normal.
const VertexStride = 9

// Palette answers the mesher's questions about block types.
type Palette interface {
	Color(id world.BlockID) mgl32.Vec3
	Transparent(id world.BlockID) bool
}

// ChunkMesh is an indexed triangle list in world space.
type ChunkMesh struct {
	Vertices []float32
	Indices  []uint32
}

func (m ChunkMesh) Faces() int {
	return len(m.Indices) / 6
}

type cubeFace struct {
	dir     [3]int
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3 // counter-clockwise seen from outside
}

var cubeFaces = [6]cubeFace{
	{[3]int{1, 0, 0}, mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{[3]int{-1, 0, 0}, mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{[3]int{0, 1, 0}, mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{[3]int{0, -1, 0}, mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{[3]int{0, 0, 1}, mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{[3]int{0, 0, -1}, mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
}

// BuildChunkMesh emits one quad per visible block face. A face is visible when
// its neighbour is air, or a different transparent block. Faces on the chunk
// border are always emitted.
func BuildChunkMesh(c *world.Chunk, palette Palette) ChunkMesh {
	var mesh ChunkMesh
	origin := c.Origin()

	block := func(x, y, z int) world.BlockID {
		id, err := c.GetBlock(x, y, z)
		if err != nil {
			return world.Air
		}
		return id
	}

	for z := 0; z < world.ChunkSize; z++ {
		for y := 0; y < world.ChunkSize; y++ {
			for x := 0; x < world.ChunkSize; x++ {
				id := block(x, y, z)
				if id == world.Air {
					continue
				}
				color := palette.Color(id)
				base := origin.Add(mgl32.Vec3{float32(x), float32(y), float32(z)})

				for _, f := range cubeFaces {
					n := block(x+f.dir[0], y+f.dir[1], z+f.dir[2])
					if n != world.Air && (n == id || !palette.Transparent(n)) {
						continue
					}
					first := uint32(len(mesh.Vertices) / VertexStride)
					for _, corner := range f.corners {
						p := base.Add(corner)
						mesh.Vertices = append(mesh.Vertices,
							p.X(), p.Y(), p.Z(),
							color.X(), color.Y(), color.Z(),
							f.normal.X(), f.normal.Y(), f.normal.Z())
					}
					mesh.Indices = append(mesh.Indices,
						first, first+1, first+2,
						first, first+2, first+3)
				}
			}
		}
	}
	return mesh
}
