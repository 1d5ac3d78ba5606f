package engine

import "github.com/go-gl/gl/v4.1-core/gl"

// uniformCache remembers uniform locations of one shader program.
type uniformCache struct {
	locations map[string]int32
	program   uint32
}

func newUniformCache(program uint32) *uniformCache {
	return &uniformCache{
		locations: make(map[string]int32),
		program:   program,
	}
}

func (uc *uniformCache) location(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}
	loc := gl.GetUniformLocation(uc.program, gl.Str(name+"\x00"))
	uc.locations[name] = loc
	return loc
}

func (uc *uniformCache) setVec3(name string, x, y, z float32) {
	if loc := uc.location(name); loc != -1 {
		gl.Uniform3f(loc, x, y, z)
	}
}

func (uc *uniformCache) setMat4(name string, m *[16]float32) {
	if loc := uc.location(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}
