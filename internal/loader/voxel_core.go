package loader

import (
	"fmt"
	"strings"

	"Aven/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

type VoxelID = world.BlockID

const (
	AIR   VoxelID = world.Air
	GRASS VoxelID = 1
	DIRT  VoxelID = 2
	STONE VoxelID = 3
	WATER VoxelID = 4
	SAND  VoxelID = 5
)

type VoxelProperties struct {
	Name        string
	Color       mgl32.Vec3
	Solid       bool
	Transparent bool
}

var defaultVoxels = map[VoxelID]VoxelProperties{
	AIR:   {Name: "Air", Color: mgl32.Vec3{0, 0, 0}, Transparent: true},
	GRASS: {Name: "Grass", Color: mgl32.Vec3{0.3, 0.7, 0.2}, Solid: true},
	DIRT:  {Name: "Dirt", Color: mgl32.Vec3{0.5, 0.3, 0.1}, Solid: true},
	STONE: {Name: "Stone", Color: mgl32.Vec3{0.6, 0.6, 0.6}, Solid: true},
	WATER: {Name: "Water", Color: mgl32.Vec3{0.2, 0.4, 0.8}, Transparent: true},
	SAND:  {Name: "Sand", Color: mgl32.Vec3{0.9, 0.8, 0.6}, Solid: true},
}

// customColors overrides the palette colour of individual voxel types.
var customColors = map[VoxelID]mgl32.Vec3{}

// GetVoxelProperties returns the palette entry for id. Unknown ids report ok=false.
func GetVoxelProperties(id VoxelID) (VoxelProperties, bool) {
	props, ok := defaultVoxels[id]
	if !ok {
		return VoxelProperties{}, false
	}
	if c, ok := customColors[id]; ok {
		props.Color = c
	}
	return props, true
}

// GetVoxelColor returns the colour of id, magenta for unknown types.
func GetVoxelColor(id VoxelID) mgl32.Vec3 {
	if c, ok := customColors[id]; ok {
		return c
	}
	if props, ok := defaultVoxels[id]; ok {
		return props.Color
	}
	return mgl32.Vec3{1, 0, 1}
}

func SetVoxelColor(id VoxelID, color mgl32.Vec3) {
	customColors[id] = color
}

func ClearCustomVoxelColors() {
	customColors = map[VoxelID]mgl32.Vec3{}
}

// VoxelByName finds a voxel type by its case-insensitive name.
func VoxelByName(name string) (VoxelID, bool) {
	for id, props := range defaultVoxels {
		if strings.EqualFold(props.Name, name) {
			return id, true
		}
	}
	return AIR, false
}

// ApplyColors replaces all custom colours with the named overrides.
func ApplyColors(colors map[string][3]float32) error {
	overrides := make(map[VoxelID]mgl32.Vec3, len(colors))
	for name, rgb := range colors {
		id, ok := VoxelByName(name)
		if !ok || id == AIR {
			return fmt.Errorf("colour for unknown voxel %q: %w", name, world.ErrInvalidArgument)
		}
		overrides[id] = mgl32.Vec3(rgb)
	}
	customColors = overrides
	return nil
}

// Palette exposes the voxel table to the chunk mesher.
type Palette struct{}

func (Palette) Color(id VoxelID) mgl32.Vec3 {
	return GetVoxelColor(id)
}

// Transparent reports whether faces behind id stay visible. Unknown ids are opaque.
func (Palette) Transparent(id VoxelID) bool {
	props, ok := GetVoxelProperties(id)
	return ok && props.Transparent
}
