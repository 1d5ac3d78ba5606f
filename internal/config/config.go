package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"Aven/internal/input"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("aven://config.schema.json", schemaSource)

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	World     WorldConfig     `yaml:"world"`
	Generator GeneratorConfig `yaml:"generator"`
	Camera    CameraConfig    `yaml:"camera"`
	Log       LogConfig       `yaml:"log"`
}

type WindowConfig struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
}

// WorldConfig sizes the chunk buffer kept around the viewer, in chunks.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"`
}

type GeneratorConfig struct {
	Kind        string  `yaml:"kind"`
	Seed        int64   `yaml:"seed"`
	Alpha       float64 `yaml:"alpha"`
	Beta        float64 `yaml:"beta"`
	Octaves     int32   `yaml:"octaves"`
	Scale       float64 `yaml:"scale"`
	Amplitude   float64 `yaml:"amplitude"`
	BaseHeight  int     `yaml:"base_height"`
	WaterLevel  int     `yaml:"water_level"`
	GroundLevel int     `yaml:"ground_level"`

	// Colors overrides palette colours by block name, RGB in [0, 1].
	Colors map[string][3]float32 `yaml:"colors"`
}

type CameraConfig struct {
	Fov         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	InvertMouse bool       `yaml:"invert_mouse"`
	Position    [3]float32 `yaml:"position"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// defaultCameraSpeed is in blocks per second: eight times the walking pace,
// so a 16-block chunk is crossed in about a second and a half.
const defaultCameraSpeed = input.DefaultMoveSpeed * 8

func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1024, Height: 768, Title: "Aven"},
		World:  WorldConfig{Width: 16, Height: 4, Depth: 16},
		Generator: GeneratorConfig{
			Kind:       "terrain",
			Seed:       1337,
			Alpha:      2,
			Beta:       2,
			Octaves:    3,
			Scale:      0.05,
			Amplitude:  20,
			BaseHeight: 0,
			WaterLevel: -6,
		},
		Camera: CameraConfig{
			Fov:         70,
			Near:        0.1,
			Far:         1000,
			Speed:       defaultCameraSpeed,
			Sensitivity: 0.1,
			Position:    [3]float32{8, 24, 8},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file and overlays it on Default.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	cfg, err := Parse(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates raw YAML against the config schema and overlays it on Default.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return cfg, nil
	}
	if err := validate(doc); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// validate runs the schema over doc after normalising it to the JSON data
// model the validator expects.
func validate(doc any) error {
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}
	var v any
	if err := json.Unmarshal(buf, &v); err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
