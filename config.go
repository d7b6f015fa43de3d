package haze

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
)

// Config describes a fog scene: window, camera, fog, light, cubes and fog
// presets. DefaultConfig reproduces the classic three-cube fog demo; a TOML
// file loaded with LoadConfig overrides any subset of it.
type Config struct {
	Window  WindowConfig   `toml:"window"`
	Camera  CameraConfig   `toml:"camera"`
	Fog     FogConfig      `toml:"fog"`
	Light   LightConfig    `toml:"light"`
	Box     BoxConfig      `toml:"box"`
	Cubes   []CubeConfig   `toml:"cube"`
	Presets []PresetConfig `toml:"preset"`
}

// WindowConfig controls the window opened by Run.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
	ShowFPS   bool   `toml:"show_fps"`
}

// CameraConfig sets up the perspective camera. Near and Far are clip planes.
type CameraConfig struct {
	FOV      float64    `toml:"fov"`
	Aspect   float64    `toml:"aspect"`
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
	Position [3]float64 `toml:"position"`
}

// FogConfig sets the initial fog and the panel slider range for near/far.
type FogConfig struct {
	Color    string  `toml:"color"`
	Near     float64 `toml:"near"`
	Far      float64 `toml:"far"`
	SliderLo float64 `toml:"slider_min"`
	SliderHi float64 `toml:"slider_max"`
}

// LightConfig describes the single directional light.
type LightConfig struct {
	Color     string     `toml:"color"`
	Intensity float64    `toml:"intensity"`
	Position  [3]float64 `toml:"position"`
}

// BoxConfig is the shared cube geometry.
type BoxConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Depth  float64 `toml:"depth"`
}

// CubeConfig places one cube along the X axis.
type CubeConfig struct {
	Name  string  `toml:"name"`
	Color string  `toml:"color"`
	X     float64 `toml:"x"`
}

// PresetConfig is a fog state the example binds to a number key.
type PresetConfig struct {
	Name     string  `toml:"name"`
	Color    string  `toml:"color"`
	Near     float64 `toml:"near"`
	Far      float64 `toml:"far"`
	Duration float64 `toml:"duration"`
}

// DefaultConfig returns the classic demo: a 75 degree camera at z=2, light
// blue fog from 1 to 2, a white light at (-1, 2, 4) and three unit cubes,
// plus three fog presets.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "haze - fog",
			Width:     640,
			Height:    480,
			Resizable: true,
		},
		Camera: CameraConfig{
			FOV:      75,
			Aspect:   2,
			Near:     0.1,
			Far:      5,
			Position: [3]float64{0, 0, 2},
		},
		Fog: FogConfig{
			Color:    "lightblue",
			Near:     1,
			Far:      2,
			SliderLo: 1,
			SliderHi: 2,
		},
		Light: LightConfig{
			Color:     "#ffffff",
			Intensity: 1,
			Position:  [3]float64{-1, 2, 4},
		},
		Box: BoxConfig{Width: 1, Height: 1, Depth: 1},
		Cubes: []CubeConfig{
			{Name: "center", Color: "#44aa88", X: 0},
			{Name: "left", Color: "#8844aa", X: -2},
			{Name: "right", Color: "#aa8844", X: 2},
		},
		Presets: []PresetConfig{
			{Name: "default", Color: "lightblue", Near: 1, Far: 2, Duration: 1},
			{Name: "dusk", Color: "#e8b8a0", Near: 1.2, Far: 1.8, Duration: 1.5},
			{Name: "dense", Color: "#9aa0aa", Near: 1, Far: 1.25, Duration: 1},
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result.
// Tables and keys absent from the file keep their defaults; arrays of tables
// ([[cube]], [[preset]]) replace the default list when present.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	// Decode lists into empty slices so a file's [[cube]] entries replace the
	// defaults rather than extending them.
	defaultCubes, defaultPresets := cfg.Cubes, cfg.Presets
	cfg.Cubes, cfg.Presets = nil, nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Cubes == nil {
		cfg.Cubes = defaultCubes
	}
	if cfg.Presets == nil {
		cfg.Presets = defaultPresets
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip range [%v, %v] must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if c.Fog.Near < 0 || c.Fog.Far < c.Fog.Near {
		errs = append(errs, fmt.Errorf("fog range [%v, %v] must satisfy 0 <= near <= far", c.Fog.Near, c.Fog.Far))
	}
	if c.Fog.SliderHi < c.Fog.SliderLo {
		errs = append(errs, fmt.Errorf("fog slider range [%v, %v] is inverted", c.Fog.SliderLo, c.Fog.SliderHi))
	}
	if _, err := ParseColor(c.Fog.Color); err != nil {
		errs = append(errs, fmt.Errorf("fog: %w", err))
	}
	if _, err := ParseColor(c.Light.Color); err != nil {
		errs = append(errs, fmt.Errorf("light: %w", err))
	}
	if c.Box.Width <= 0 || c.Box.Height <= 0 || c.Box.Depth <= 0 {
		errs = append(errs, fmt.Errorf("box size %vx%vx%v must be positive", c.Box.Width, c.Box.Height, c.Box.Depth))
	}
	for i, cube := range c.Cubes {
		if _, err := ParseColor(cube.Color); err != nil {
			errs = append(errs, fmt.Errorf("cube %d: %w", i, err))
		}
	}
	for i, p := range c.Presets {
		if _, err := ParseColor(p.Color); err != nil {
			errs = append(errs, fmt.Errorf("preset %d: %w", i, err))
		}
		if p.Far < p.Near || p.Duration < 0 {
			errs = append(errs, fmt.Errorf("preset %d: need near <= far and duration >= 0", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// FogState returns the preset as a tween target. The config must be valid.
func (p PresetConfig) FogState() FogState {
	return FogState{Near: p.Near, Far: p.Far, Color: MustParseColor(p.Color)}
}

// Setup is a scene built from a Config.
type Setup struct {
	Scene  *Scene
	Camera *PerspectiveCamera
	Light  *DirectionalLight
	Cubes  []*Mesh
	Fog    *FogHelper
}

// Build creates the scene, camera, light, cubes and fog helper. The
// background starts equal to the fog color. The config must be valid.
func (c Config) Build() *Setup {
	fogColor := MustParseColor(c.Fog.Color)

	scene := NewScene()
	scene.Fog = NewFog(fogColor, c.Fog.Near, c.Fog.Far)
	scene.Background = fogColor

	cam := NewPerspectiveCamera(c.Camera.FOV, c.Camera.Aspect, c.Camera.Near, c.Camera.Far)
	cam.Position = mgl64.Vec3(c.Camera.Position)
	cam.LookAt(cam.Position[0], cam.Position[1], cam.Position[2]-1)

	light := NewDirectionalLight(MustParseColor(c.Light.Color), c.Light.Intensity)
	light.Position = mgl64.Vec3(c.Light.Position)
	scene.AddLight(light)

	box := NewBoxGeometry(c.Box.Width, c.Box.Height, c.Box.Depth)
	cubes := make([]*Mesh, 0, len(c.Cubes))
	for i, cc := range c.Cubes {
		name := cc.Name
		if name == "" {
			name = fmt.Sprintf("cube%d", i)
		}
		m := NewMesh(name, box, NewPhongMaterial(MustParseColor(cc.Color)))
		m.SetPosition(cc.X, 0, 0)
		scene.Add(m)
		cubes = append(cubes, m)
	}

	return &Setup{
		Scene:  scene,
		Camera: cam,
		Light:  light,
		Cubes:  cubes,
		Fog:    NewFogHelper(scene.Fog, &scene.Background),
	}
}

// SpinCubes returns a frame callback that rotates each cube about X and Y
// by t * (1 + index*0.1) radians, t in seconds.
func SpinCubes(cubes []*Mesh) func(t float64) {
	return func(t float64) {
		for i, m := range cubes {
			speed := 1 + float64(i)*0.1
			rot := math.Mod(t*speed, 2*math.Pi)
			m.Rotation[0] = rot
			m.Rotation[1] = rot
		}
	}
}
