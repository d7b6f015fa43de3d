package haze

// Scene owns the meshes, lights, fog and background of a 3D view. It holds no
// render state; see Renderer.
type Scene struct {
	// Background is the clear color. Keep it equal to the fog color (FogHelper
	// does this) so fogged geometry blends into the background.
	Background Color
	// Fog is optional; nil disables fog.
	Fog *Fog
	// Ambient is added to every lit surface before directional lights.
	Ambient Color

	meshes []*Mesh
	lights []*DirectionalLight
}

// NewScene creates an empty scene with a black background and no fog.
func NewScene() *Scene {
	return &Scene{
		Background: ColorBlack,
		Ambient:    Color{0, 0, 0, 1},
	}
}

// Add appends a mesh to the scene. Adding the same mesh twice is a no-op.
func (s *Scene) Add(m *Mesh) {
	for _, existing := range s.meshes {
		if existing == m {
			return
		}
	}
	s.meshes = append(s.meshes, m)
}

// Remove removes a mesh from the scene.
func (s *Scene) Remove(m *Mesh) {
	for i, existing := range s.meshes {
		if existing == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			return
		}
	}
}

// AddLight appends a directional light.
func (s *Scene) AddLight(l *DirectionalLight) {
	s.lights = append(s.lights, l)
}

// Meshes returns the scene's meshes in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Lights returns the scene's lights. The returned slice MUST NOT be mutated.
func (s *Scene) Lights() []*DirectionalLight {
	return s.lights
}

// MeshByName returns the first mesh with the given name, or nil.
func (s *Scene) MeshByName(name string) *Mesh {
	for _, m := range s.meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}
