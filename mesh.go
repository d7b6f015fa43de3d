package haze

import "github.com/go-gl/mathgl/mgl64"

// Mesh places a Geometry in the scene with a material and a transform.
//
// Rotation holds Euler angles in radians applied in X, Y, Z order
// (world = T * Rx * Ry * Rz * S).
type Mesh struct {
	Name     string
	Geometry *Geometry
	Material *PhongMaterial
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Visible  bool

	// scratch buffers reused across frames (high-water mark, never shrink)
	viewPos    []mgl64.Vec3
	viewColors []Color
}

// NewMesh creates a visible mesh at the origin with unit scale.
func NewMesh(name string, g *Geometry, m *PhongMaterial) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: g,
		Material: m,
		Scale:    mgl64.Vec3{1, 1, 1},
		Visible:  true,
	}
}

// SetPosition sets the mesh position.
func (m *Mesh) SetPosition(x, y, z float64) {
	m.Position = mgl64.Vec3{x, y, z}
}

// SetRotation sets the Euler rotation in radians.
func (m *Mesh) SetRotation(x, y, z float64) {
	m.Rotation = mgl64.Vec3{x, y, z}
}

// WorldMatrix returns the local-to-world transform.
func (m *Mesh) WorldMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	r := mgl64.HomogRotate3DX(m.Rotation[0]).
		Mul4(mgl64.HomogRotate3DY(m.Rotation[1])).
		Mul4(mgl64.HomogRotate3DZ(m.Rotation[2]))
	s := mgl64.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// ensureScratch grows the per-vertex scratch buffers to n entries.
func (m *Mesh) ensureScratch(n int) {
	if cap(m.viewPos) < n {
		m.viewPos = make([]mgl64.Vec3, n)
		m.viewColors = make([]Color, n)
	}
	m.viewPos = m.viewPos[:n]
	m.viewColors = m.viewColors[:n]
}
