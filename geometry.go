package haze

import "github.com/go-gl/mathgl/mgl64"

// Geometry is an indexed triangle list with per-vertex normals. Triangles
// wind counter-clockwise when seen from the side their normals face.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint16
}

// TriangleCount returns len(Indices)/3.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// boxFace describes one side of a box: its outward normal and the two
// in-plane axes spanning it, chosen so that u x v == normal.
type boxFace struct {
	normal, u, v mgl64.Vec3
}

var boxFaces = [6]boxFace{
	{normal: mgl64.Vec3{1, 0, 0}, u: mgl64.Vec3{0, 0, -1}, v: mgl64.Vec3{0, 1, 0}},
	{normal: mgl64.Vec3{-1, 0, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{0, 1, 0}},
	{normal: mgl64.Vec3{0, 1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, -1}},
	{normal: mgl64.Vec3{0, -1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, 1}},
	{normal: mgl64.Vec3{0, 0, 1}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
	{normal: mgl64.Vec3{0, 0, -1}, u: mgl64.Vec3{-1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
}

// NewBoxGeometry creates an axis-aligned box centered on the origin. Each face
// has its own four vertices so normals stay flat: 24 vertices, 12 triangles.
func NewBoxGeometry(width, height, depth float64) *Geometry {
	half := mgl64.Vec3{width / 2, height / 2, depth / 2}
	g := &Geometry{
		Positions: make([]mgl64.Vec3, 0, 24),
		Normals:   make([]mgl64.Vec3, 0, 24),
		Indices:   make([]uint16, 0, 36),
	}

	scale := func(a mgl64.Vec3) mgl64.Vec3 {
		return mgl64.Vec3{a[0] * half[0], a[1] * half[1], a[2] * half[2]}
	}

	for _, f := range boxFaces {
		center := scale(f.normal)
		u := scale(f.u)
		v := scale(f.v)
		base := uint16(len(g.Positions))

		// Corners in counter-clockwise order around the normal.
		g.Positions = append(g.Positions,
			center.Sub(u).Sub(v),
			center.Add(u).Sub(v),
			center.Add(u).Add(v),
			center.Sub(u).Add(v),
		)
		for range 4 {
			g.Normals = append(g.Normals, f.normal)
		}
		g.Indices = append(g.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return g
}
